package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/moyo-bank/moyo_bank/internal/logging"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), logging.Discard())
}

func sampleInput() Input {
	return Input{
		NationalID:  "CIN-001",
		FirstName:   "Awa",
		LastName:    "Diarra",
		Email:       "awa@example.com",
		Phone:       "+22370000001",
		Nationality: "ML",
	}
}

func TestCreateCustomer(t *testing.T) {
	svc := newTestService()

	c, err := svc.Create(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected generated id")
	}
	if c.CreatedAt.IsZero() {
		t.Fatalf("creation time not stamped")
	}

	got, err := svc.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "awa@example.com" {
		t.Fatalf("unexpected email %q", got.Email)
	}
}

func TestCreateEnforcesUniqueness(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	dupNational := sampleInput()
	dupNational.Email = "other@example.com"
	dupNational.Phone = "+22370000002"
	if _, err := svc.Create(ctx, dupNational); !errors.Is(err, ErrNationalIDTaken) {
		t.Fatalf("expected ErrNationalIDTaken, got %v", err)
	}

	dupEmail := sampleInput()
	dupEmail.NationalID = "CIN-002"
	dupEmail.Phone = "+22370000002"
	if _, err := svc.Create(ctx, dupEmail); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	dupPhone := sampleInput()
	dupPhone.NationalID = "CIN-002"
	dupPhone.Email = "other@example.com"
	if _, err := svc.Create(ctx, dupPhone); !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestUpdateKeepsOwnIdentifiers(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Unchanged identifiers must not collide with the customer's own record.
	input := sampleInput()
	input.FirstName = "Fatou"
	updated, err := svc.Update(ctx, c.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Fatou" {
		t.Fatalf("unexpected first name %q", updated.FirstName)
	}
	if updated.ID != c.ID {
		t.Fatalf("id changed on update")
	}
	if !updated.CreatedAt.Equal(c.CreatedAt) {
		t.Fatalf("creation time changed on update")
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("update time not stamped")
	}
}

func TestUpdateRejectsTakenIdentifiers(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	other := sampleInput()
	other.NationalID = "CIN-002"
	other.Email = "other@example.com"
	other.Phone = "+22370000002"
	c, err := svc.Create(ctx, other)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	steal := other
	steal.Email = "awa@example.com"
	if _, err := svc.Update(ctx, c.ID, steal); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdateUnknownCustomer(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Update(context.Background(), "missing", sampleInput()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListWithKeyword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	other := sampleInput()
	other.NationalID = "CIN-002"
	other.FirstName = "Moussa"
	other.Email = "moussa@example.com"
	other.Phone = "+22370000002"
	if _, err := svc.Create(ctx, other); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(all))
	}

	found, err := svc.List(ctx, "moussa")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].FirstName != "Moussa" {
		t.Fatalf("unexpected search result %+v", found)
	}
}

func TestFindByNationalID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.FindByNationalID(ctx, "CIN-001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != c.ID {
		t.Fatalf("wrong customer returned")
	}

	if _, err := svc.FindByNationalID(ctx, "CIN-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := svc.Exists(ctx, c.ID)
	if err != nil || !ok {
		t.Fatalf("expected existing customer, got ok=%v err=%v", ok, err)
	}
	ok, err = svc.Exists(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("expected missing customer, got ok=%v err=%v", ok, err)
	}
}
