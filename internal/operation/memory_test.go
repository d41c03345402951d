package operation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func seedEntry(t *testing.T, j Journal, id, accountID string, ts time.Time) {
	t.Helper()
	err := j.Append(context.Background(), Operation{
		ID:        id,
		AccountID: accountID,
		Amount:    decimal.NewFromInt(1),
		Type:      TypeCredit,
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("append %s: %v", id, err)
	}
}

func TestMemoryJournalPaging(t *testing.T) {
	j := NewMemoryJournal()
	ctx := context.Background()
	base := time.Now().UTC()

	seedEntry(t, j, "op-1", "ACC-1", base.Add(1*time.Second))
	seedEntry(t, j, "op-2", "ACC-1", base.Add(2*time.Second))
	seedEntry(t, j, "op-3", "ACC-1", base.Add(3*time.Second))
	seedEntry(t, j, "other", "ACC-2", base.Add(4*time.Second))

	page, err := j.ListPage(ctx, "ACC-1", 0, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 || page[0].ID != "op-3" || page[1].ID != "op-2" {
		t.Fatalf("unexpected first page %+v", page)
	}

	page, err = j.ListPage(ctx, "ACC-1", 1, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].ID != "op-1" {
		t.Fatalf("unexpected last page %+v", page)
	}

	page, err = j.ListPage(ctx, "ACC-1", 2, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", page)
	}

	n, err := j.CountByAccount(ctx, "ACC-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 entries, got %d", n)
	}
}

func TestMemoryJournalTimestampTiesKeepInsertionOrder(t *testing.T) {
	j := NewMemoryJournal()
	ts := time.Now().UTC()

	seedEntry(t, j, "first", "ACC-1", ts)
	seedEntry(t, j, "second", "ACC-1", ts)

	page, err := j.ListPage(context.Background(), "ACC-1", 0, 5)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 || page[0].ID != "first" || page[1].ID != "second" {
		t.Fatalf("tie ordering unstable: %+v", page)
	}
}

func TestMemoryJournalGetNotFound(t *testing.T) {
	j := NewMemoryJournal()

	if _, err := j.Get(context.Background(), "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}
