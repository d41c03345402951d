package customer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates the customer does not exist.
	ErrNotFound = errors.New("customer not found")
	// ErrNationalIDTaken indicates another customer already registered this national id.
	ErrNationalIDTaken = errors.New("national id already registered")
	// ErrEmailTaken indicates another customer already registered this email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPhoneTaken indicates another customer already registered this phone number.
	ErrPhoneTaken = errors.New("phone already registered")
)

// Service manages the customer registry.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a customer service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Input captures data required to create or update a customer.
type Input struct {
	NationalID  string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Nationality string
}

// Create registers a new customer after checking uniqueness of national id,
// email and phone.
func (s *Service) Create(ctx context.Context, input Input) (Customer, error) {
	if err := s.checkUnique(ctx, input, Customer{}); err != nil {
		return Customer{}, err
	}

	c := Customer{
		ID:          uuid.NewString(),
		NationalID:  input.NationalID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Nationality: input.Nationality,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Customer{}, err
	}
	s.logger.Info("customer created", "customer_id", c.ID)
	return c, nil
}

// Get retrieves a customer by identifier.
func (s *Service) Get(ctx context.Context, id string) (Customer, error) {
	return s.repo.Get(ctx, id)
}

// Update replaces a customer's details, re-checking uniqueness for any
// identifying field that changed.
func (s *Service) Update(ctx context.Context, id string, input Input) (Customer, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}

	if err := s.checkUnique(ctx, input, existing); err != nil {
		return Customer{}, err
	}

	updated := Customer{
		ID:          existing.ID,
		NationalID:  input.NationalID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Nationality: input.Nationality,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Customer{}, err
	}
	s.logger.Info("customer updated", "customer_id", updated.ID)
	return updated, nil
}

// Delete removes a customer from the registry.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", "customer_id", id)
	return nil
}

// List returns all customers, filtered by keyword when one is provided.
func (s *Service) List(ctx context.Context, keyword string) ([]Customer, error) {
	if keyword != "" {
		return s.repo.Search(ctx, keyword)
	}
	return s.repo.List(ctx)
}

// FindByNationalID looks a customer up by identity card number.
func (s *Service) FindByNationalID(ctx context.Context, nationalID string) (Customer, error) {
	return s.repo.FindByNationalID(ctx, nationalID)
}

// Exists reports whether a customer id is registered. Used by the account
// directory when opening accounts.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// checkUnique enforces national id, email and phone uniqueness. Fields equal
// to the current record are skipped so updates do not collide with themselves.
func (s *Service) checkUnique(ctx context.Context, input Input, current Customer) error {
	if input.NationalID != current.NationalID {
		taken, err := s.repo.ExistsNationalID(ctx, input.NationalID)
		if err != nil {
			return err
		}
		if taken {
			return ErrNationalIDTaken
		}
	}
	if input.Email != current.Email {
		taken, err := s.repo.ExistsEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
	}
	if input.Phone != current.Phone {
		taken, err := s.repo.ExistsPhone(ctx, input.Phone)
		if err != nil {
			return err
		}
		if taken {
			return ErrPhoneTaken
		}
	}
	return nil
}
