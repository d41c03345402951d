package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates the account does not exist.
	ErrNotFound = errors.New("account not found")
	// ErrCustomerNotFound indicates the owning customer is not registered.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrUnknownKind indicates a stored account carries an unsupported kind tag.
	ErrUnknownKind = errors.New("unsupported account kind")
)

// CustomerDirectory is the narrow view of the customer registry the account
// service needs when opening accounts.
type CustomerDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service owns account records: creation, lookup and the full-field
// balance/status update consumed by the ledger core.
type Service struct {
	repo      Repository
	customers CustomerDirectory
	logger    *slog.Logger
}

// NewService builds an account service instance.
func NewService(repo Repository, customers CustomerDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, customers: customers, logger: logger}
}

// CurrentInput captures data required to open a current account.
type CurrentInput struct {
	CustomerID     string
	Currency       string
	InitialBalance decimal.Decimal
	OverdraftLimit decimal.Decimal
}

// SavingInput captures data required to open a saving account.
type SavingInput struct {
	CustomerID     string
	Currency       string
	InitialBalance decimal.Decimal
	InterestRate   decimal.Decimal
}

// Update is the full-field overwrite applied to an account: the caller always
// supplies both the new balance and the (possibly unchanged) status.
type Update struct {
	Balance decimal.Decimal
	Status  string
}

// CreateCurrent opens a current account for an existing customer.
func (s *Service) CreateCurrent(ctx context.Context, input CurrentInput) (Account, error) {
	base, err := s.newAccount(ctx, input.CustomerID, input.Currency, input.InitialBalance)
	if err != nil {
		return Account{}, err
	}
	base.Kind = KindCurrent
	base.OverdraftLimit = input.OverdraftLimit

	if err := s.repo.Create(ctx, base); err != nil {
		return Account{}, err
	}
	s.logger.Info("current account created", "account_id", base.ID, "customer_id", base.CustomerID)
	return base, nil
}

// CreateSaving opens a saving account for an existing customer.
func (s *Service) CreateSaving(ctx context.Context, input SavingInput) (Account, error) {
	base, err := s.newAccount(ctx, input.CustomerID, input.Currency, input.InitialBalance)
	if err != nil {
		return Account{}, err
	}
	base.Kind = KindSaving
	base.InterestRate = input.InterestRate

	if err := s.repo.Create(ctx, base); err != nil {
		return Account{}, err
	}
	s.logger.Info("saving account created", "account_id", base.ID, "customer_id", base.CustomerID)
	return base, nil
}

// Get retrieves an account by identifier.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if a.Kind != KindCurrent && a.Kind != KindSaving {
		return Account{}, fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
	return a, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// ListByCustomer returns all accounts owned by a customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Account, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// ApplyUpdate overwrites the account's balance and status and stamps the
// last-update time. This is the boundary the ledger core commits through;
// partial-field updates are not supported.
func (s *Service) ApplyUpdate(ctx context.Context, id string, update Update) (Account, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}

	a.Balance = update.Balance
	a.Status = update.Status
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		return Account{}, err
	}
	s.logger.Info("account updated", "account_id", a.ID, "status", a.Status)
	return a, nil
}

// newAccount validates the owner and assembles the shared fields of a new
// account, including the generated account number.
func (s *Service) newAccount(ctx context.Context, customerID, currency string, balance decimal.Decimal) (Account, error) {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return Account{}, err
	}
	if !exists {
		return Account{}, ErrCustomerNotFound
	}

	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		return Account{}, err
	}

	if currency == "" {
		currency = "USD"
	}

	return Account{
		ID:         fmt.Sprintf("%d%d", number, time.Now().UTC().Year()),
		Balance:    balance,
		Currency:   currency,
		Status:     StatusActive,
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
