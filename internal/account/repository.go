package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository persists accounts and allocates account numbers.
type Repository interface {
	Create(ctx context.Context, a Account) error
	Get(ctx context.Context, id string) (Account, error)
	List(ctx context.Context) ([]Account, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Account, error)
	Update(ctx context.Context, a Account) error
	NextNumber(ctx context.Context) (int64, error)
}

// PostgresRepository stores accounts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, kind, balance, currency, status, customer_id, overdraft_limit, interest_rate, created_at, updated_at`

// Create inserts an account record.
func (r *PostgresRepository) Create(ctx context.Context, a Account) error {
	customerID, err := uuid.Parse(a.CustomerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts (id, kind, balance, currency, status, customer_id, overdraft_limit, interest_rate, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, string(a.Kind), a.Balance, a.Currency, a.Status, customerID, a.OverdraftLimit, a.InterestRate, a.CreatedAt.UTC())
	return err
}

// Get fetches an account by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

// List returns all accounts.
func (r *PostgresRepository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

// ListByCustomer returns all accounts owned by the customer.
func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID string) ([]Account, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE customer_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

// Update overwrites the mutable fields of an account.
func (r *PostgresRepository) Update(ctx context.Context, a Account) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET balance = $1, status = $2, updated_at = $3 WHERE id = $4`,
		a.Balance, a.Status, a.UpdatedAt.UTC(), a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NextNumber allocates the next account number from a persistent sequence.
func (r *PostgresRepository) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('account_numbers')`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		a          Account
		kind       string
		customerID uuid.UUID
		balance    decimal.Decimal
		overdraft  decimal.Decimal
		interest   decimal.Decimal
		createdAt  time.Time
		updatedAt  *time.Time
	)
	if err := row.Scan(&a.ID, &kind, &balance, &a.Currency, &a.Status, &customerID, &overdraft, &interest, &createdAt, &updatedAt); err != nil {
		return Account{}, err
	}
	a.Kind = Kind(kind)
	a.Balance = balance
	a.CustomerID = customerID.String()
	a.OverdraftLimit = overdraft
	a.InterestRate = interest
	a.CreatedAt = createdAt.UTC()
	if updatedAt != nil {
		a.UpdatedAt = updatedAt.UTC()
	}
	return a, nil
}

func collectAccounts(rows pgx.Rows) ([]Account, error) {
	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
