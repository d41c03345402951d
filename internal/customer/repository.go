package customer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists customers.
type Repository interface {
	Create(ctx context.Context, c Customer) error
	Get(ctx context.Context, id string) (Customer, error)
	Update(ctx context.Context, c Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Customer, error)
	Search(ctx context.Context, keyword string) ([]Customer, error)
	FindByNationalID(ctx context.Context, nationalID string) (Customer, error)
	ExistsNationalID(ctx context.Context, nationalID string) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	ExistsPhone(ctx context.Context, phone string) (bool, error)
}

// PostgresRepository stores customers in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const customerColumns = `id, national_id, first_name, last_name, email, phone, nationality, created_at, updated_at`

// Create inserts a customer record.
func (r *PostgresRepository) Create(ctx context.Context, c Customer) error {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO customers (id, national_id, first_name, last_name, email, phone, nationality, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, c.NationalID, c.FirstName, c.LastName, c.Email, c.Phone, c.Nationality, c.CreatedAt.UTC())
	return err
}

// Get fetches a customer by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return Customer{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, customerID)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return c, err
}

// Update overwrites the mutable fields of a customer.
func (r *PostgresRepository) Update(ctx context.Context, c Customer) error {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE customers
        SET national_id = $1, first_name = $2, last_name = $3, email = $4, phone = $5, nationality = $6, updated_at = $7
        WHERE id = $8`,
		c.NationalID, c.FirstName, c.LastName, c.Email, c.Phone, c.Nationality, c.UpdatedAt.UTC(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a customer by identifier.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	return err
}

// List returns all customers.
func (r *PostgresRepository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// Search returns customers whose name, email or phone matches the keyword.
func (r *PostgresRepository) Search(ctx context.Context, keyword string) ([]Customer, error) {
	pattern := "%" + keyword + "%"
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers
        WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1
        ORDER BY created_at`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// FindByNationalID fetches a customer by national identity card number.
func (r *PostgresRepository) FindByNationalID(ctx context.Context, nationalID string) (Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE national_id = $1`, nationalID)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return c, err
}

// ExistsNationalID reports whether a customer with the national id exists.
func (r *PostgresRepository) ExistsNationalID(ctx context.Context, nationalID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE national_id = $1)`, nationalID)
}

// ExistsEmail reports whether a customer with the email exists.
func (r *PostgresRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email)
}

// ExistsPhone reports whether a customer with the phone number exists.
func (r *PostgresRepository) ExistsPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE phone = $1)`, phone)
}

func (r *PostgresRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var (
		c         Customer
		id        uuid.UUID
		createdAt time.Time
		updatedAt *time.Time
	)
	if err := row.Scan(&id, &c.NationalID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Nationality, &createdAt, &updatedAt); err != nil {
		return Customer{}, err
	}
	c.ID = id.String()
	c.CreatedAt = createdAt.UTC()
	if updatedAt != nil {
		c.UpdatedAt = updatedAt.UTC()
	}
	return c, nil
}

func collectCustomers(rows pgx.Rows) ([]Customer, error) {
	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
