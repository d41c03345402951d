package operation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresJournal persists operations in PostgreSQL. Rows are keyed by
// operation id; the (account_id, created_at) index serves descending
// paginated reads.
type PostgresJournal struct {
	db *pgxpool.Pool
}

// NewPostgresJournal builds a journal backed by PostgreSQL.
func NewPostgresJournal(db *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{db: db}
}

const operationColumns = `id, account_id, amount, type, currency, description, transfer_id, created_at`

// Append inserts a journal entry. There is no update path.
func (j *PostgresJournal) Append(ctx context.Context, op Operation) error {
	id, err := uuid.Parse(op.ID)
	if err != nil {
		return err
	}
	var transferID *uuid.UUID
	if op.TransferID != "" {
		parsed, err := uuid.Parse(op.TransferID)
		if err != nil {
			return err
		}
		transferID = &parsed
	}
	_, err = j.db.Exec(ctx, `INSERT INTO operations (id, account_id, amount, type, currency, description, transfer_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, op.AccountID, op.Amount, string(op.Type), op.Currency, op.Description, transferID, op.Timestamp.UTC())
	return err
}

// Get fetches a journal entry by id.
func (j *PostgresJournal) Get(ctx context.Context, id string) (Operation, error) {
	opID, err := uuid.Parse(id)
	if err != nil {
		return Operation{}, ErrOperationNotFound
	}
	row := j.db.QueryRow(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1`, opID)
	op, err := scanOperation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Operation{}, ErrOperationNotFound
	}
	return op, err
}

// ListByAccount returns all entries for the account ordered by creation time.
func (j *PostgresJournal) ListByAccount(ctx context.Context, accountID string) ([]Operation, error) {
	rows, err := j.db.Query(ctx, `SELECT `+operationColumns+` FROM operations WHERE account_id = $1 ORDER BY created_at`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOperations(rows)
}

// ListPage returns one zero-indexed page ordered by timestamp descending.
func (j *PostgresJournal) ListPage(ctx context.Context, accountID string, page, size int) ([]Operation, error) {
	if page < 0 || size <= 0 {
		return nil, nil
	}
	rows, err := j.db.Query(ctx, `SELECT `+operationColumns+` FROM operations
        WHERE account_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		accountID, size, page*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOperations(rows)
}

// CountByAccount returns the number of entries for the account.
func (j *PostgresJournal) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var n int64
	if err := j.db.QueryRow(ctx, `SELECT COUNT(*) FROM operations WHERE account_id = $1`, accountID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanOperation(row pgx.Row) (Operation, error) {
	var (
		op         Operation
		id         uuid.UUID
		amount     decimal.Decimal
		typ        string
		transferID *uuid.UUID
		createdAt  time.Time
	)
	if err := row.Scan(&id, &op.AccountID, &amount, &typ, &op.Currency, &op.Description, &transferID, &createdAt); err != nil {
		return Operation{}, err
	}
	op.ID = id.String()
	op.Amount = amount
	op.Type = Type(typ)
	if transferID != nil {
		op.TransferID = transferID.String()
	}
	op.Timestamp = createdAt.UTC()
	return op, nil
}

func collectOperations(rows pgx.Rows) ([]Operation, error) {
	var ops []Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
