package directory

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates the directory has no account with the id.
	ErrAccountNotFound = errors.New("account not found in directory")

	// ErrUnavailable indicates the directory could not be reached or timed
	// out. Callers must treat it as transient and must not retry a mutating
	// call blindly, since the update may already have been applied.
	ErrUnavailable = errors.New("account directory unavailable")
)

// Account is the directory's view of an account: exactly the fields the
// ledger core needs to validate and commit an operation.
type Account struct {
	ID       string
	Balance  decimal.Decimal
	Currency string
	Status   string
}

// Update carries a full-field overwrite: both the new balance and the
// (possibly unchanged) status are always supplied. The directory boundary
// does not support partial updates.
type Update struct {
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"`
}

// Directory is the narrow capability through which the ledger core reaches
// authoritative account state it does not own. Implementations decide the
// transport (in-process call or HTTP), so ledger logic stays transport-free.
type Directory interface {
	GetAccount(ctx context.Context, id string) (Account, error)
	UpdateAccount(ctx context.Context, id string, update Update) (Account, error)
}
