package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the two account variants.
type Kind string

const (
	// KindCurrent is a checking account with an overdraft limit.
	KindCurrent Kind = "CURRENT"
	// KindSaving is a savings account with an interest rate.
	KindSaving Kind = "SAVING"
)

// Status values for an account. Only ACTIVE accounts accept balance-changing
// operations.
const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

// Account is a bank account record. Kind-specific fields are only meaningful
// for the matching kind: OverdraftLimit for current accounts, InterestRate
// for saving accounts.
type Account struct {
	ID         string
	Kind       Kind
	Balance    decimal.Decimal
	Currency   string
	Status     string
	CustomerID string

	OverdraftLimit decimal.Decimal
	InterestRate   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
