package operation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type is the direction of a balance movement. The amount itself is always a
// positive magnitude; the sign is carried here.
type Type string

const (
	// TypeDebit decreases the account balance.
	TypeDebit Type = "DEBIT"
	// TypeCredit increases the account balance.
	TypeCredit Type = "CREDIT"
)

// Operation is an immutable journal entry recording one completed balance
// movement. Operations are created exactly once and never updated or deleted.
type Operation struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`

	// TransferID links the two legs of a transfer. Empty for standalone
	// debits and credits.
	TransferID string `json:"transfer_id,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// TransferReceipt summarizes a completed two-leg transfer.
type TransferReceipt struct {
	TransferID           string          `json:"transfer_id"`
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	DebitOperationID     string          `json:"debit_operation_id"`
	CreditOperationID    string          `json:"credit_operation_id"`
	CompletedAt          time.Time       `json:"completed_at"`
}

// HistoryView is the read model combining a page of operations with the
// account's balance at read time. It is assembled per request, never stored.
type HistoryView struct {
	AccountID  string          `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	PageSize   int             `json:"page_size"`
	Operations []Operation     `json:"operations"`
}
