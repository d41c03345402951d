package operation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount indicates a non-positive operation amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAccountNotFound indicates the target account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNotActive indicates the account is suspended and rejects
	// balance-changing operations.
	ErrAccountNotActive = errors.New("account not active")

	// ErrInsufficientBalance indicates a debit larger than the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOperationNotFound indicates no journal entry with the given id.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrDirectoryUnavailable indicates the account directory could not be
	// reached within the bounded timeout. The operation is never retried
	// automatically: the remote update may or may not have been applied.
	ErrDirectoryUnavailable = errors.New("account directory unavailable")
)

// PartialTransferError reports a transfer whose debit leg committed but whose
// credit leg failed. The debit is durable and is not reversed; both legs share
// TransferID so reconciliation can link them.
type PartialTransferError struct {
	TransferID       string
	DebitOperationID string
	Err              error
}

func (e *PartialTransferError) Error() string {
	return fmt.Sprintf("partial transfer %s: debit %s committed, credit leg failed: %v", e.TransferID, e.DebitOperationID, e.Err)
}

func (e *PartialTransferError) Unwrap() error { return e.Err }
