package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moyo-bank/moyo_bank/internal/directory"
)

const statusActive = "ACTIVE"

// Service is the ledger core: it validates and orchestrates balance-changing
// operations against the account directory and records them in the journal.
//
// The read-validate-write sequence against the directory is not serialized
// per account: two concurrent debits can both pass the sufficiency check and
// both commit, overdrawing the account. The directory boundary carries no
// version token, so the core cannot do optimistic concurrency; this is a
// known gap, not an oversight.
type Service struct {
	directory       directory.Directory
	journal         Journal
	logger          *slog.Logger
	defaultPageSize int
}

// NewService builds the ledger core.
func NewService(dir directory.Directory, journal Journal, logger *slog.Logger, defaultPageSize int) *Service {
	if defaultPageSize <= 0 {
		defaultPageSize = 5
	}
	return &Service{directory: dir, journal: journal, logger: logger, defaultPageSize: defaultPageSize}
}

// Debit withdraws amount from the account. Preconditions are checked in
// order (exists, active, sufficient balance) and the first failure wins,
// before any state is touched.
func (s *Service) Debit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (Operation, error) {
	return s.debit(ctx, accountID, amount, description, "")
}

// Credit deposits amount into the account. There is no upper bound on the
// amount; only existence and active status are required.
func (s *Service) Credit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (Operation, error) {
	return s.credit(ctx, accountID, amount, description, "")
}

// Transfer moves amount from source to destination as a sequential debit then
// credit. The two legs share a transfer id but not a transaction: if the
// credit leg fails the debit stays durable and the caller receives a
// PartialTransferError. Self-transfers are permitted and net to zero across
// two journal entries.
func (s *Service) Transfer(ctx context.Context, sourceID, destinationID string, amount decimal.Decimal, description string) (TransferReceipt, error) {
	transferID := uuid.NewString()

	debitDescription := fmt.Sprintf("Transfer to %s | amount %s | %s", destinationID, amount, description)
	debitOp, err := s.debit(ctx, sourceID, amount, debitDescription, transferID)
	if err != nil {
		return TransferReceipt{}, err
	}

	creditDescription := fmt.Sprintf("Transfer from %s | amount %s | %s", sourceID, amount, description)
	creditOp, err := s.credit(ctx, destinationID, amount, creditDescription, transferID)
	if err != nil {
		s.logger.Error("transfer credit leg failed after debit committed",
			"transfer_id", transferID, "debit_operation_id", debitOp.ID, "error", err)
		return TransferReceipt{}, &PartialTransferError{TransferID: transferID, DebitOperationID: debitOp.ID, Err: err}
	}

	s.logger.Info("transfer completed", "transfer_id", transferID, "source", sourceID, "destination", destinationID)
	return TransferReceipt{
		TransferID:           transferID,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		DebitOperationID:     debitOp.ID,
		CreditOperationID:    creditOp.ID,
		CompletedAt:          time.Now().UTC(),
	}, nil
}

// GetOperation returns a journal entry by id.
func (s *Service) GetOperation(ctx context.Context, id string) (Operation, error) {
	return s.journal.Get(ctx, id)
}

// ListByAccount returns all journal entries for an account. An unknown
// account yields an empty list.
func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]Operation, error) {
	return s.journal.ListByAccount(ctx, accountID)
}

// History assembles the paginated read model: the requested page of
// operations newest-first joined with the account's current balance. History
// reads are permitted for suspended accounts. Readers may observe entries
// appended between the count fetch and the page fetch; no snapshot isolation
// is guaranteed.
func (s *Service) History(ctx context.Context, accountID string, page, size int) (HistoryView, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = s.defaultPageSize
	}

	acct, err := s.directory.GetAccount(ctx, accountID)
	if err != nil {
		return HistoryView{}, mapDirectoryErr(err)
	}

	total, err := s.journal.CountByAccount(ctx, accountID)
	if err != nil {
		return HistoryView{}, err
	}

	ops, err := s.journal.ListPage(ctx, accountID, page, size)
	if err != nil {
		return HistoryView{}, err
	}
	if ops == nil {
		ops = []Operation{}
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return HistoryView{
		AccountID:  accountID,
		Balance:    acct.Balance,
		Page:       page,
		TotalPages: totalPages,
		PageSize:   size,
		Operations: ops,
	}, nil
}

// debit performs the shared debit path. Both the remote balance update and
// the journal append happen on success; they are two separate commits with no
// shared transaction, so a crash between them loses the journal entry.
func (s *Service) debit(ctx context.Context, accountID string, amount decimal.Decimal, description, transferID string) (Operation, error) {
	acct, err := s.validate(ctx, accountID, amount)
	if err != nil {
		return Operation{}, err
	}
	if amount.GreaterThan(acct.Balance) {
		return Operation{}, ErrInsufficientBalance
	}

	if _, err := s.directory.UpdateAccount(ctx, accountID, directory.Update{
		Balance: acct.Balance.Sub(amount),
		Status:  acct.Status,
	}); err != nil {
		return Operation{}, mapDirectoryErr(err)
	}

	op := s.newOperation(accountID, amount, TypeDebit, acct.Currency, description, transferID)
	if err := s.journal.Append(ctx, op); err != nil {
		return Operation{}, fmt.Errorf("balance committed but journal append failed: %w", err)
	}

	s.logger.Info("account debited", "account_id", accountID, "operation_id", op.ID)
	return op, nil
}

// credit performs the shared credit path.
func (s *Service) credit(ctx context.Context, accountID string, amount decimal.Decimal, description, transferID string) (Operation, error) {
	acct, err := s.validate(ctx, accountID, amount)
	if err != nil {
		return Operation{}, err
	}

	if _, err := s.directory.UpdateAccount(ctx, accountID, directory.Update{
		Balance: acct.Balance.Add(amount),
		Status:  acct.Status,
	}); err != nil {
		return Operation{}, mapDirectoryErr(err)
	}

	op := s.newOperation(accountID, amount, TypeCredit, acct.Currency, description, transferID)
	if err := s.journal.Append(ctx, op); err != nil {
		return Operation{}, fmt.Errorf("balance committed but journal append failed: %w", err)
	}

	s.logger.Info("account credited", "account_id", accountID, "operation_id", op.ID)
	return op, nil
}

// validate runs the preconditions shared by debit and credit: positive
// amount, account exists, account active.
func (s *Service) validate(ctx context.Context, accountID string, amount decimal.Decimal) (directory.Account, error) {
	if amount.Sign() <= 0 {
		return directory.Account{}, ErrInvalidAmount
	}

	acct, err := s.directory.GetAccount(ctx, accountID)
	if err != nil {
		return directory.Account{}, mapDirectoryErr(err)
	}
	if acct.Status != statusActive {
		return directory.Account{}, ErrAccountNotActive
	}
	return acct, nil
}

func (s *Service) newOperation(accountID string, amount decimal.Decimal, typ Type, currency, description, transferID string) Operation {
	return Operation{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Type:        typ,
		Currency:    currency,
		Description: description,
		TransferID:  transferID,
		Timestamp:   time.Now().UTC(),
	}
}

func mapDirectoryErr(err error) error {
	switch {
	case errors.Is(err, directory.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, directory.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	default:
		return err
	}
}
