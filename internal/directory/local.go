package directory

import (
	"context"
	"errors"

	"github.com/moyo-bank/moyo_bank/internal/account"
)

// LocalDirectory adapts the in-process account service to the Directory
// boundary for single-binary deployments.
type LocalDirectory struct {
	accounts *account.Service
}

// NewLocalDirectory wraps the account service as a Directory.
func NewLocalDirectory(accounts *account.Service) *LocalDirectory {
	return &LocalDirectory{accounts: accounts}
}

// GetAccount fetches account state from the in-process account service.
func (d *LocalDirectory) GetAccount(ctx context.Context, id string) (Account, error) {
	a, err := d.accounts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return toDirectoryAccount(a), nil
}

// UpdateAccount applies a full-field balance/status overwrite through the
// account service.
func (d *LocalDirectory) UpdateAccount(ctx context.Context, id string, update Update) (Account, error) {
	a, err := d.accounts.ApplyUpdate(ctx, id, account.Update{Balance: update.Balance, Status: update.Status})
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return toDirectoryAccount(a), nil
}

func toDirectoryAccount(a account.Account) Account {
	return Account{ID: a.ID, Balance: a.Balance, Currency: a.Currency, Status: a.Status}
}
