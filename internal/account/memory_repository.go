package account

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Account
	counter int64
}

// NewMemoryRepository constructs an in-memory repository for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Account), counter: 1000000}
}

func (r *memoryRepository) Create(_ context.Context, a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[a.ID] = a
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.storage[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(Account) bool { return true }), nil
}

func (r *memoryRepository) ListByCustomer(_ context.Context, customerID string) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a Account) bool { return a.CustomerID == customerID }), nil
}

func (r *memoryRepository) Update(_ context.Context, a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[a.ID]; !ok {
		return ErrNotFound
	}
	r.storage[a.ID] = a
	return nil
}

func (r *memoryRepository) NextNumber(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter, nil
}

func (r *memoryRepository) collect(match func(Account) bool) []Account {
	var accounts []Account
	for _, a := range r.storage {
		if match(a) {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].CreatedAt.Before(accounts[j].CreatedAt) })
	return accounts
}
