package customer

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Customer
}

// NewMemoryRepository constructs an in-memory repository for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Customer)}
}

func (r *memoryRepository) Create(_ context.Context, c Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[c.ID] = c
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.storage[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryRepository) Update(_ context.Context, c Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[c.ID]; !ok {
		return ErrNotFound
	}
	r.storage[c.ID] = c
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.storage, id)
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(Customer) bool { return true }), nil
}

func (r *memoryRepository) Search(_ context.Context, keyword string) ([]Customer, error) {
	needle := strings.ToLower(keyword)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(c Customer) bool {
		return strings.Contains(strings.ToLower(c.FirstName), needle) ||
			strings.Contains(strings.ToLower(c.LastName), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(c.Phone, keyword)
	}), nil
}

func (r *memoryRepository) FindByNationalID(_ context.Context, nationalID string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.NationalID == nationalID {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *memoryRepository) ExistsNationalID(_ context.Context, nationalID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.NationalID == nationalID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) ExistsEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) ExistsPhone(_ context.Context, phone string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) collect(match func(Customer) bool) []Customer {
	var customers []Customer
	for _, c := range r.storage {
		if match(c) {
			customers = append(customers, c)
		}
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].CreatedAt.Before(customers[j].CreatedAt) })
	return customers
}
