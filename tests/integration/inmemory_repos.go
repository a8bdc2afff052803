package integration

import (
	"context"
	"fmt"
	"sync"

	"loyalty-token-ledger/internal/core/domain"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[domain.Address]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[domain.Address]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Username == a.Username {
			return fmt.Errorf("username already exists")
		}
	}
	r.accounts[a.Address] = a
	return nil
}

func (r *inMemoryAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) GetByAddress(ctx context.Context, address domain.Address) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[address]
	if !ok {
		return nil, nil
	}
	return a, nil
}

// --- In-Memory Event Journal ---

type inMemoryJournal struct {
	mu     sync.RWMutex
	events []domain.Event
}

func newInMemoryJournal() *inMemoryJournal {
	return &inMemoryJournal{}
}

func (j *inMemoryJournal) Append(ctx context.Context, events []domain.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, events...)
	return nil
}

func (j *inMemoryJournal) Publish(ctx context.Context, events ...domain.Event) error {
	return j.Append(ctx, events)
}

func (j *inMemoryJournal) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	// Most recent first.
	out := make([]domain.Event, 0, limit)
	for i := len(j.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.events[i])
	}
	return out, nil
}
