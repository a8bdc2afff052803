package ports

import (
	"context"

	"loyalty-token-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepository defines persistence operations for registered accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByAddress(ctx context.Context, address domain.Address) (*domain.Account, error)
}

// EventJournal persists emitted domain events append-only. A single Append
// call covers one operation's whole emission batch and must be atomic, so a
// batch reward journals all-or-nothing.
type EventJournal interface {
	Append(ctx context.Context, events []domain.Event) error
	Recent(ctx context.Context, limit int) ([]domain.Event, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
