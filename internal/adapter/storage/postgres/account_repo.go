package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-token-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository. Addresses are stored as
// their 0x-prefixed hex encoding.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account into the database.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (address, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query,
		a.Address.Hex(), a.Username, a.PasswordHash, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByUsername fetches an account by username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT address, username, password_hash, created_at
		FROM accounts WHERE username = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, username), "username")
}

// GetByAddress fetches an account by its ledger address.
func (r *AccountRepo) GetByAddress(ctx context.Context, address domain.Address) (*domain.Account, error) {
	query := `SELECT address, username, password_hash, created_at
		FROM accounts WHERE address = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, address.Hex()), "address")
}

func (r *AccountRepo) scanAccount(row pgx.Row, by string) (*domain.Account, error) {
	var (
		a       domain.Account
		addrHex string
	)
	err := row.Scan(&addrHex, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by %s: %w", by, err)
	}

	a.Address, err = domain.AddressFromHex(addrHex)
	if err != nil {
		return nil, fmt.Errorf("decode stored address: %w", err)
	}
	return &a, nil
}
