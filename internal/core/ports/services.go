package ports

import (
	"context"
	"time"

	"loyalty-token-ledger/internal/core/domain"

	"github.com/holiman/uint256"
)

// EventSink receives domain events emitted by the loyalty program. Sinks are
// observers only: a sink failure must never affect ledger state.
type EventSink interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// TokenService handles JWT token operations for caller identity.
type TokenService interface {
	Generate(address domain.Address) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Address domain.Address
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// --- Service Ports (Business Logic) ---

// LoyaltyService is the loyalty program orchestrator: every mutating
// operation resolves the caller, applies the role gate, applies the pause
// gate where applicable, delegates to the ledger state, and emits events on
// success. All operations are atomic; a failure leaves no partial state.
type LoyaltyService interface {
	// Admin-gated operations (never pause-gated).
	AddMerchant(ctx context.Context, caller, identity domain.Address) error
	RemoveMerchant(ctx context.Context, caller, identity domain.Address) error
	Pause(ctx context.Context, caller domain.Address) error
	Unpause(ctx context.Context, caller domain.Address) error

	// Merchant-gated, pause-gated reward operations.
	RewardCustomer(ctx context.Context, caller, customer domain.Address, amount *uint256.Int) error
	RewardCustomersInBatch(ctx context.Context, caller domain.Address, customers []domain.Address, amounts []*uint256.Int) error

	// Ungated (any caller), pause-gated redemption of the caller's own balance.
	RedeemTokens(ctx context.Context, caller domain.Address, amount *uint256.Int) error

	// Pure queries.
	IsMerchant(identity domain.Address) bool
	BalanceOf(identity domain.Address) *uint256.Int
	TotalSupply() *uint256.Int
	Paused() bool
}

// AuthService defines account registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for account registration.
type RegisterRequest struct {
	Username string
	Password string
}

// RegisterResponse holds the registration result.
type RegisterResponse struct {
	Address  domain.Address
	Username string
}
