package service

import (
	"context"
	"fmt"
	"sync"

	"loyalty-token-ledger/internal/core/domain"
	"loyalty-token-ledger/internal/core/ports"
	"loyalty-token-ledger/pkg/apperror"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

// LoyaltyServiceImpl implements ports.LoyaltyService. It owns the ledger, the
// role registry and the pause switch, and serializes every operation behind a
// single mutex: cross-entity invariants (total supply == sum of balances)
// must never be observed torn, and a batch must apply as one atomic unit.
type LoyaltyServiceImpl struct {
	mu     sync.Mutex
	ledger *domain.Ledger
	roles  *domain.RoleRegistry
	pause  *domain.PauseSwitch
	sinks  []ports.EventSink
	log    zerolog.Logger
}

// NewLoyaltyService creates the loyalty program.
//
// deployer is the identity initializing the program. When initialAdmin is the
// null sentinel the deployer becomes the administrator and also receives the
// Merchant role; otherwise only Admin is granted, to initialAdmin.
func NewLoyaltyService(
	deployer domain.Address,
	initialAdmin domain.Address,
	log zerolog.Logger,
	sinks ...ports.EventSink,
) (*LoyaltyServiceImpl, error) {
	admin := initialAdmin
	defaultPath := initialAdmin.IsZero()
	if defaultPath {
		admin = deployer
	}
	if admin.IsZero() {
		return nil, fmt.Errorf("loyalty program requires a non-null administrator")
	}

	roles := domain.NewRoleRegistry()
	if err := roles.Grant(domain.RoleAdmin, admin); err != nil {
		return nil, fmt.Errorf("seeding admin role: %w", err)
	}
	if defaultPath {
		if err := roles.Grant(domain.RoleMerchant, admin); err != nil {
			return nil, fmt.Errorf("seeding merchant role: %w", err)
		}
	}

	log.Info().
		Str("admin", admin.Hex()).
		Bool("admin_is_merchant", defaultPath).
		Msg("loyalty program initialized")

	return &LoyaltyServiceImpl{
		ledger: domain.NewLedger(),
		roles:  roles,
		pause:  domain.NewPauseSwitch(),
		sinks:  sinks,
		log:    log,
	}, nil
}

// AddMerchant grants the Merchant role. Admin only; callable while paused.
func (s *LoyaltyServiceImpl) AddMerchant(ctx context.Context, caller, identity domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.HasRole(caller, domain.RoleAdmin) {
		return apperror.ErrUnauthorized()
	}
	if err := s.roles.Grant(domain.RoleMerchant, identity); err != nil {
		return err
	}

	s.emit(ctx, domain.NewEvent(domain.EventMerchantAdded, caller, identity, nil))
	s.log.Info().
		Str("caller", caller.Hex()).
		Str("merchant", identity.Hex()).
		Msg("merchant added")
	return nil
}

// RemoveMerchant revokes the Merchant role. Admin only; callable while paused.
func (s *LoyaltyServiceImpl) RemoveMerchant(ctx context.Context, caller, identity domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.HasRole(caller, domain.RoleAdmin) {
		return apperror.ErrUnauthorized()
	}
	if err := s.roles.Revoke(domain.RoleMerchant, identity); err != nil {
		return err
	}

	s.emit(ctx, domain.NewEvent(domain.EventMerchantRemoved, caller, identity, nil))
	s.log.Info().
		Str("caller", caller.Hex()).
		Str("merchant", identity.Hex()).
		Msg("merchant removed")
	return nil
}

// Pause halts reward and redemption operations. Admin only. Idempotent.
func (s *LoyaltyServiceImpl) Pause(ctx context.Context, caller domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.HasRole(caller, domain.RoleAdmin) {
		return apperror.ErrUnauthorized()
	}
	s.pause.Pause()

	s.emit(ctx, domain.NewEvent(domain.EventProgramPaused, caller, domain.ZeroAddress, nil))
	s.log.Warn().Str("caller", caller.Hex()).Msg("program paused")
	return nil
}

// Unpause resumes reward and redemption operations. Admin only. Idempotent.
func (s *LoyaltyServiceImpl) Unpause(ctx context.Context, caller domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.HasRole(caller, domain.RoleAdmin) {
		return apperror.ErrUnauthorized()
	}
	s.pause.Unpause()

	s.emit(ctx, domain.NewEvent(domain.EventProgramUnpaused, caller, domain.ZeroAddress, nil))
	s.log.Info().Str("caller", caller.Hex()).Msg("program unpaused")
	return nil
}

// RewardCustomer mints tokens to a customer. Merchant only, pause-gated.
func (s *LoyaltyServiceImpl) RewardCustomer(ctx context.Context, caller, customer domain.Address, amount *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.HasRole(caller, domain.RoleMerchant) {
		return apperror.ErrUnauthorized()
	}
	if s.pause.IsPaused() {
		return apperror.ErrSystemPaused()
	}
	if err := s.ledger.Mint(customer, amount); err != nil {
		return err
	}

	s.emit(ctx, domain.NewEvent(domain.EventCustomerRewarded, caller, customer, amount))
	s.log.Info().
		Str("caller", caller.Hex()).
		Str("customer", customer.Hex()).
		Str("amount", amount.Dec()).
		Msg("customer rewarded")
	return nil
}

// RewardCustomersInBatch mints to each customer in order, all-or-nothing.
// Merchant only, pause-gated. One CustomerRewarded event per item.
func (s *LoyaltyServiceImpl) RewardCustomersInBatch(ctx context.Context, caller domain.Address, customers []domain.Address, amounts []*uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roles.HasRole(caller, domain.RoleMerchant) {
		return apperror.ErrUnauthorized()
	}
	if s.pause.IsPaused() {
		return apperror.ErrSystemPaused()
	}
	if err := s.ledger.MintBatch(customers, amounts); err != nil {
		return err
	}

	events := make([]domain.Event, len(customers))
	for i, customer := range customers {
		events[i] = domain.NewEvent(domain.EventCustomerRewarded, caller, customer, amounts[i])
	}
	s.emit(ctx, events...)
	s.log.Info().
		Str("caller", caller.Hex()).
		Int("customers", len(customers)).
		Msg("batch reward applied")
	return nil
}

// RedeemTokens burns tokens from the caller's own balance. Any caller,
// pause-gated.
func (s *LoyaltyServiceImpl) RedeemTokens(ctx context.Context, caller domain.Address, amount *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pause.IsPaused() {
		return apperror.ErrSystemPaused()
	}
	if err := s.ledger.Burn(caller, amount); err != nil {
		return err
	}

	s.emit(ctx, domain.NewEvent(domain.EventTokensRedeemed, caller, caller, amount))
	s.log.Info().
		Str("caller", caller.Hex()).
		Str("amount", amount.Dec()).
		Msg("tokens redeemed")
	return nil
}

// IsMerchant reports whether the identity holds the Merchant role. Ungated.
func (s *LoyaltyServiceImpl) IsMerchant(identity domain.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roles.HasRole(identity, domain.RoleMerchant)
}

// BalanceOf returns the identity's balance. Ungated; absent entries read zero.
func (s *LoyaltyServiceImpl) BalanceOf(identity domain.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.BalanceOf(identity)
}

// TotalSupply returns the aggregate token supply.
func (s *LoyaltyServiceImpl) TotalSupply() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TotalSupply()
}

// Paused reports the pause flag.
func (s *LoyaltyServiceImpl) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pause.IsPaused()
}

// emit fans events out to every sink. Emission is best-effort and strictly
// after the state change: a sink failure is logged, never propagated.
func (s *LoyaltyServiceImpl) emit(ctx context.Context, events ...domain.Event) {
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, events...); err != nil {
			s.log.Warn().Err(err).Int("events", len(events)).Msg("event sink publish failed")
		}
	}
}
