package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRegistry_GrantAndHas(t *testing.T) {
	r := NewRoleRegistry()
	merchant := addr(1)

	assert.False(t, r.HasRole(merchant, RoleMerchant))
	require.NoError(t, r.Grant(RoleMerchant, merchant))
	assert.True(t, r.HasRole(merchant, RoleMerchant))
	assert.False(t, r.HasRole(merchant, RoleAdmin), "roles are independent sets")
}

func TestRoleRegistry_Grant_AlreadyHasRole(t *testing.T) {
	r := NewRoleRegistry()
	merchant := addr(1)
	require.NoError(t, r.Grant(RoleMerchant, merchant))

	err := r.Grant(RoleMerchant, merchant)
	assert.Equal(t, "ROLE_001", appCode(t, err))
	// Membership is not duplicated: a single revoke empties it.
	require.NoError(t, r.Revoke(RoleMerchant, merchant))
	assert.False(t, r.HasRole(merchant, RoleMerchant))
}

func TestRoleRegistry_Grant_NullIdentity(t *testing.T) {
	r := NewRoleRegistry()
	err := r.Grant(RoleAdmin, ZeroAddress)
	assert.Equal(t, "LED_001", appCode(t, err))
}

func TestRoleRegistry_Revoke_RoleNotHeld(t *testing.T) {
	r := NewRoleRegistry()
	err := r.Revoke(RoleMerchant, addr(1))
	assert.Equal(t, "ROLE_002", appCode(t, err))
}

func TestRoleRegistry_Revoke_NullIdentity(t *testing.T) {
	r := NewRoleRegistry()
	err := r.Revoke(RoleMerchant, ZeroAddress)
	assert.Equal(t, "LED_001", appCode(t, err))
}

func TestRoleRegistry_SameIdentityBothRoles(t *testing.T) {
	r := NewRoleRegistry()
	admin := addr(7)
	require.NoError(t, r.Grant(RoleAdmin, admin))
	require.NoError(t, r.Grant(RoleMerchant, admin))
	assert.True(t, r.HasRole(admin, RoleAdmin))
	assert.True(t, r.HasRole(admin, RoleMerchant))
}

func TestPauseSwitch(t *testing.T) {
	p := NewPauseSwitch()
	assert.False(t, p.IsPaused(), "switch starts unpaused")

	p.Pause()
	assert.True(t, p.IsPaused())

	// Idempotent: pausing twice is not an error and keeps the flag set.
	p.Pause()
	assert.True(t, p.IsPaused())

	p.Unpause()
	assert.False(t, p.IsPaused())

	p.Unpause()
	assert.False(t, p.IsPaused())
}

func TestNewEvent(t *testing.T) {
	caller, account := addr(1), addr(2)
	e := NewEvent(EventCustomerRewarded, caller, account, amount(100))

	assert.Equal(t, EventCustomerRewarded, e.Type)
	assert.Equal(t, caller, e.Caller)
	assert.Equal(t, account, e.Account)
	assert.Equal(t, "100", e.Amount)
	assert.NotEqual(t, e.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, e.OccurredAt.IsZero())
}

func TestNewEvent_NoAmount(t *testing.T) {
	e := NewEvent(EventProgramPaused, addr(1), ZeroAddress, nil)
	assert.Empty(t, e.Amount)
}
