package domain

import "loyalty-token-ledger/pkg/apperror"

// Role is a capability grantable to an account identity.
type Role string

const (
	// RoleAdmin manages merchant membership and the pause switch.
	RoleAdmin Role = "admin"
	// RoleMerchant mints reward tokens to customer identities.
	RoleMerchant Role = "merchant"
)

// RoleRegistry stores which identities hold each role. It is a passive data
// structure: authorization of the caller is the orchestrator's responsibility.
type RoleRegistry struct {
	members map[Role]map[Address]struct{}
}

// NewRoleRegistry creates an empty registry.
func NewRoleRegistry() *RoleRegistry {
	return &RoleRegistry{
		members: map[Role]map[Address]struct{}{
			RoleAdmin:    {},
			RoleMerchant: {},
		},
	}
}

// Grant adds the role to the identity. Fails on the null identity and when
// the identity already holds the role; membership is never duplicated.
func (r *RoleRegistry) Grant(role Role, addr Address) error {
	if addr.IsZero() {
		return apperror.ErrInvalidIdentity()
	}
	if r.HasRole(addr, role) {
		return apperror.ErrAlreadyHasRole(string(role))
	}
	r.members[role][addr] = struct{}{}
	return nil
}

// Revoke removes the role from the identity. Fails on the null identity and
// when the role is not held. Only merchant revocation is reachable through
// the public surface; admin membership is permanent once granted.
func (r *RoleRegistry) Revoke(role Role, addr Address) error {
	if addr.IsZero() {
		return apperror.ErrInvalidIdentity()
	}
	if !r.HasRole(addr, role) {
		return apperror.ErrRoleNotHeld(string(role))
	}
	delete(r.members[role], addr)
	return nil
}

// HasRole reports whether the identity holds the role. Pure query.
func (r *RoleRegistry) HasRole(addr Address, role Role) bool {
	_, ok := r.members[role][addr]
	return ok
}
