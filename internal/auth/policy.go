package auth

import "github.com/corkboard/corkboard/internal/shared"

// Reason explains an authorization decision.
type Reason string

const (
	ReasonUnauthenticated Reason = "UNAUTHENTICATED"
	ReasonOwner           Reason = "OWNER"
	ReasonAdminOverride   Reason = "ADMIN_OVERRIDE"
	ReasonNotOwner        Reason = "NOT_OWNER"
)

// Decision is the transient outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Err maps a denial to its domain error. Allowed decisions map to nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonUnauthenticated {
		return shared.ErrUnauthenticated
	}
	return shared.ErrForbidden
}

// AuthorizeMutation decides whether the principal may mutate a resource
// owned by owner. The rule is owner-or-admin and is shared by every
// mutating board and comment operation. Pure function, no side effects.
func AuthorizeMutation(p *shared.Principal, owner string) Decision {
	switch {
	case p == nil:
		return Decision{Allowed: false, Reason: ReasonUnauthenticated}
	case p.Username == owner:
		return Decision{Allowed: true, Reason: ReasonOwner}
	case p.Role == shared.RoleAdmin:
		return Decision{Allowed: true, Reason: ReasonAdminOverride}
	default:
		return Decision{Allowed: false, Reason: ReasonNotOwner}
	}
}
