package domain

// Resource is the minimal view of a protected object that policies evaluate
// against: its identity and the identity of its owner. Entity optionally
// carries the fully loaded object so downstream handlers can reuse it without
// a second fetch.
type Resource struct {
	ID      string
	OwnerID string
	Entity  any
}

// Policy is an allow/deny decision over (caller, target). Policies are pure
// predicates composed before invocation; none mutate state.
type Policy interface {
	Allows(caller *User, res *Resource) bool
}

type roleIn map[string]struct{}

// RoleIn allows callers whose role is in the given set.
func RoleIn(roles ...string) Policy {
	set := make(roleIn, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (p roleIn) Allows(caller *User, _ *Resource) bool {
	if caller == nil {
		return false
	}
	_, ok := p[caller.Role]
	return ok
}

type ownerOf struct{}

// OwnerOf allows the caller when the target resource is owned by them.
func OwnerOf() Policy { return ownerOf{} }

func (ownerOf) Allows(caller *User, res *Resource) bool {
	return caller != nil && res != nil && res.OwnerID != "" && res.OwnerID == caller.ID
}

type selfOnly struct{}

// SelfOnly allows the caller when the target resource is their own account.
func SelfOnly() Policy { return selfOnly{} }

func (selfOnly) Allows(caller *User, res *Resource) bool {
	return caller != nil && res != nil && res.ID != "" && res.ID == caller.ID
}

type anyOf []Policy

// Any allows when at least one of the given policies allows.
func Any(policies ...Policy) Policy { return anyOf(policies) }

func (p anyOf) Allows(caller *User, res *Resource) bool {
	for _, policy := range p {
		if policy.Allows(caller, res) {
			return true
		}
	}
	return false
}

// AdminOrOwner is the standard resource policy: admin role supersedes the
// ownership check.
var AdminOrOwner = Any(RoleIn(RoleAdmin), OwnerOf())

// SelfOrAdmin is the standard account policy: a user may act on their own
// account, an admin on any account.
var SelfOrAdmin = Any(RoleIn(RoleAdmin), SelfOnly())
