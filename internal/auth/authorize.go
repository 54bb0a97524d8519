package auth

import "github.com/go-faster/errors"


// AssignableRoles returns the roles a holder of role may grant to others. Each
// role may grant every role strictly below it.
func AssignableRoles(role string) ([]string, error) {
	for i, r := range AllRoles {
		if r == role {
			out := make([]string, len(AllRoles)-i-1)
			copy(out, AllRoles[i+1:])
			return out, nil
		}
	}
	return nil, errors.Errorf("%w: role %q", ErrNotFound, role)
}

// CanManageRole reports whether any of held may assign target.
func CanManageRole(held []string, target string) bool {
	for _, role := range held {
		assignable, err := AssignableRoles(role)
		if err != nil {
			continue
		}
		for _, r := range assignable {
			if r == target {
				return true
			}
		}
	}
	return false
}

// Principal is the effective permission set for a combination of roles.
type Principal struct {
	Roles       []string
	Permissions map[string]struct{}
}

// NewPrincipal resolves the permissions granted by roles.
func NewPrincipal(roles []string) (Principal, error) {
	set := make(map[string]struct{})
	for _, role := range roles {
		perms, err := PermissionsForRole(role)
		if err != nil {
			return Principal{}, err
		}
		for _, p := range perms {
			set[p] = struct{}{}
		}
	}
	return Principal{Roles: dedupeStrings(roles), Permissions: set}, nil
}

// HasPermission reports whether the principal can execute action identified by name.
func (p Principal) HasPermission(name string) bool {
	_, ok := p.Permissions[name]
	return ok
}
