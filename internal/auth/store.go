package auth

import "context"

// RBACStore describes persistence operations required to bootstrap roles and permissions.
type RBACStore interface {
	FindPermission(ctx context.Context, name string) (Permission, error)
	CreatePermission(ctx context.Context, perm Permission) (Permission, error)

	FindRole(ctx context.Context, teamID, name string) (Role, error)
	CreateRole(ctx context.Context, role Role) (Role, error)

	// SetRolePermissions replaces the role's permission links with exactly names.
	SetRolePermissions(ctx context.Context, roleID string, names []string) error
	RolePermissions(ctx context.Context, roleID string) ([]string, error)

	HasRole(ctx context.Context, assignment RoleAssignment) (bool, error)
	AssignRole(ctx context.Context, assignment RoleAssignment) error
}

// Cache is the authorization layer's permission cache.
type Cache interface {
	Forget(ctx context.Context) error
}

// NopCache is used when no cache backend is configured.
type NopCache struct{}

func (NopCache) Forget(context.Context) error { return nil }
