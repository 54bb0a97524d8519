package auth

import "time"

// Permission is a named capability checked by the platform's authorization layer.
type Permission struct {
	ID          string
	Name        string
	IsProtected bool
	CreatedAt   time.Time
}

// Role groups permissions within a team scope.
type Role struct {
	ID          string
	TeamID      string
	Name        string
	IsProtected bool
	CreatedAt   time.Time
}

// RoleAssignment grants a role to a user inside a team scope.
type RoleAssignment struct {
	UserID string
	RoleID string
	TeamID string
}

// PermissionDef describes a permission to bootstrap.
type PermissionDef struct {
	Name        string
	IsProtected bool
}

// SyncResult summarises a role permission synchronisation.
type SyncResult struct {
	Synced  []string
	Missing []string
	Links   int
}
