package auth

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/ids"
)

// RBACService bootstraps permissions and roles and grants roles to users.
type RBACService struct {
	store RBACStore
	cache Cache
	log   *logrus.Entry
	newID ids.Generator

	mu    sync.Mutex
	roles map[string]Role
}

type Option func(*RBACService)

func WithCache(c Cache) Option {
	return func(s *RBACService) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *RBACService) {
		if l != nil {
			s.log = l
		}
	}
}

func WithIDGenerator(gen ids.Generator) Option {
	return func(s *RBACService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func NewRBACService(store RBACStore, opts ...Option) (*RBACService, error) {
	if store == nil {
		return nil, errors.New("rbac store is required")
	}
	s := &RBACService{
		store: store,
		cache: NopCache{},
		log:   logrus.NewEntry(logrus.StandardLogger()),
		newID: ids.New,
		roles: make(map[string]Role),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// EnsurePermissions creates every missing permission by name and returns how many were created.
func (s *RBACService) EnsurePermissions(ctx context.Context, defs []PermissionDef) (int, error) {
	created := 0
	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return created, errors.Errorf("%w: permission name is required", ErrInvalidInput)
		}
		_, err := s.store.FindPermission(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return created, errors.Wrapf(err, "find permission %s", name)
		}
		if _, err := s.store.CreatePermission(ctx, Permission{
			ID:          s.newID(),
			Name:        name,
			IsProtected: def.IsProtected,
		}); err != nil {
			return created, errors.Wrapf(err, "create permission %s", name)
		}
		created++
	}
	return created, nil
}

// EnsureRoles creates every missing role within the team scope.
func (s *RBACService) EnsureRoles(ctx context.Context, teamID string, names []string) (int, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return 0, errors.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	created := 0
	for _, name := range dedupeStrings(names) {
		if _, err := s.resolveRole(ctx, teamID, name); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return created, errors.Wrapf(err, "find role %s", name)
		}
		role, err := s.store.CreateRole(ctx, Role{
			ID:          s.newID(),
			TeamID:      teamID,
			Name:        name,
			IsProtected: protectedRoles[name],
		})
		if err != nil {
			return created, errors.Wrapf(err, "create role %s", name)
		}
		s.remember(role)
		created++
	}
	return created, nil
}

// SyncRolePermissions replaces each mapped role's permissions with exactly the
// mapped list. Roles missing from the store are skipped. The permission cache
// is invalidated once all roles are synced.
func (s *RBACService) SyncRolePermissions(ctx context.Context, teamID string, mapping map[string][]string) (SyncResult, error) {
	var result SyncResult
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		role, err := s.resolveRole(ctx, teamID, name)
		if errors.Is(err, ErrNotFound) {
			s.log.WithField("role", name).Warn("role not found, skipping permission sync")
			result.Missing = append(result.Missing, name)
			continue
		}
		if err != nil {
			return result, errors.Wrapf(err, "find role %s", name)
		}
		perms := dedupeStrings(mapping[name])
		if err := s.store.SetRolePermissions(ctx, role.ID, perms); err != nil {
			return result, errors.Wrapf(err, "sync permissions for %s", name)
		}
		result.Synced = append(result.Synced, name)
		result.Links += len(perms)
	}

	if err := s.cache.Forget(ctx); err != nil {
		return result, errors.Wrap(err, "forget permission cache")
	}
	return result, nil
}

// GrantRole assigns roleName within teamID to userID. It reports false without
// writing when the user already holds the role.
func (s *RBACService) GrantRole(ctx context.Context, teamID, userID, roleName string) (bool, error) {
	teamID = strings.TrimSpace(teamID)
	userID = strings.TrimSpace(userID)
	roleName = strings.TrimSpace(roleName)
	if teamID == "" || userID == "" || roleName == "" {
		return false, errors.Errorf("%w: team_id, user_id and role are required", ErrInvalidInput)
	}
	role, err := s.resolveRole(ctx, teamID, roleName)
	if err != nil {
		return false, err
	}
	assignment := RoleAssignment{UserID: userID, RoleID: role.ID, TeamID: teamID}
	held, err := s.store.HasRole(ctx, assignment)
	if err != nil {
		return false, err
	}
	if held {
		return false, nil
	}
	if err := s.store.AssignRole(ctx, assignment); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RBACService) resolveRole(ctx context.Context, teamID, name string) (Role, error) {
	key := teamID + "\x00" + name
	s.mu.Lock()
	role, ok := s.roles[key]
	s.mu.Unlock()
	if ok {
		return role, nil
	}
	role, err := s.store.FindRole(ctx, teamID, name)
	if err != nil {
		return Role{}, err
	}
	s.remember(role)
	return role, nil
}

func (s *RBACService) remember(role Role) {
	s.mu.Lock()
	s.roles[role.TeamID+"\x00"+role.Name] = role
	s.mu.Unlock()
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
