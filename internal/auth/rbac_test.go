package auth

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/go-faster/errors"
)

type stubStore struct {
	perms       map[string]Permission
	roles       map[string]Role
	links       map[string][]string
	assignments map[RoleAssignment]bool

	findRoleCalls int
	setCalls      int
	failSet       error
}

func newStubStore() *stubStore {
	return &stubStore{
		perms:       map[string]Permission{},
		roles:       map[string]Role{},
		links:       map[string][]string{},
		assignments: map[RoleAssignment]bool{},
	}
}

func (s *stubStore) FindPermission(_ context.Context, name string) (Permission, error) {
	p, ok := s.perms[name]
	if !ok {
		return Permission{}, ErrNotFound
	}
	return p, nil
}

func (s *stubStore) CreatePermission(_ context.Context, perm Permission) (Permission, error) {
	if _, ok := s.perms[perm.Name]; ok {
		return Permission{}, ErrConflict
	}
	s.perms[perm.Name] = perm
	return perm, nil
}

func (s *stubStore) FindRole(_ context.Context, teamID, name string) (Role, error) {
	s.findRoleCalls++
	r, ok := s.roles[teamID+"/"+name]
	if !ok {
		return Role{}, ErrNotFound
	}
	return r, nil
}

func (s *stubStore) CreateRole(_ context.Context, role Role) (Role, error) {
	key := role.TeamID + "/" + role.Name
	if _, ok := s.roles[key]; ok {
		return Role{}, ErrConflict
	}
	s.roles[key] = role
	return role, nil
}

func (s *stubStore) SetRolePermissions(_ context.Context, roleID string, names []string) error {
	s.setCalls++
	if s.failSet != nil {
		return s.failSet
	}
	for _, n := range names {
		if _, ok := s.perms[n]; !ok {
			return errors.Errorf("%w: permission %s", ErrNotFound, n)
		}
	}
	s.links[roleID] = append([]string(nil), names...)
	return nil
}

func (s *stubStore) RolePermissions(_ context.Context, roleID string) ([]string, error) {
	return s.links[roleID], nil
}

func (s *stubStore) HasRole(_ context.Context, a RoleAssignment) (bool, error) {
	return s.assignments[a], nil
}

func (s *stubStore) AssignRole(_ context.Context, a RoleAssignment) error {
	if s.assignments[a] {
		return ErrConflict
	}
	s.assignments[a] = true
	return nil
}

type countingCache struct {
	calls int
	err   error
}

func (c *countingCache) Forget(context.Context) error {
	c.calls++
	return c.err
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func TestEnsurePermissionsIsIdempotent(t *testing.T) {
	store := newStubStore()
	svc, err := NewRBACService(store, WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("NewRBACService: %v", err)
	}
	ctx := context.Background()

	created, err := svc.EnsurePermissions(ctx, DefaultPermissions())
	if err != nil {
		t.Fatalf("EnsurePermissions: %v", err)
	}
	if created != len(AllPermissions) {
		t.Fatalf("created %d, want %d", created, len(AllPermissions))
	}
	if !store.perms[PermCreateRole].IsProtected || store.perms[PermReadArticle].IsProtected {
		t.Fatalf("protection flags not applied")
	}

	created, err = svc.EnsurePermissions(ctx, DefaultPermissions())
	if err != nil {
		t.Fatalf("second EnsurePermissions: %v", err)
	}
	if created != 0 {
		t.Fatalf("second run created %d permissions", created)
	}

	if _, err := svc.EnsurePermissions(ctx, []PermissionDef{{Name: " "}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestEnsureRolesScopesByTeam(t *testing.T) {
	store := newStubStore()
	svc, _ := NewRBACService(store, WithIDGenerator(sequentialIDs()))
	ctx := context.Background()

	created, err := svc.EnsureRoles(ctx, "team-a", append(slices.Clone(AllRoles), RoleGod))
	if err != nil {
		t.Fatalf("EnsureRoles: %v", err)
	}
	if created != len(AllRoles) {
		t.Fatalf("created %d roles, want %d", created, len(AllRoles))
	}
	created, err = svc.EnsureRoles(ctx, "team-b", []string{RoleBeneficiary})
	if err != nil || created != 1 {
		t.Fatalf("team-b: created=%d err=%v", created, err)
	}
	created, err = svc.EnsureRoles(ctx, "team-a", AllRoles)
	if err != nil || created != 0 {
		t.Fatalf("rerun: created=%d err=%v", created, err)
	}
	if !store.roles["team-a/"+RoleGod].IsProtected {
		t.Fatal("god should be protected")
	}
	if _, err := svc.EnsureRoles(ctx, "", AllRoles); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSyncRolePermissionsReplacesAndSkipsMissing(t *testing.T) {
	store := newStubStore()
	cache := &countingCache{}
	svc, _ := NewRBACService(store, WithCache(cache), WithIDGenerator(sequentialIDs()))
	ctx := context.Background()

	if _, err := svc.EnsurePermissions(ctx, DefaultPermissions()); err != nil {
		t.Fatalf("EnsurePermissions: %v", err)
	}
	if _, err := svc.EnsureRoles(ctx, "team", []string{RoleFinancerAdmin}); err != nil {
		t.Fatalf("EnsureRoles: %v", err)
	}
	role := store.roles["team/"+RoleFinancerAdmin]
	store.links[role.ID] = []string{PermDeleteUser, "stale"}

	mapping := map[string][]string{
		RoleFinancerAdmin: {PermReadArticle, PermReadUser, PermReadArticle},
		"ghost":           {PermReadArticle},
	}
	res, err := svc.SyncRolePermissions(ctx, "team", mapping)
	if err != nil {
		t.Fatalf("SyncRolePermissions: %v", err)
	}
	if got := store.links[role.ID]; !slices.Equal(got, []string{PermReadArticle, PermReadUser}) {
		t.Fatalf("unexpected links %v", got)
	}
	if !slices.Equal(res.Missing, []string{"ghost"}) || !slices.Equal(res.Synced, []string{RoleFinancerAdmin}) {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Links != 2 {
		t.Fatalf("links=%d, want 2", res.Links)
	}
	if cache.calls != 1 {
		t.Fatalf("cache forgotten %d times, want 1", cache.calls)
	}
}

func TestSyncRolePermissionsPropagatesStoreErrors(t *testing.T) {
	store := newStubStore()
	cache := &countingCache{}
	svc, _ := NewRBACService(store, WithCache(cache))
	ctx := context.Background()
	if _, err := svc.EnsureRoles(ctx, "team", []string{RoleBeneficiary}); err != nil {
		t.Fatalf("EnsureRoles: %v", err)
	}
	store.failSet = errors.New("connection reset")

	if _, err := svc.SyncRolePermissions(ctx, "team", map[string][]string{RoleBeneficiary: {PermReadArticle}}); err == nil {
		t.Fatal("expected error")
	}
	if cache.calls != 0 {
		t.Fatal("cache must not be forgotten after a failed sync")
	}
}

func TestGrantRoleIsIdempotent(t *testing.T) {
	store := newStubStore()
	svc, _ := NewRBACService(store)
	ctx := context.Background()
	if _, err := svc.EnsureRoles(ctx, "team", []string{"manager"}); err != nil {
		t.Fatalf("EnsureRoles: %v", err)
	}
	lookups := store.findRoleCalls

	granted, err := svc.GrantRole(ctx, "team", "user-1", "manager")
	if err != nil || !granted {
		t.Fatalf("first grant: granted=%v err=%v", granted, err)
	}
	granted, err = svc.GrantRole(ctx, "team", "user-1", "manager")
	if err != nil || granted {
		t.Fatalf("second grant: granted=%v err=%v", granted, err)
	}
	if store.findRoleCalls != lookups {
		t.Fatalf("role lookups should be memoised, got %d extra", store.findRoleCalls-lookups)
	}
	if len(store.assignments) != 1 {
		t.Fatalf("expected one assignment, got %d", len(store.assignments))
	}

	if _, err := svc.GrantRole(ctx, "other-team", "user-1", "manager"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("role outside scope should be not found, got %v", err)
	}
	if _, err := svc.GrantRole(ctx, "team", "user-1", "unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GrantRole(ctx, "team", "", "manager"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
