package fixtures

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/ids"
	"upengage.io/seeder/internal/tenancy"
)

type recordingWriter struct {
	financers []tenancy.Financer
	users     []tenancy.User
	rels      []tenancy.Relationship
	batches   int
}

func (w *recordingWriter) InsertFinancers(_ context.Context, f []tenancy.Financer) error {
	w.financers = append(w.financers, f...)
	return nil
}

func (w *recordingWriter) InsertUsers(_ context.Context, u []tenancy.User) error {
	w.batches++
	w.users = append(w.users, u...)
	return nil
}

func (w *recordingWriter) InsertRelationships(_ context.Context, r []tenancy.Relationship) error {
	w.rels = append(w.rels, r...)
	return nil
}

func TestLargeUserSeeder(t *testing.T) {
	w := &recordingWriter{}
	seeder, err := NewLargeUserSeeder(w, NewFactory(7, "team-1"), Options{
		Financers:        2,
		UsersPerFinancer: 120,
		ChunkSize:        50,
		DivisionID:       "div-1",
	}, nil)
	require.NoError(t, err)

	res, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Financers: 2, Users: 240, Relationships: 240}, res)
	assert.Equal(t, 6, w.batches)

	emails := map[string]bool{}
	for _, u := range w.users {
		require.True(t, ids.IsUUID(u.ID))
		require.False(t, emails[u.Email], "duplicate email %s", u.Email)
		emails[u.Email] = true
		assert.Equal(t, "team-1", u.TeamID)
		assert.True(t, strings.HasSuffix(u.Email, ".test"))
	}

	active := 0
	roles := map[string]int{}
	for _, r := range w.rels {
		if r.Active {
			active++
		}
		roles[r.Role]++
		assert.True(t, auth.IsRole(r.Role))
	}
	assert.Equal(t, 216, active)
	assert.Equal(t, 12, roles[auth.RoleFinancerSuperAdmin])
	assert.Equal(t, 24, roles[auth.RoleFinancerAdmin])
}

func TestFactoryIsDeterministic(t *testing.T) {
	a := NewFactory(42, "team")
	b := NewFactory(42, "team")
	ua, ub := a.User("x.test"), b.User("x.test")
	assert.Equal(t, ua.Email, ub.Email)
	assert.NotEqual(t, ua.ID, ub.ID)
	assert.Equal(t, "sandboxsas.test", domainFor("Sandbox SAS"))
	assert.Equal(t, "example.test", domainFor("***"))
}

func TestLargeUserSeederValidates(t *testing.T) {
	_, err := NewLargeUserSeeder(&recordingWriter{}, NewFactory(1, "t"), Options{Financers: 0, UsersPerFinancer: 1, DivisionID: "d"}, nil)
	assert.Error(t, err)
	_, err = NewLargeUserSeeder(&recordingWriter{}, NewFactory(1, "t"), Options{Financers: 1, UsersPerFinancer: 1}, nil)
	assert.Error(t, err)
	_, err = NewLargeUserSeeder(nil, NewFactory(1, "t"), Options{Financers: 1, UsersPerFinancer: 1, DivisionID: "d"}, nil)
	assert.Error(t, err)
}
