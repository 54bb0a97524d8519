package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upengage.io/seeder/internal/auth"
	"upengage.io/seeder/internal/config"
	"upengage.io/seeder/internal/seeder"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRolesCommandListsEveryRole(t *testing.T) {
	out, err := execute(t, "roles")
	require.NoError(t, err)
	for _, role := range auth.AllRoles {
		assert.Contains(t, out, role)
	}
}

func TestRolesCommandShowsOneRole(t *testing.T) {
	out, err := execute(t, "roles", auth.RoleFinancerAdmin)
	require.NoError(t, err)
	assert.Contains(t, out, "assignable roles: "+auth.RoleBeneficiary)
	assert.True(t, strings.Contains(out, "permissions:"))

	_, err = execute(t, "roles", "janitor")
	assert.Error(t, err)
}

func TestLoadConfigAppliesEnvFlag(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	require.NoError(t, seedCmd.ParseFlags([]string{"--env", "production"}))
	t.Cleanup(func() {
		_ = seedCmd.Flags().Set("env", "")
	})

	cfg, err := loadConfig(seedCmd)
	require.NoError(t, err)
	assert.Equal(t, config.Production, cfg.Environment)
	assert.Equal(t, seeder.Options{}, seedOptions(cfg))

	_, err = execute(t, "seed", "--env", "qa")
	assert.ErrorContains(t, err, "unknown APP_ENV")
}
