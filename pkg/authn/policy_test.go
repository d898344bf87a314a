package authn_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/authn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutePolicyProtected(t *testing.T) {
	policy := &authn.RoutePolicy{ProtectedPrefixes: []string{"/account", "/orders"}}

	assert.True(t, policy.Protected("/account"))
	assert.True(t, policy.Protected("/account/addresses"))
	assert.True(t, policy.Protected("/orders/123"))
	assert.False(t, policy.Protected("/"))
	assert.False(t, policy.Protected("/products"))
}

func TestLoadRoutePolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"protected_prefixes:\n  - /account\n  - /wishlist\nlogged_out_path: /login-required\n",
	), 0600))

	policy, err := authn.LoadRoutePolicy(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/account", "/wishlist"}, policy.ProtectedPrefixes)
	assert.Equal(t, "/login-required", policy.LoggedOutPath)
}

func TestLoadRoutePolicyFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0600))

	policy, err := authn.LoadRoutePolicy(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/account"}, policy.ProtectedPrefixes)
	assert.Equal(t, "/", policy.LoggedOutPath)
}

func TestLoadRoutePolicyMissingFile(t *testing.T) {
	_, err := authn.LoadRoutePolicy(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read route policy")
}
