package cmd

import (
	"testing"

	"github.com/aweris/treesum/internal/remote"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAuth(t *testing.T) {
	t.Cleanup(viper.Reset)

	// No credentials configured: keychain fallback.
	viper.Reset()
	assert.Nil(t, registryAuth())

	// Configured credentials produce a basic authenticator.
	viper.Set("username", "robot")
	viper.Set("password", "hunter2")

	auth := registryAuth()
	require.NotNil(t, auth)

	basic, ok := auth.(*remote.BasicAuthenticator)
	require.True(t, ok)
	assert.Equal(t, "robot", basic.Username)
	assert.Equal(t, "hunter2", basic.Password)
}

func TestRegistryAuthFromEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	viper.SetEnvPrefix("TREESUM")
	viper.AutomaticEnv()

	t.Setenv("TREESUM_USERNAME", "ci")
	t.Setenv("TREESUM_PASSWORD", "token")

	auth := registryAuth()
	require.NotNil(t, auth)

	basic, ok := auth.(*remote.BasicAuthenticator)
	require.True(t, ok)
	assert.Equal(t, "ci", basic.Username)
	assert.Equal(t, "token", basic.Password)
}
