package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAuthenticator(t *testing.T) {
	auth := &BasicAuthenticator{Username: "robot", Password: "hunter2"}

	username, password, err := auth.Authenticate("ghcr.io")
	require.NoError(t, err)
	assert.Equal(t, "robot", username)
	assert.Equal(t, "hunter2", password)
}

func TestRemoteOptionsSelectAuth(t *testing.T) {
	// Fixed credentials take the basic-auth path; nil and empty
	// usernames fall back to the keychain. Either way exactly one
	// remote option is produced.
	for name, auth := range map[string]Authenticator{
		"basic":    &BasicAuthenticator{Username: "robot", Password: "hunter2"},
		"empty":    &BasicAuthenticator{},
		"keychain": nil,
	} {
		client, err := New("ghcr.io/org/fingerprints:main", auth)
		require.NoError(t, err, name)
		assert.Len(t, client.remoteOptions(), 1, name)
	}
}

func TestNewRejectsBadRef(t *testing.T) {
	_, err := New("ghcr.io/org/UPPER:tag:extra", nil)
	assert.Error(t, err)
}
