package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/internal/server/api/auth"
)

func TestGenKey(t *testing.T) {
	key, err := auth.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, auth.AutoGenKeyLength)
	assert.Regexp(t, "^[0-9A-Za-z]{16}$", key)

	other, err := auth.GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveKey(t *testing.T) {
	testCases := []struct {
		name     string
		password string
	}{
		{name: "normal password", password: "password123"},
		{name: "single char", password: "1"},
		{name: "long unicode password", password: "dkfghdfg90d78h350ß8dgfjkdfg#---23489dfg!!!@!@#$$%&/()="},
	}
	seen := map[string]string{}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := auth.DeriveKey(tc.password)
			require.NoError(t, err)
			assert.Len(t, key, 32)

			again, err := auth.DeriveKey(tc.password)
			require.NoError(t, err)
			assert.Equal(t, key, again)

			for pw, k := range seen {
				assert.NotEqual(t, k, string(key), "collides with %q", pw)
			}
			seen[tc.password] = string(key)
		})
	}

	_, err := auth.DeriveKey("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)
}

func TestDeriveSessionKey(t *testing.T) {
	key := make([]byte, 32)
	serverNonce := make([]byte, 32)
	clientNonce := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
		serverNonce[i] = byte(i + 10)
		clientNonce[i] = byte(i + 20)
	}

	sessionKey := auth.DeriveSessionKey(key, serverNonce, clientNonce)
	assert.Len(t, sessionKey, 32)
	assert.Equal(t, sessionKey, auth.DeriveSessionKey(key, serverNonce, clientNonce))

	clientNonce[0] = 99
	assert.NotEqual(t, sessionKey, auth.DeriveSessionKey(key, serverNonce, clientNonce))
}
