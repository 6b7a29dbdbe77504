package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildhub-lab/buildhub/dao/model"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := newTokenManager("test-secret", 1, 168)

	msg := &JWTMessage{
		UserID:   42,
		Username: "alice",
		Role:     model.RoleUser,
		Teams:    []string{"team-a", "team-b"},
	}

	access, refresh, err := tm.CreateTokens(msg)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	decoded, err := tm.CheckToken(access)
	require.NoError(t, err)
	assert.Equal(t, msg.UserID, decoded.UserID)
	assert.Equal(t, msg.Username, decoded.Username)
	assert.Equal(t, msg.Role, decoded.Role)
	assert.Equal(t, msg.Teams, decoded.Teams)
}

func TestCheckTokenRejectsWrongSecret(t *testing.T) {
	tm := newTokenManager("test-secret", 1, 168)
	other := newTokenManager("other-secret", 1, 168)

	access, _, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = other.CheckToken(access)
	assert.Error(t, err)
}
