package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestSignAndParseToken(t *testing.T) {
	token, err := SignToken(Session{UserID: "u1", Role: RoleUser}, secret, time.Hour)
	require.NoError(t, err)

	sess, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, RoleUser, sess.Role)
	assert.False(t, sess.IsAdmin())
}

func TestParseToken_AdminRole(t *testing.T) {
	token, err := SignToken(Session{UserID: "a1", Role: RoleAdmin}, secret, time.Hour)
	require.NoError(t, err)

	sess, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
}

func TestParseToken_UnknownRoleDowngradesToUser(t *testing.T) {
	token, err := SignToken(Session{UserID: "u1", Role: Role("superuser")}, secret, time.Hour)
	require.NoError(t, err)

	sess, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, sess.Role)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := SignToken(Session{UserID: "u1", Role: RoleUser}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := SignToken(Session{UserID: "u1", Role: RoleUser}, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", secret)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := SessionFrom(ctx)
	assert.False(t, ok)

	ctx = WithSession(ctx, Session{UserID: "u1", Role: RoleAdmin})
	sess, ok := SessionFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", sess.UserID)
	assert.True(t, sess.IsAdmin())
}
