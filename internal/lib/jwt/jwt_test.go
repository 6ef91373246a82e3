package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestNewToken_RoundTrip(t *testing.T) {
	token, err := NewToken("sid-1", "admin@dcolors.test", time.Hour, secret)
	require.NoError(t, err)

	meta, err := ParseToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "sid-1", meta.SessionID)
	assert.Equal(t, "admin@dcolors.test", meta.Email)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), meta.ExpiresAt, 5)
	assert.LessOrEqual(t, meta.IssuedAt, time.Now().Unix())
}

func TestParseToken_Errors(t *testing.T) {
	expired, err := NewToken("sid-1", "admin@dcolors.test", -time.Minute, secret)
	require.NoError(t, err)

	foreign, err := NewToken("sid-1", "admin@dcolors.test", time.Hour, []byte("other"))
	require.NoError(t, err)

	noSession, err := NewToken("", "admin@dcolors.test", time.Hour, secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, ErrTokenExpired},
		{"wrong secret", foreign, ErrInvalidToken},
		{"garbage", "invalid.token.string", ErrInvalidToken},
		{"missing sid", noSession, ErrInvalidTokenClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, secret)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
