package transport

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)

	token, err := issuer.Issue("session-1", "alice")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "session-1", claims.ID)
	require.Equal(t, "alice", claims.Subject)
}

func TestTokenRejections(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	token, err := issuer.Issue("session-1", "alice")
	require.NoError(t, err)

	_, err = issuer.Parse(token + "x")
	require.True(t, errors.Is(err, ErrInvalidToken), "tampered")

	_, err = NewTokenIssuer([]byte("other"), time.Hour).Parse(token)
	require.True(t, errors.Is(err, ErrInvalidToken), "wrong secret")

	_, err = issuer.Parse("")
	require.True(t, errors.Is(err, ErrInvalidToken), "empty")

	nameless, err := issuer.Issue("", "alice")
	require.NoError(t, err)
	_, err = issuer.Parse(nameless)
	require.True(t, errors.Is(err, ErrInvalidToken), "no session id")

	now = now.Add(2 * time.Hour)
	_, err = issuer.Parse(token)
	require.True(t, errors.Is(err, ErrInvalidToken), "expired")
}
