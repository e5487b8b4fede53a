package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParse_EmptyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Parse("")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestParse_TamperedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParse_ExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Issue(42)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	first, err := m.Issue(1)
	require.NoError(t, err)
	second, err := m.Issue(1)
	require.NoError(t, err)

	// Each login gets a distinct jti, so two sessions for the same user
	// never share a token.
	assert.NotEqual(t, first, second)
}
