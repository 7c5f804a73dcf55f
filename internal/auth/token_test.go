package auth

import (
	"testing"
	"time"

	"trivia-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *TokenManager {
	return NewTokenManager(config.AuthConfig{AdminSecret: "test-secret", Issuer: "trivia-api", TokenTTL: time.Hour})
}

func TestIssueAndVerify(t *testing.T) {
	m := newManager()

	token, err := m.Issue("ops", ScopeQuestionsWrite)
	require.NoError(t, err)

	claims, err := m.Verify(token, ScopeQuestionsWrite)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, "trivia-api", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_MissingScope(t *testing.T) {
	m := newManager()

	token, err := m.Issue("reader", "questions:read")
	require.NoError(t, err)

	_, err = m.Verify(token, ScopeQuestionsWrite)
	assert.ErrorIs(t, err, ErrInsufficientScope)
}

func TestVerify_Expired(t *testing.T) {
	m := newManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.Issue("ops", ScopeQuestionsWrite)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token, ScopeQuestionsWrite)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenManager(config.AuthConfig{AdminSecret: "other", Issuer: "trivia-api", TokenTTL: time.Hour}).
		Issue("ops", ScopeQuestionsWrite)
	require.NoError(t, err)

	_, err = newManager().Verify(token, ScopeQuestionsWrite)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	claims := AdminClaims{
		Scope: ScopeQuestionsWrite,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "trivia-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newManager().Verify(token, ScopeQuestionsWrite)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := newManager().Verify("not-a-jwt", ScopeQuestionsWrite)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_WithoutSecret(t *testing.T) {
	_, err := NewTokenManager(config.AuthConfig{}).Issue("ops", ScopeQuestionsWrite)
	assert.Error(t, err)
}

func TestHasScope(t *testing.T) {
	c := &AdminClaims{Scope: "questions:read questions:write"}
	assert.True(t, c.HasScope("questions:write"))
	assert.False(t, c.HasScope("questions"))
}
