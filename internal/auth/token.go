package auth

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"trivia-api/internal/config"
	"trivia-api/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeQuestionsWrite allows creating and deleting questions.
const ScopeQuestionsWrite = "questions:write"

var (
	ErrInvalidToken      = errors.New("invalid admin token")
	ErrInsufficientScope = errors.New("token lacks required scope")
)

// AdminClaims are the claims of an admin token. Scope is space separated.
type AdminClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// HasScope reports whether scope is one of the granted scopes.
func (c *AdminClaims) HasScope(scope string) bool {
	return slices.Contains(strings.Fields(c.Scope), scope)
}

// TokenManager issues and verifies HS256 admin tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.AdminSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// Issue signs a token for subject carrying the given scopes.
func (m *TokenManager) Issue(subject string, scopes ...string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("admin secret is not configured")
	}
	now := m.now()
	claims := AdminClaims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			Issuer:    m.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses tokenString and checks that it grants scope.
func (m *TokenManager) Verify(tokenString, scope string) (*AdminClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.HasScope(scope) {
		return nil, ErrInsufficientScope
	}
	return claims, nil
}
