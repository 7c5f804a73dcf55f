package middleware

import (
	"errors"
	"strings"

	"trivia-api/internal/auth"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	BearerSchema    = "Bearer "
	AdminSubjectKey = "adminSubject"
)

// RequireScope rejects requests without a bearer token granting scope.
func RequireScope(tokens *auth.TokenManager, scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "authorization header is missing", nil)
		}
		if !strings.HasPrefix(header, BearerSchema) {
			return unauthorized(c, "authorization scheme is not Bearer", nil)
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "token is empty", nil)
		}

		claims, err := tokens.Verify(tokenString, scope)
		if err != nil {
			if errors.Is(err, auth.ErrInsufficientScope) {
				logger.Get().Warn("Admin token without required scope",
					zap.String("path", c.Path()), zap.String("scope", scope))
			}
			return unauthorized(c, "invalid admin token", err)
		}

		c.Locals(AdminSubjectKey, claims.Subject)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string, err error) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="trivia"`)
	return domain.NewUnauthorizedError(message, err)
}
