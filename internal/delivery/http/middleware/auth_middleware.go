package middleware

import (
	"errors"
	"strings"

	"jobradar/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

// AdminAuthMiddleware guards the manual aggregation trigger with a bearer
// token carrying the admin role.
type AdminAuthMiddleware struct {
	jwt jwt.Service
}

func NewAdminAuthMiddleware(jwtSvc jwt.Service) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{jwt: jwtSvc}
}

func (m *AdminAuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		if _, err := m.jwt.ValidateToken(token); err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
