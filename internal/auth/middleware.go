package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const tokenUserKey = "token_user"

// AuthMiddleware validates identity tokens carried in the `token` header.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. A missing header is
// a 400, a failed verification a 401; both halt the pipeline.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Get("token")
	if raw == "" {
		return apperrors.NewAuthRequired("No token , authorization denied")
	}

	user, err := m.tokens.Verify(raw)
	if err != nil {
		return apperrors.NewUnauthorized("token is not valid")
	}

	c.Locals(tokenUserKey, user)
	return c.Next()
}

// TokenUserFromContext retrieves the authenticated identity.
func TokenUserFromContext(c *fiber.Ctx) (*TokenUser, bool) {
	val := c.Locals(tokenUserKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*TokenUser)
	return user, ok
}
