package middleware

import (
	"strings"

	"quizly/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	// AccessTokenCookie is where the browser client carries the access token.
	AccessTokenCookie = "access_token"
	// RefreshTokenCookie is where the refresh token travels.
	RefreshTokenCookie = "refresh_token"

	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	// UserIDKey is the fiber.Ctx locals key holding the authenticated user id.
	UserIDKey = "userID"
)

// Protected requires a valid access token. The token is read from the
// HTTP-only cookie first (browser clients), with an Authorization
// Bearer header fallback for API clients.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AccessTokenCookie)
		if tokenString == "" {
			authHeader := c.Get(AuthorizationHeader)
			if strings.HasPrefix(authHeader, BearerSchema) {
				tokenString = strings.TrimPrefix(authHeader, BearerSchema)
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_CREDENTIALS",
				Message: "Authentication credentials were not provided",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateAccessToken(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Invalid or expired access token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}
