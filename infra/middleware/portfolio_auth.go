package middleware

import (
	"strings"

	"portfolio_server/core/domain"
	"portfolio_server/core/port/out"
	"portfolio_server/core/service/auth"
	"portfolio_server/pkg/logger"
	"portfolio_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Context keys populated by the session guard.
const (
	LocalsUser   = "user"
	LocalsUserID = "user_id"
)

// AccessTokenCookie is the session cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// SessionGuard authenticates a request by its access token. On success the
// sanitized user is attached to the request context; on any failure the
// request short-circuits with a 401 envelope and no downstream work runs.
func SessionGuard(tokens *auth.TokenService, users out.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		tokenString := c.Cookies(AccessTokenCookie)
		if tokenString == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				tokenString = after
			}
		}
		if tokenString == "" {
			return response.Fail(c, fiber.StatusUnauthorized, "unauthorized request")
		}

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			logger.WithError(err).Debug("access token rejected")
			return response.Fail(c, fiber.StatusUnauthorized, "Invalid access token")
		}

		user, err := users.FindByID(c.Context(), claims.UserID)
		if err != nil {
			logger.WithError(err).Error("session user lookup failed")
			return response.Fail(c, fiber.StatusUnauthorized, "Invalid access token")
		}
		if user == nil {
			return response.Fail(c, fiber.StatusUnauthorized, "Invalid access token")
		}

		c.Locals(LocalsUser, user.Sanitized())
		c.Locals(LocalsUserID, user.ID)
		return c.Next()
	}
}

// SessionUser returns the sanitized user attached by the session guard.
func SessionUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(LocalsUser).(*domain.User)
	return user, ok
}

// SessionUserID returns the authenticated user id attached by the session
// guard.
func SessionUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(LocalsUserID).(string)
	return id, ok && id != ""
}
