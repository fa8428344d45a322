package http

import (
	"time"

	"portfolio_server/core/domain"
	"portfolio_server/pkg/apperr"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// Session cookie names. Expiry is carried by the tokens themselves, not the
// cookie layer.
const (
	cookieAccessToken  = "accessToken"
	cookieRefreshToken = "refreshToken"
)

func sessionCookie(name, value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// setSessionCookies attaches both token cookies to the response.
func setSessionCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(sessionCookie(cookieAccessToken, accessToken))
	c.Cookie(sessionCookie(cookieRefreshToken, refreshToken))
}

// clearSessionCookies expires both token cookies.
func clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{cookieAccessToken, cookieRefreshToken} {
		cookie := sessionCookie(name, "")
		cookie.Expires = time.Unix(0, 0)
		c.Cookie(cookie)
	}
}

// formDate parses an optional date form value; a ValidationError names the
// field on malformed input.
func formDate(c *fiber.Ctx, field string) (domain.Date, error) {
	value := c.FormValue(field)
	if value == "" {
		return domain.Date{}, nil
	}
	parsed, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, apperr.ValidationFailed(field + " is not a valid date")
	}
	return parsed, nil
}

// formOptionalDate is formDate returning nil for an absent value.
func formOptionalDate(c *fiber.Ctx, field string) (*domain.Date, error) {
	if c.FormValue(field) == "" {
		return nil, nil
	}
	parsed, err := formDate(c, field)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// formBlocks parses the rich-description form value, a JSON array of
// order-preserving content blocks.
func formBlocks(c *fiber.Ctx, field string) ([]any, error) {
	value := c.FormValue(field)
	if value == "" {
		return nil, nil
	}
	var blocks []any
	if err := json.Unmarshal([]byte(value), &blocks); err != nil {
		return nil, apperr.ValidationFailed(field + " must be a JSON array")
	}
	return blocks, nil
}
