// Package response provides the uniform API response envelope.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope is the standard success response structure. The HTTP status of the
// reply echoes StatusCode.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorEnvelope mirrors Envelope for failure paths.
type ErrorEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Errors     []string    `json:"errors"`
	Success    bool        `json:"success"`
}

// Send writes a success envelope with the given status code.
func Send(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// OK returns a 200 response.
func OK(c *fiber.Ctx, data interface{}, message string) error {
	return Send(c, fiber.StatusOK, data, message)
}

// Created returns a 201 response.
func Created(c *fiber.Ctx, data interface{}, message string) error {
	return Send(c, fiber.StatusCreated, data, message)
}

// Fail writes an error envelope with the given status code.
func Fail(c *fiber.Ctx, status int, message string, errs ...string) error {
	if len(errs) == 0 {
		errs = []string{message}
	}
	return c.Status(status).JSON(ErrorEnvelope{
		StatusCode: status,
		Message:    message,
		Errors:     errs,
		Success:    false,
	})
}
