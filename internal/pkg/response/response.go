// Package response writes the API's JSON envelopes: success bodies are
// plain payloads, failures are {"error": "<message>"}.
package response

import "github.com/gofiber/fiber/v3"

const (
	MessageInternalServerError = "Internal server error"
	MessageUnauthorized        = "Unauthorized"
	MessageBadRequest          = "Bad request"
	MessageNotFound            = "Not found"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(c fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(payload)
}

func Message(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func Error(c fiber.Ctx, status int, message string) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = MessageInternalServerError
	}
	return c.Status(status).JSON(errorBody{Error: message})
}
