package utils

import "github.com/gofiber/fiber/v2"

// PortalResponse is the envelope every portal endpoint returns: a success
// flag, an optional payload and a human-readable message.
type PortalResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess sends a 200 envelope with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success envelope using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(PortalResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends a failure envelope with the given status code. The data
// field is always omitted so error causes never leak payload fragments.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "request failed"
	}

	return c.Status(status).JSON(PortalResponse{
		Success: false,
		Message: message,
	})
}
