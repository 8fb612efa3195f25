package util

import (
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Message string
	Data    any
}

type OrderedSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code    int
	Message string
}

type OrderedErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SuccessResponse writes the standard 200 success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	return c.Status(fiber.StatusOK).JSON(OrderedSuccessResponse{
		Success: true,
		Message: params.Message,
		Data:    params.Data,
	})
}

// ErrorResponse writes the standard error envelope. Only Message reaches the
// client; causes are logged by the caller.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(OrderedErrorResponse{
		Success: false,
		Message: params.Message,
	})
}
