package middleware

import (
	"exam-byte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedIDKey     = "validated_id"
	ValidatedStatusKey = "validated_status"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateID validates the :id path parameter of sessions, questions and
// documents, which are all ULIDs.
func (vm *ValidationMiddleware) ValidateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateID(id); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedIDKey, id)
		return c.Next()
	}
}

// ValidateStatusFilter validates the optional status query parameter
func (vm *ValidationMiddleware) ValidateStatusFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status")
		if errors := vm.validator.ValidateStatus(status); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedStatusKey, status)
		return c.Next()
	}
}
