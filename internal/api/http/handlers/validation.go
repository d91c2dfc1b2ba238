package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const validatedBodyKey = "validated_body"

var validate = validator.New()

// ValidateBody parses and validates the JSON body against T's validate
// tags. Violations halt the pipeline with a 400 listing each failed field.
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			return apperrors.NewValidationError("Validation error", map[string]any{
				"body": "malformed JSON body",
			})
		}
		if err := validate.Struct(req); err != nil {
			return formatValidationErrors(err)
		}
		c.Locals(validatedBodyKey, req)
		return c.Next()
	}
}

// BodyFromContext retrieves the body stored by ValidateBody.
func BodyFromContext[T any](c *fiber.Ctx) *T {
	req, _ := c.Locals(validatedBodyKey).(*T)
	return req
}

// ValidateUserID checks the userId path parameter against the store's
// identifier format.
func ValidateUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := uuid.Parse(c.Params("userId")); err != nil {
			return apperrors.NewValidationError("Validation error", map[string]any{
				"userId": "Invalid user ID",
			})
		}
		return c.Next()
	}
}

func formatValidationErrors(err error) error {
	fields, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("Validation error", nil)
	}

	details := make(map[string]any, len(fields))
	for _, fe := range fields {
		details[fe.Field()] = formatFieldError(fe)
	}
	return apperrors.NewValidationError("Validation error", details)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "oneof":
		return "Invalid role"
	case "min":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
