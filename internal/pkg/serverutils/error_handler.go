package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorMapping assigns an HTTP status to a sentinel error.
type ErrorMapping struct {
	Err    error
	Status int
}

// ErrorHandlerMiddleware turns errors returned by later handlers into JSON
// error bodies. Sentinels are matched with errors.Is in the given order;
// anything unmatched is a 500.
func ErrorHandlerMiddleware(mappings ...ErrorMapping) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, formatValidationErrors(validationErrs)))
		}

		for _, m := range mappings {
			if errors.Is(err, m.Err) {
				return ctx.Status(m.Status).JSON(ErrorResponse(m.Status, err.Error()))
			}
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
