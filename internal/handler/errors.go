package handler

import (
	"errors"

	"go-commerce-api/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// fail maps the error taxonomy onto HTTP statuses: validation 400,
// missing target 404, any constraint clash 409, everything else 500.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrDuplicateEntry),
		errors.Is(err, apperr.ErrReferencedElsewhere),
		errors.Is(err, apperr.ErrConstraintViolated):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
