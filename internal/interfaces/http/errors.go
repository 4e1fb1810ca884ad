package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendance-api/internal/application/dto"
	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/pkg/logger"
	"github.com/jhoicas/attendance-api/pkg/validator"
)

// Mensajes expuestos al cliente.
const (
	msgUserExists         = "User already exists"
	msgUserOrCodeExists   = "User with this email or code already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
)

// respondError traduce errores de dominio a status + dto.ErrorResponse.
// duplicateMsg permite que cada ruta conserve su propio mensaje de duplicado.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, duplicateMsg string) error {
	var verr *validator.ValidationError
	var ferr *domain.FieldError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Validation failed", Fields: verr.Fields})
	case errors.As(err, &ferr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "Validation failed",
			Fields:  map[string]string{ferr.Field: ferr.Reason},
		})
	case errors.Is(err, domain.ErrDuplicateAccount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE_ACCOUNT", Message: duplicateMsg})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: msgInvalidCredentials})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msgUserNotFound})
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}
