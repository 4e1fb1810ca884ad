package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendance-api/internal/application/dto"
)

// roleResolver es el contrato mínimo que necesita el middleware para conocer el rol.
// Lo implementa *usecase.UserUseCase; el token solo lleva el id, así que el rol se
// consulta en el almacén en cada petición y un cambio de rol aplica de inmediato.
type roleResolver interface {
	Role(ctx context.Context, userID string) (string, error)
}

// RequireRole devuelve un middleware Fiber que exige que el usuario del token tenga
// uno de los roles permitidos. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay usuario en el contexto o el usuario ya no existe.
//   - 403 si el rol no está permitido.
//   - 503 si falla la consulta al almacén.
func RequireRole(resolver roleResolver, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user id not found in token"})
		}

		role, err := resolver.Role(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ROLE_CHECK_FAILED",
				Message: "could not verify role, try again later",
			})
		}
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_USER", Message: "token user no longer exists"})
		}
		c.Locals(LocalRole, role)

		for _, r := range allowed {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "insufficient role"})
	}
}
