package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendance-api/internal/application/auth"
	"github.com/jhoicas/attendance-api/internal/application/dto"
	"github.com/jhoicas/attendance-api/pkg/logger"
	"github.com/jhoicas/attendance-api/pkg/validator"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	validate *validator.Validator
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, v *validator.Validator, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, validate: v, log: log}
}

// Register godoc
// @Summary      Auto-registro (rol worker)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "fullName, email, password, code"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Normalize()
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, h.log, err, msgUserExists)
	}
	if err := h.uc.RegisterUser(c.UserContext(), in); err != nil {
		return respondError(c, h.log, err, msgUserExists)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Normalize()
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, h.log, err, msgUserExists)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, msgUserExists)
	}
	return c.JSON(out)
}
