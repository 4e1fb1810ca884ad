package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendance-api/internal/application/auth"
	"github.com/jhoicas/attendance-api/internal/application/usecase"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/pkg/logger"
	"github.com/jhoicas/attendance-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	JWTSecret  string
	AdminGuard bool // false deja /users sin token ni control de rol
	Log        *logger.Logger
}

// Router registra las rutas de la API. Se montan en la raíz (/register, /login, /users)
// y bajo /api/auth y /api/users.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	v := validator.New()
	authHandler := NewAuthHandler(deps.AuthUC, v, deps.Log)
	userHandler := NewUserHandler(deps.UserUC, v, deps.Log)

	var guards []fiber.Handler
	if deps.AdminGuard {
		guards = append(guards, AuthMiddleware(deps.JWTSecret), RequireRole(deps.UserUC, entity.RoleAdmin))
	} else {
		deps.Log.Warn().Msg("rutas /users sin control de rol (AUTH_ADMIN_GUARD=false)")
	}

	// Auth (público)
	authRoutes(app, authHandler)
	// Users (admin)
	userRoutes(app.Group("/users", guards...), userHandler)

	api := app.Group("/api")
	authRoutes(api.Group("/auth"), authHandler)
	userRoutes(api.Group("/users", guards...), userHandler)
}

func authRoutes(r fiber.Router, h *AuthHandler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

func userRoutes(r fiber.Router, h *UserHandler) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}
