// seed_admin crea la primera cuenta admin. Es idempotente: si ya existe un usuario
// con ese email o código no hace nada.
//
// Uso: go run ./cmd/seed_admin [email] [password]
// Sin argumentos lee SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD, SEED_ADMIN_NAME y SEED_ADMIN_CODE.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/attendance-api/internal/application/dto"
	"github.com/jhoicas/attendance-api/internal/application/usecase"
	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/internal/infrastructure/store"
	"github.com/jhoicas/attendance-api/pkg/config"
	"github.com/jhoicas/attendance-api/pkg/logger"
	"github.com/jhoicas/attendance-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Store.Driver == config.StoreMemory {
		fmt.Fprintln(os.Stderr, "STORE_DRIVER=memory no persiste: nada que sembrar")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	in := dto.CreateUserRequest{
		FullName: envOr("SEED_ADMIN_NAME", "Administrator"),
		Email:    os.Getenv("SEED_ADMIN_EMAIL"),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
		Code:     envOr("SEED_ADMIN_CODE", "ADMIN-001"),
		Role:     entity.RoleAdmin,
	}
	if len(os.Args) > 1 {
		in.Email = os.Args[1]
	}
	if len(os.Args) > 2 {
		in.Password = os.Args[2]
	}
	in.Normalize()
	if err := validator.New().Struct(in); err != nil {
		fmt.Fprintf(os.Stderr, "Datos del admin: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de usuarios")
	}
	defer closeStore()

	out, err := usecase.NewUserUseCase(repo, cfg.Auth.BcryptCost).Create(ctx, in)
	switch {
	case errors.Is(err, domain.ErrDuplicateAccount):
		log.Info().Str("email", in.Email).Msg("admin ya existe, sin cambios")
	case err != nil:
		log.Error().Err(err).Msg("crear admin")
		closeStore()
		os.Exit(1)
	default:
		log.Info().Str("id", out.ID).Str("email", out.Email).Msg("admin creado")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
