// Package store abre el backend de persistencia elegido por STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/attendance-api/internal/domain/repository"
	"github.com/jhoicas/attendance-api/internal/infrastructure/memory"
	"github.com/jhoicas/attendance-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/attendance-api/internal/infrastructure/postgres"
	"github.com/jhoicas/attendance-api/pkg/config"
	"github.com/jhoicas/attendance-api/pkg/logger"
)

// Open conecta con el backend configurado, prepara índices/esquema y devuelve el
// repositorio de usuarios junto con la función que libera las conexiones.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.UserRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Error().Err(err).Msg("desconectar MongoDB")
			}
		}
		repo := mongodb.NewUserRepository(client.Database(cfg.Mongo.Database))
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("almacén MongoDB listo")
		return repo, closeFn, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, postgres.NewTxRunner(pool)); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Str("database", cfg.DB.DBName).Msg("almacén PostgreSQL listo")
		return postgres.NewUserRepository(pool), pool.Close, nil

	case config.StoreMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memory.NewUserRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
}
