// Package store abre el backend de persistencia elegido con DB_DRIVER y expone sus repositorios.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Estoque-api/pkg/config"
)

// Store repositorios y runner transaccional de un mismo backend.
type Store struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Users     repository.UserRepository
	Tx        inventory.TxRunner
	close     func() error
}

// Close libera las conexiones.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open conecta con PostgreSQL (migraciones con golang-migrate) o SQLite (AutoMigrate de GORM).
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(sqlite.Options{
			Path:        cfg.DB.SQLitePath,
			AutoMigrate: cfg.DB.AutoMigrate,
			Debug:       cfg.App.LogLevel == "debug" || cfg.App.LogLevel == "trace",
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Products:  sqlite.NewProductRepository(db),
			Movements: sqlite.NewMovementRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Tx:        sqlite.NewTxRunner(db),
			close:     func() error { return sqlite.Close(db) },
		}, nil
	case config.DriverPostgres:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     func() error { pool.Close(); return nil },
		}, nil
	default:
		return nil, fmt.Errorf("store: driver no soportado %q", cfg.DB.Driver)
	}
}
