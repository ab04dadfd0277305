// Package sqlite almacena el estoque en un archivo SQLite vía GORM. Con ":memory:" sirve para tests y demos.
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options apertura de la base.
type Options struct {
	Path        string // archivo; ":memory:" para una base en memoria
	AutoMigrate bool
	Debug       bool // loguea el SQL de GORM
}

// Open abre la base con una única conexión: SQLite serializa las escrituras y así cada
// transacción del libro de movimientos corre sola.
func Open(opts Options) (*gorm.DB, error) {
	logLevel := logger.Silent
	if opts.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn(opts.Path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", opts.Path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("sqlite: foreign_keys: %w", err)
	}
	if opts.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate crea o ajusta las tablas products, movements y users.
func Migrate(db *gorm.DB) error {
	for _, m := range []any{&productModel{}, &movementModel{}, &userModel{}} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("sqlite: automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dsn(path string) string {
	if path == "" || path == ":memory:" {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
