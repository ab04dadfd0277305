// seed crea el primer usuario administrador y, opcionalmente, un catálogo de demostración.
//
// Uso: go run ./cmd/seed -email admin@estoque.local -password secreto123 [-demo]
// Sin flags usa SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD. La base es la de DB_DRIVER.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/store"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

type demoProduct struct {
	code, name, category, price string
	initial, threshold          int
}

var demoCatalog = []demoProduct{
	{"ARR-001", "Arroz 5kg", "Grãos", "27.90", 40, 10},
	{"FEI-001", "Feijão carioca 1kg", "Grãos", "8.49", 25, 10},
	{"CAF-001", "Café torrado 500g", "Bebidas", "18.75", 12, 5},
	{"LEI-001", "Leite integral 1L", "Laticínios", "5.29", 4, 6},
	{"DET-001", "Detergente 500ml", "Limpeza", "2.99", 60, 15},
}

func main() {
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "email del administrador")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "password del administrador (mín. 8)")
	name := flag.String("name", "Administrador", "nombre del administrador")
	demo := flag.Bool("demo", false, "carga productos de demostración con su movimiento inicial")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	st, err := store.Open(ctx, *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer func() { _ = st.Close() }()

	if *email != "" {
		authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
		user, err := authUC.CreateUser(ctx, dto.CreateUserRequest{Email: *email, Password: *password, Name: *name, Role: entity.RoleAdmin})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			log.Info().Str("email", *email).Msg("el administrador ya existe")
		case err != nil:
			log.Fatal().Err(err).Str("email", *email).Msg("crear administrador")
		default:
			log.Info().Str("id", user.ID).Str("email", user.Email).Msg("administrador creado")
		}
	}

	if *demo {
		if err := seedCatalog(ctx, st, log); err != nil {
			log.Fatal().Err(err).Msg("catálogo de demostración")
		}
	}
}

// seedCatalog registra cada producto con estoque 0 y deja su estoque inicial como movimiento IN,
// así el libro explica la cantidad actual. Los códigos existentes se saltan.
func seedCatalog(ctx context.Context, st *store.Store, log *logger.Logger) error {
	productUC := usecase.NewProductUseCase(st.Products, st.Tx, nil)
	ledgerUC := inventory.NewLedgerUseCase(st.Tx, st.Products, st.Movements, nil)
	for _, d := range demoCatalog {
		threshold := d.threshold
		p, err := productUC.Create(ctx, dto.ProductRequest{
			Code:             d.code,
			Name:             d.name,
			Category:         d.category,
			Price:            decimal.RequireFromString(d.price),
			ReorderThreshold: &threshold,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			log.Info().Str("code", d.code).Msg("producto ya existe")
			continue
		}
		if err != nil {
			return err
		}
		if _, err := ledgerUC.ApplyMovement(ctx, inventory.MovementInput{ProductID: p.ID, Kind: entity.MovementIN, Quantity: d.initial}); err != nil {
			return err
		}
		log.Info().Str("code", d.code).Int("stock", d.initial).Msg("producto creado")
	}
	return nil
}
