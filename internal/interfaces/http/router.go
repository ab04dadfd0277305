package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LedgerUC    *inventory.LedgerUseCase
	ReportUC    *report.MovementReportUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	products := protected.Group("/products", anyRole)
	productHandler := NewProductHandler(deps.ProductUC, deps.LedgerUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Get("/:id/data", productHandler.Attributes)
	products.Get("/:id/detail", productHandler.Detail)
	products.Get("/:id/movements", productHandler.Movements)
	protected.Get("/categories", anyRole, productHandler.Categories)

	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	protected.Post("/inventory/movements", anyRole, inventoryHandler.RegisterMovement)

	reports := protected.Group("/reports", anyRole)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/movements/export", reportHandler.ExportCSV)
	reports.Get("/movements/pdf", reportHandler.ExportPDF)

	dashboard := protected.Group("/dashboard", anyRole)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)
}
