package http_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Estoque-api/internal/interfaces/http"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

type apiClient struct {
	t      *testing.T
	app    *fiber.App
	authUC *auth.AuthUseCase
	token  string
	logs   *bytes.Buffer
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	db, err := sqlite.Open(sqlite.Options{Path: ":memory:", AutoMigrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	productRepo := sqlite.NewProductRepository(db)
	movementRepo := sqlite.NewMovementRepository(db)
	tx := sqlite.NewTxRunner(db)
	authUC := auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, Issuer: testIssuer})

	logs := &bytes.Buffer{}
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(logger.New(logger.Config{Env: "production", Level: "info", Output: logs})))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(productRepo, tx, nil),
		LedgerUC:    inventory.NewLedgerUseCase(tx, productRepo, movementRepo, nil),
		ReportUC:    report.NewMovementReportUseCase(movementRepo, productRepo, pdf.NewMarotoReportGenerator(time.UTC), time.UTC),
		DashboardUC: analytics.NewDashboardUseCase(productRepo),
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
	})
	return &apiClient{t: t, app: app, authUC: authUC, token: bearer(t, "admin"), logs: logs}
}

func (a *apiClient) do(method, path string, body any) (*http.Response, []byte) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if a.token != "" {
		req.Header.Set("Authorization", a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, out
}

func (a *apiClient) createProduct(code, name, category string, price float64, qty int) dto.ProductResponse {
	a.t.Helper()
	resp, body := a.do(http.MethodPost, "/api/products", map[string]any{
		"code": code, "name": name, "category": category, "price": price, "stock_quantity": qty,
	})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode, string(body))
	var p dto.ProductResponse
	require.NoError(a.t, json.Unmarshal(body, &p))
	return p
}

func (a *apiClient) move(productID int64, tipo string, qty int) (*http.Response, []byte) {
	a.t.Helper()
	return a.do(http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": productID, "tipo_movimentacao": tipo, "quantity": qty,
	})
}

func TestAPI_Login(t *testing.T) {
	api := newAPI(t)
	_, err := api.authUC.CreateUser(context.Background(), dto.CreateUserRequest{Email: "ana@example.com", Password: "12345678", Role: "admin"})
	require.NoError(t, err)
	api.token = ""

	resp, body := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ana@example.com", "password": "12345678"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.NotEmpty(t, login.Token)

	resp, _ = api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ana@example.com", "password": "errada00"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	api.token = "Bearer " + login.Token
	resp, _ = api.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_ProductosYErrores(t *testing.T) {
	api := newAPI(t)
	p := api.createProduct("SKU1", "Widget", "Tools", 9.99, 10)
	assert.Equal(t, 5, p.ReorderThreshold)

	resp, body := api.do(http.MethodPost, "/api/products", map[string]any{"code": "SKU1", "name": "Otro", "category": "Tools", "price": 1, "stock_quantity": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE")

	resp, body = api.do(http.MethodPost, "/api/products", map[string]any{"code": "SKU2", "name": "", "category": "Tools", "price": 1, "stock_quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, _ = api.do(http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = api.do(http.MethodPut, "/api/products/"+itoa(p.ID), map[string]any{"code": "SKU1", "name": "Widget XL", "category": "Tools", "price": 12.5, "stock_quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Widget XL", updated.Name)
	assert.True(t, updated.LowStock)

	resp, body = api.do(http.MethodGet, "/api/products/"+itoa(p.ID)+"/data", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"code":"SKU1"`)

	resp, body = api.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["Tools"]`, string(body))
}

func TestAPI_MovimientosYSalidaRechazada(t *testing.T) {
	api := newAPI(t)
	p := api.createProduct("SKU1", "Widget", "Tools", 2, 3)

	resp, body := api.move(p.ID, "entrada", 2)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = api.move(p.ID, "saida", 9)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var stockErr dto.InsufficientStockResponse
	require.NoError(t, json.Unmarshal(body, &stockErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", stockErr.Code)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 9, stockErr.Requested)

	resp, _ = api.move(p.ID, "saida", 0)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = api.move(999, "entrada", 1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = api.do(http.MethodGet, "/api/products/"+itoa(p.ID)+"/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.MovementListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)

	resp, body = api.do(http.MethodGet, "/api/products/"+itoa(p.ID)+"/detail", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.ProductDetailResponse
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, 5, detail.Product.StockQuantity)

	assert.Contains(t, api.logs.String(), `"status":409`)
}

func TestAPI_DeleteSoloAdmin(t *testing.T) {
	api := newAPI(t)
	p := api.createProduct("SKU1", "Widget", "Tools", 2, 3)
	path := "/api/products/" + itoa(p.ID)

	api.token = bearer(t, "bodeguero")
	resp, _ := api.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	api.token = bearer(t, "admin")
	resp, _ = api.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, path+"/movements", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Dashboard(t *testing.T) {
	api := newAPI(t)
	api.createProduct("SKU1", "Widget", "Tools", 9.99, 10)
	low := api.createProduct("SKU2", "Gadget", "Tools", 1, 5)

	resp, body := api.do(http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sum dto.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal(body, &sum))
	assert.Equal(t, int64(15), sum.TotalStockUnits)
	assert.Equal(t, "104.90", sum.TotalStockValue.StringFixed(2))
	assert.Equal(t, 1, sum.LowStockCount)

	resp, body = api.do(http.MethodGet, "/api/dashboard/low-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var alerts []dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, low.ID, alerts[0].ID)
}

func TestAPI_ReporteYExportaciones(t *testing.T) {
	api := newAPI(t)
	p := api.createProduct("CAF", "Café, torrado", "Bebidas", 18.9, 0)
	for _, m := range []struct {
		tipo string
		qty  int
	}{{"entrada", 10}, {"saida", 3}, {"saida", 2}} {
		resp, body := api.move(p.ID, m.tipo, m.qty)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}
	today := time.Now().UTC().Format(report.DateLayout)

	resp, body := api.do(http.MethodGet, "/api/reports/movements?tipo_mov=saida&start_date="+today+"&end_date="+today, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var rep dto.MovementReportResponse
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, 2, rep.Total)
	assert.Equal(t, "OUT", rep.Kind)
	assert.Equal(t, 2, rep.Items[0].Quantity, "más reciente primero")

	resp, _ = api.do(http.MethodGet, "/api/reports/movements?start_date=2024-13-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = api.do(http.MethodGet, "/api/reports/movements/export?tipo_mov=saida", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "attachment;filename=relatorio_movimentacoes.csv", resp.Header.Get(fiber.HeaderContentDisposition))
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, report.CSVHeader, records[0])
	assert.Equal(t, "Café, torrado", records[1][2])

	resp, _ = api.do(http.MethodGet, "/api/reports/movements/export?encoding=latin1", nil)
	assert.Equal(t, "text/csv; charset=windows-1252", resp.Header.Get(fiber.HeaderContentType))

	resp, body = api.do(http.MethodGet, "/api/reports/movements/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
