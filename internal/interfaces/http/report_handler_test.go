package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/xmlexport"
	ifhttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

// stubGateway devuelve una sola página fija, o error si failAll.
type stubGateway struct {
	page    *entity.OrdersPage
	failAll bool
}

func (s *stubGateway) FetchOrdersPage(_ context.Context, _ string) (*entity.OrdersPage, error) {
	if s.failAll {
		return nil, errors.New("HTTP 502 del Admin API")
	}
	return s.page, nil
}

func disponible(n int) *int { return &n }

func singleOrderPage() *entity.OrdersPage {
	return &entity.OrdersPage{Orders: []entity.Order{{
		ID:        "gid://shopify/Order/1",
		CreatedAt: time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local),
		LineItems: []entity.LineItem{{
			Quantity: 3,
			NetTotal: decimal.RequireFromString("45.50"),
			Product:  &entity.Product{Title: "Camiseta básica", Vendor: "TexCol", ProductType: "Ropa"},
			Variant: &entity.Variant{
				Title: "Talla M",
				SKU:   "CAM-M",
				InventoryLevels: []entity.InventoryLevel{
					{LocationName: "Bodega Norte", Available: disponible(12)},
				},
			},
		}},
	}}}
}

func reportTestApp(gw report.OrderGateway) *fiber.App {
	uc := report.NewSalesReportUseCase(gw, logger.Nop(), report.Config{PageDelay: 0, MaxOrders: 1000})
	handler := ifhttp.NewReportHandler(uc, nil, xmlexport.NewReportXMLExporter())

	app := fiber.New()
	app.Get("/api/reports/sales", handler.GetSalesReport)
	app.Post("/reportes/ventas/xml", handler.DownloadXML)
	return app
}

func getSales(t *testing.T, app *fiber.App, start, end string) *nethttp.Response {
	t.Helper()
	q := url.Values{"start_date": {start}, "end_date": {end}}
	req := httptest.NewRequest(nethttp.MethodGet, "/api/reports/sales?"+q.Encode(), nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSalesReport_RespuestaCompleta(t *testing.T) {
	app := reportTestApp(&stubGateway{page: singleOrderPage()})

	resp := getSales(t, app, "2024-03-10T00:00", "2024-03-10T23:59")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rep dto.SalesReportDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))

	assert.NotEmpty(t, rep.ReportID)
	assert.Equal(t, "2024-03-10T00:00", rep.StartDate)
	assert.Equal(t, 1, rep.OrderCount)
	assert.Equal(t, []string{"Bodega Norte"}, rep.Locations)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "CAM-M", rep.Rows[0].SKU)
	assert.Equal(t, 3, rep.Rows[0].UnitsSold)
	assert.Equal(t, "12", rep.Rows[0].LocationStock["Bodega Norte"])
	assert.False(t, rep.Partial)
}

func TestGetSalesReport_FechasInvalidasRetorna400(t *testing.T) {
	app := reportTestApp(&stubGateway{page: singleOrderPage()})

	resp := getSales(t, app, "10/03/2024", "2024-03-10T23:59")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "BAD_REQUEST", body.Code)
}

func TestGetSalesReport_TiendaCaidaRetorna502(t *testing.T) {
	app := reportTestApp(&stubGateway{failAll: true})

	resp := getSales(t, app, "2024-03-10T00:00", "2024-03-10T23:59")
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descarga XML
// ──────────────────────────────────────────────────────────────────────────────

func TestDownloadXML_AdjuntoConContenido(t *testing.T) {
	app := reportTestApp(&stubGateway{page: singleOrderPage()})

	form := url.Values{"startDate": {"2024-03-10T00:00"}, "endDate": {"2024-03-10T23:59"}}
	req := httptest.NewRequest(nethttp.MethodPost, "/reportes/ventas/xml", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "<reporteVentas")
	assert.Contains(t, body, `sku="CAM-M"`)
	assert.Contains(t, body, `<stock sede="Bodega Norte">12</stock>`)
}
