package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Entrada ───────────────────────────────────────────────────────────────────

// SalesReportRequest fechas del formulario / query string.
// Formato local con resolución de minuto: 2006-01-02T15:04 (input datetime-local).
type SalesReportRequest struct {
	StartDate string `form:"startDate" query:"start_date"`
	EndDate   string `form:"endDate"   query:"end_date"`
}

// ── Salida ────────────────────────────────────────────────────────────────────

// SalesRowDTO fila agregada del reporte: un (producto, variante, SKU) con sus
// totales y el stock por sede. Los valores de LocationStock son la cantidad
// como texto o "-" cuando la sede no reportó disponibilidad.
type SalesRowDTO struct {
	ProductTitle  string            `json:"product_title"`
	VariantTitle  string            `json:"variant_title"`
	SKU           string            `json:"sku"`
	Vendor        string            `json:"vendor"`
	ProductType   string            `json:"product_type"`
	UnitsSold     int               `json:"units_sold"`
	NetSales      decimal.Decimal   `json:"net_sales"`
	LocationStock map[string]string `json:"location_stock"`
}

// SalesReportDTO respuesta completa del reporte de ventas.
//
// StartDate/EndDate repiten textualmente lo que envió el usuario (no el límite
// ajustado a fin de minuto). Locations conserva el orden de descubrimiento.
type SalesReportDTO struct {
	ReportID    string          `json:"report_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	GeneratedAt time.Time       `json:"generated_at"`
	OrderCount  int             `json:"order_count"`
	Locations   []string        `json:"locations"`
	Rows        []SalesRowDTO   `json:"rows"`
	Truncated   bool            `json:"truncated"`
	Partial     bool            `json:"partial"`
	Warning     string          `json:"warning,omitempty"`
}
