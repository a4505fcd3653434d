// Package pdf genera la versión imprimible del reporte de ventas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de ventas  │  Rango de fechas + generado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AVISO (solo si el reporte es parcial o truncado)           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Variante | Unid. | Ventas | Stock  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: pedidos, filas, sedes                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

var _ appreport.PDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 170, Green: 90, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReportPDF(_ context.Context, rep *dto.SalesReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas por sede", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if rep.Warning != "" {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("⚠ "+rep.Warning, props.Text{
				Size: 8, Color: colorWarn, Top: 2, Style: fontstyle.Bold,
			})),
		))
	}

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rep) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + fecha de generación (der).
func headerRow(rep *dto.SalesReportDTO) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Unidades vendidas y stock por sede", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Período: %s — %s", rep.StartDate, rep.EndDate), props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+rep.GeneratedAt.Format("2006-01-02 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del agregado.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Variante", 2, align.Left),
		h("Unid.", 1, align.Center),
		h("Ventas netas", 2, align.Right),
		h("Stock por sede", 2, align.Left),
	)
}

// tableRows: una fila por registro agregado. El stock por sede se compacta en
// una celda "Sede: cant" separada por " | " en el orden de descubrimiento.
func tableRows(rep *dto.SalesReportDTO) []core.Row {
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		result = append(result, row.New(7).Add(
			cell(r.SKU, 2, align.Left),
			cell(r.ProductTitle, 3, align.Left),
			cell(r.VariantTitle, 2, align.Left),
			cell(fmt.Sprintf("%d", r.UnitsSold), 1, align.Center),
			cell(r.NetSales.StringFixed(2), 2, align.Right),
			cell(stockSummary(r, rep.Locations), 2, align.Left),
		))
	}
	return result
}

// totalsRow: totales de la corrida.
func totalsRow(rep *dto.SalesReportDTO) core.Row {
	return row.New(9).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Pedidos analizados: %d   |   Filas: %d   |   Sedes: %d",
				rep.OrderCount, len(rep.Rows), len(rep.Locations)),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		)),
	)
}

func stockSummary(r dto.SalesRowDTO, locations []string) string {
	parts := make([]string, 0, len(locations))
	for _, loc := range locations {
		qty, ok := r.LocationStock[loc]
		if !ok {
			qty = "-"
		}
		parts = append(parts, loc+": "+qty)
	}
	return strings.Join(parts, " | ")
}
