// Package xmlexport exportación XML del reporte de ventas (etree).
// El documento es plano y sin firma: pensado para integraciones que consumen
// el reporte fuera del panel.
package xmlexport

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	appreport "github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

var _ appreport.XMLExporter = (*ReportXMLExporter)(nil)

// ReportXMLExporter implementa report.XMLExporter usando etree.
type ReportXMLExporter struct{}

// NewReportXMLExporter construye el exportador.
func NewReportXMLExporter() *ReportXMLExporter { return &ReportXMLExporter{} }

// ExportSalesReportXML genera el documento:
//
//	<reporteVentas id="..." inicio="..." fin="..." generado="..." parcial="false" truncado="false">
//	  <aviso>...</aviso>                                  (solo si hay advertencia)
//	  <sedes><sede>Bodega Norte</sede>...</sedes>         (orden de descubrimiento)
//	  <filas>
//	    <fila sku="ABC123">
//	      <producto>..</producto> <variante>..</variante>
//	      <proveedor>..</proveedor> <tipo>..</tipo>
//	      <unidades>8</unidades> <ventasNetas>120.50</ventasNetas>
//	      <stock sede="Bodega Norte">10</stock>...        ("-" si no reportó)
//	    </fila>
//	  </filas>
//	</reporteVentas>
func (e *ReportXMLExporter) ExportSalesReportXML(rep *dto.SalesReportDTO) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("xmlexport: reporte nil")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("reporteVentas")
	root.CreateAttr("id", rep.ReportID)
	root.CreateAttr("inicio", rep.StartDate)
	root.CreateAttr("fin", rep.EndDate)
	root.CreateAttr("generado", rep.GeneratedAt.Format("2006-01-02T15:04:05-07:00"))
	root.CreateAttr("parcial", strconv.FormatBool(rep.Partial))
	root.CreateAttr("truncado", strconv.FormatBool(rep.Truncated))

	if rep.Warning != "" {
		root.CreateElement("aviso").SetText(rep.Warning)
	}

	sedes := root.CreateElement("sedes")
	for _, loc := range rep.Locations {
		sedes.CreateElement("sede").SetText(loc)
	}

	filas := root.CreateElement("filas")
	for _, r := range rep.Rows {
		fila := filas.CreateElement("fila")
		fila.CreateAttr("sku", r.SKU)
		fila.CreateElement("producto").SetText(r.ProductTitle)
		fila.CreateElement("variante").SetText(r.VariantTitle)
		fila.CreateElement("proveedor").SetText(r.Vendor)
		fila.CreateElement("tipo").SetText(r.ProductType)
		fila.CreateElement("unidades").SetText(strconv.Itoa(r.UnitsSold))
		fila.CreateElement("ventasNetas").SetText(r.NetSales.StringFixed(2))
		for _, loc := range rep.Locations {
			qty, ok := r.LocationStock[loc]
			if !ok {
				qty = "-"
			}
			stock := fila.CreateElement("stock")
			stock.CreateAttr("sede", loc)
			stock.SetText(qty)
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
