package report

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// OrderGateway puerto hacia el listado remoto de pedidos de la tienda.
// cursor vacío pide la primera página; las siguientes usan el EndCursor devuelto.
type OrderGateway interface {
	FetchOrdersPage(ctx context.Context, cursor string) (*entity.OrdersPage, error)
}

// PDFGenerator genera la representación PDF del reporte de ventas.
type PDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, rep *dto.SalesReportDTO) ([]byte, error)
}

// XMLExporter genera la exportación XML del reporte de ventas.
type XMLExporter interface {
	ExportSalesReportXML(rep *dto.SalesReportDTO) ([]byte, error)
}
