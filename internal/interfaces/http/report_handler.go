package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// ReportHandler maneja la página del reporte de ventas (HTML) y su API JSON,
// más las descargas PDF y XML.
type ReportHandler struct {
	uc  *report.SalesReportUseCase
	pdf report.PDFGenerator
	xml report.XMLExporter
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.SalesReportUseCase, pdf report.PDFGenerator, xml report.XMLExporter) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf, xml: xml}
}

// Page muestra el formulario vacío (estado inicial, sin resultados).
// GET /reportes/ventas
func (h *ReportHandler) Page(c *fiber.Ctx) error {
	return c.Render("reporte_ventas", fiber.Map{
		"Values": dto.SalesReportRequest{},
	})
}

// Submit corre el pipeline y renderiza la misma página con la tabla de resultados.
// POST /reportes/ventas (formulario)
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("reporte_ventas", fiber.Map{
			"Values": req,
			"Error":  "formulario inválido",
		})
	}

	rep, err := h.uc.Generate(c.Context(), req)
	if err != nil {
		status, msg := reportErrorStatus(err)
		return c.Status(status).Render("reporte_ventas", fiber.Map{
			"Values": req,
			"Error":  msg,
		})
	}

	return c.Render("reporte_ventas", fiber.Map{
		"Values": req,
		"Report": rep,
	})
}

// GetSalesReport godoc
// @Summary      Reporte de ventas por rango de fechas
// @Description  Pagina los pedidos de la tienda, filtra por fecha de creación y
//               consolida unidades vendidas y stock por sede por producto/variante/SKU.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "Inicio (2006-01-02T15:04, hora local)"
// @Param        end_date    query  string  true  "Fin inclusive del minuto (2006-01-02T15:04)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}

	rep, err := h.uc.Generate(c.Context(), req)
	if err != nil {
		status, msg := reportErrorStatus(err)
		code := "BAD_REQUEST"
		if status == fiber.StatusBadGateway {
			code = "UPSTREAM_UNAVAILABLE"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	return c.JSON(rep)
}

// DownloadPDF genera el reporte y lo devuelve como PDF adjunto.
// POST /reportes/ventas/pdf
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	rep, err := h.generateFromForm(c)
	if err != nil {
		status, msg := reportErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: msg})
	}
	out, err := h.pdf.GenerateSalesReportPDF(c.Context(), rep)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachmentName("pdf"))
	return c.Send(out)
}

// DownloadXML genera el reporte y lo devuelve como XML adjunto.
// POST /reportes/ventas/xml
func (h *ReportHandler) DownloadXML(c *fiber.Ctx) error {
	rep, err := h.generateFromForm(c)
	if err != nil {
		status, msg := reportErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: msg})
	}
	out, err := h.xml.ExportSalesReportXML(rep)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "XML_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachmentName("xml"))
	return c.Send(out)
}

func (h *ReportHandler) generateFromForm(c *fiber.Ctx) (*dto.SalesReportDTO, error) {
	var req dto.SalesReportRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fmt.Errorf("%w: formulario inválido", domain.ErrInvalidInput)
	}
	return h.uc.Generate(c.Context(), req)
}

// reportErrorStatus mapea errores del caso de uso a estado HTTP y mensaje.
func reportErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidDateRange):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return fiber.StatusBadGateway, "la tienda no respondió; intenta de nuevo en unos minutos"
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}

func attachmentName(ext string) string {
	return fmt.Sprintf(`attachment; filename="reporte-ventas-%s.%s"`, time.Now().Format("20060102-150405"), ext)
}
