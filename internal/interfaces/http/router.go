package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC  *report.SalesReportUseCase
	PDF       report.PDFGenerator
	XML       report.XMLExporter
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas del panel y de la API.
func Router(app *fiber.App, deps RouterDeps) {
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF, deps.XML)

	// Panel HTML (público por ahora; se puede proteger con AuthMiddleware)
	app.Get("/reportes/ventas", reportHandler.Page)
	app.Post("/reportes/ventas", reportHandler.Submit)
	app.Post("/reportes/ventas/pdf", reportHandler.DownloadPDF)
	app.Post("/reportes/ventas/xml", reportHandler.DownloadXML)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token + rol)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	reports := protected.Group("/reports", RequireRole("admin", "analista"))
	reports.Get("/sales", reportHandler.GetSalesReport)
}
