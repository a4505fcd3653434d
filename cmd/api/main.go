package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	_ "github.com/jhoicas/Ventas-api/docs"
	appauth "github.com/jhoicas/Ventas-api/internal/application/auth"
	appreport "github.com/jhoicas/Ventas-api/internal/application/report"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/shopify"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("tienda", cfg.Shopify.ShopDomain).
		Msg("iniciando aplicación")

	// Pipeline del reporte: gateway GraphQL → caso de uso
	orderGateway := shopify.NewOrderGateway(cfg.Shopify, log)
	reportUC := appreport.NewSalesReportUseCase(orderGateway, log, appreport.Config{
		PageDelay: cfg.Report.PageDelay(),
		MaxOrders: cfg.Report.MaxOrders,
	})

	// Exportadores
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	xmlExporter := xmlexport.NewReportXMLExporter()

	// Auth: usuarios aprovisionados por configuración (sin base de datos)
	var users []appauth.User
	if cfg.Admin.Email != "" && cfg.Admin.PasswordHash != "" {
		users = append(users, appauth.User{
			Email:        cfg.Admin.Email,
			PasswordHash: cfg.Admin.PasswordHash,
			Role:         cfg.Admin.Role,
		})
	} else {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD_HASH sin definir; el login de la API quedará inservible")
	}
	authUC := appauth.NewAuthUseCase(users, cfg.Shopify.ShopDomain, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Vistas server-side del panel
	engine := html.New("./web/templates", ".html")
	engine.AddFunc("stockAt", func(stock map[string]string, loc string) string {
		if v, ok := stock[loc]; ok {
			return v
		}
		return "-"
	})

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		Views:   engine,
		// La corrida completa puede tardar: hasta 20 páginas con pausa entre cada una.
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 120,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:  reportUC,
		PDF:       pdfGenerator,
		XML:       xmlExporter,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
