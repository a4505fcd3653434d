package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Shopify ShopifyConfig
	Report  ReportConfig
	Admin   AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// ShopifyConfig credenciales y parámetros del Admin GraphQL API de la tienda.
type ShopifyConfig struct {
	ShopDomain  string // ej. mi-tienda.myshopify.com
	AccessToken string // token de app custom (header X-Shopify-Access-Token)
	APIVersion  string // ej. 2025-10
	PageSize    int    // pedidos por página
}

// Endpoint devuelve la URL del endpoint GraphQL del Admin API.
func (c ShopifyConfig) Endpoint() string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.ShopDomain, c.APIVersion)
}

// ReportConfig parámetros del pipeline del reporte de ventas.
type ReportConfig struct {
	PageDelayMS int // pausa entre páginas para no saturar el rate limit de Shopify
	MaxOrders   int // tope de seguridad de pedidos acumulados por corrida
}

// PageDelay devuelve la pausa entre páginas como time.Duration.
func (c ReportConfig) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMS) * time.Millisecond
}

// AdminConfig usuario administrador aprovisionado por configuración.
// No hay base de datos: el hash bcrypt de la contraseña vive en la config.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
	Role         string // admin | analista
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SHOPIFY_SHOP_DOMAIN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "ventas-pro"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "ventas-pro"),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  getString(v, "SHOPIFY_SHOP_DOMAIN", ""),
			AccessToken: getString(v, "SHOPIFY_ACCESS_TOKEN", ""),
			APIVersion:  getString(v, "SHOPIFY_API_VERSION", "2025-10"),
			PageSize:    getInt(v, "SHOPIFY_PAGE_SIZE", 50),
		},
		Report: ReportConfig{
			PageDelayMS: getInt(v, "SHOPIFY_PAGE_DELAY_MS", 300),
			MaxOrders:   getInt(v, "REPORT_MAX_ORDERS", 1000),
		},
		Admin: AdminConfig{
			Email:        getString(v, "ADMIN_EMAIL", ""),
			PasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
			Role:         getString(v, "ADMIN_ROLE", "admin"),
		},
	}

	if cfg.Shopify.ShopDomain == "" || cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("config: SHOPIFY_SHOP_DOMAIN y SHOPIFY_ACCESS_TOKEN son obligatorios")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
