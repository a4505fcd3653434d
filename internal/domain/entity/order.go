// Package entity define las entidades del reporte de ventas: la vista mínima
// de un pedido de Shopify que consume el pipeline. Nada de esto se persiste;
// todo vive durante una corrida del reporte y se descarta al renderizar.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order vista mínima de un pedido remoto: fecha de creación y sus líneas.
type Order struct {
	ID        string
	CreatedAt time.Time
	LineItems []LineItem
}

// LineItem una línea del pedido: cantidad, total neto y referencias opcionales
// a producto y variante (Shopify puede devolver null en ambas).
type LineItem struct {
	Quantity int
	NetTotal decimal.Decimal // total descontado de la línea (moneda de la tienda)
	Product  *Product
	Variant  *Variant
}

// Product campos del producto usados por el reporte.
type Product struct {
	Title       string
	Vendor      string
	ProductType string
}

// Variant variante del producto con su inventario por sede.
type Variant struct {
	Title           string
	SKU             string
	InventoryLevels []InventoryLevel
}

// InventoryLevel par (sede, cantidad disponible) de una variante.
// Available es nil cuando la sede no reporta la cantidad "available".
type InventoryLevel struct {
	LocationName string
	Available    *int
}

// OrdersPage una página del listado remoto de pedidos con su cursor de continuación.
type OrdersPage struct {
	Orders      []Order
	HasNextPage bool
	EndCursor   string
}
