// Package shopify adaptador del OrderGateway contra el Admin GraphQL API de
// Shopify. Una sola query parametrizada: pedidos paginados por cursor, del más
// nuevo al más viejo, con hasta 50 líneas por pedido y hasta 5 niveles de
// inventario por variante.
package shopify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
	"github.com/shopspring/decimal"

	appreport "github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

var _ appreport.OrderGateway = (*OrderGateway)(nil)

const ordersQuery = `
query OrdersForSalesReport($first: Int!, $after: String) {
  orders(first: $first, after: $after, reverse: true, sortKey: CREATED_AT) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        createdAt
        lineItems(first: 50) {
          edges {
            node {
              quantity
              discountedTotalSet {
                shopMoney {
                  amount
                }
              }
              product {
                title
                vendor
                productType
              }
              variant {
                title
                sku
                inventoryItem {
                  inventoryLevels(first: 5) {
                    edges {
                      node {
                        quantities(names: ["available"]) {
                          name
                          quantity
                        }
                        location {
                          name
                        }
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

// OrderGateway cliente GraphQL del Admin API.
type OrderGateway struct {
	client   *graphql.Client
	token    string
	pageSize int
	log      *logger.Logger
}

// NewOrderGateway construye el gateway a partir de la configuración de la tienda.
func NewOrderGateway(cfg config.ShopifyConfig, log *logger.Logger) *OrderGateway {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	client := graphql.NewClient(cfg.Endpoint(), graphql.WithHTTPClient(httpClient))
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &OrderGateway{
		client:   client,
		token:    cfg.AccessToken,
		pageSize: pageSize,
		log:      log,
	}
}

// FetchOrdersPage pide la siguiente página de pedidos. cursor vacío = primera página.
func (g *OrderGateway) FetchOrdersPage(ctx context.Context, cursor string) (*entity.OrdersPage, error) {
	req := graphql.NewRequest(ordersQuery)
	req.Var("first", g.pageSize)
	if cursor != "" {
		req.Var("after", cursor)
	} else {
		req.Var("after", nil)
	}
	req.Header.Set("X-Shopify-Access-Token", g.token)
	req.Header.Set("Content-Type", "application/json")

	var resp ordersQueryResponse
	if err := g.client.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("shopify: orders page (cursor=%q): %w", cursor, err)
	}

	page := &entity.OrdersPage{
		Orders:      make([]entity.Order, 0, len(resp.Orders.Edges)),
		HasNextPage: resp.Orders.PageInfo.HasNextPage,
		EndCursor:   resp.Orders.PageInfo.EndCursor,
	}
	for _, edge := range resp.Orders.Edges {
		page.Orders = append(page.Orders, mapOrder(edge.Node))
	}
	g.log.Debug().Int("pedidos", len(page.Orders)).Bool("has_next", page.HasNextPage).Msg("página de pedidos recibida")
	return page, nil
}

// ── Tipos wire ────────────────────────────────────────────────────────────────

type ordersQueryResponse struct {
	Orders struct {
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
		Edges []struct {
			Node orderNode `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

type orderNode struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	LineItems struct {
		Edges []struct {
			Node lineItemNode `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type lineItemNode struct {
	Quantity           int `json:"quantity"`
	DiscountedTotalSet *struct {
		ShopMoney struct {
			Amount string `json:"amount"`
		} `json:"shopMoney"`
	} `json:"discountedTotalSet"`
	Product *struct {
		Title       string `json:"title"`
		Vendor      string `json:"vendor"`
		ProductType string `json:"productType"`
	} `json:"product"`
	Variant *struct {
		Title         string `json:"title"`
		SKU           string `json:"sku"`
		InventoryItem *struct {
			InventoryLevels struct {
				Edges []struct {
					Node inventoryLevelNode `json:"node"`
				} `json:"edges"`
			} `json:"inventoryLevels"`
		} `json:"inventoryItem"`
	} `json:"variant"`
}

type inventoryLevelNode struct {
	Quantities []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"quantities"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
}

// ── Mapeo wire → dominio ──────────────────────────────────────────────────────

func mapOrder(n orderNode) entity.Order {
	o := entity.Order{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		LineItems: make([]entity.LineItem, 0, len(n.LineItems.Edges)),
	}
	for _, edge := range n.LineItems.Edges {
		o.LineItems = append(o.LineItems, mapLineItem(edge.Node))
	}
	return o
}

func mapLineItem(n lineItemNode) entity.LineItem {
	li := entity.LineItem{Quantity: n.Quantity}
	if n.DiscountedTotalSet != nil {
		// Montos malformados quedan en cero; no tumban el reporte.
		if amount, err := decimal.NewFromString(n.DiscountedTotalSet.ShopMoney.Amount); err == nil {
			li.NetTotal = amount
		}
	}
	if n.Product != nil {
		li.Product = &entity.Product{
			Title:       n.Product.Title,
			Vendor:      n.Product.Vendor,
			ProductType: n.Product.ProductType,
		}
	}
	if n.Variant != nil {
		v := &entity.Variant{Title: n.Variant.Title, SKU: n.Variant.SKU}
		if n.Variant.InventoryItem != nil {
			for _, edge := range n.Variant.InventoryItem.InventoryLevels.Edges {
				v.InventoryLevels = append(v.InventoryLevels, mapInventoryLevel(edge.Node))
			}
		}
		li.Variant = v
	}
	return li
}

func mapInventoryLevel(n inventoryLevelNode) entity.InventoryLevel {
	lvl := entity.InventoryLevel{LocationName: n.Location.Name}
	for _, q := range n.Quantities {
		if q.Name == "available" {
			qty := q.Quantity
			lvl.Available = &qty
			break
		}
	}
	return lvl
}
