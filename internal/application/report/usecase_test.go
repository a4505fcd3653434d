package report_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	appreport "github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gateway falso
// ──────────────────────────────────────────────────────────────────────────────

// fakeGateway devuelve páginas pre-armadas en orden; errAt indica el índice de
// llamada (base 0) que debe fallar, -1 para no fallar nunca.
type fakeGateway struct {
	pages []*entity.OrdersPage
	errAt int
	calls int
}

func (f *fakeGateway) FetchOrdersPage(_ context.Context, cursor string) (*entity.OrdersPage, error) {
	idx := f.calls
	f.calls++
	if idx == f.errAt {
		return nil, errors.New("HTTP 502 del Admin API")
	}
	if idx >= len(f.pages) {
		return &entity.OrdersPage{}, nil
	}
	return f.pages[idx], nil
}

func newUC(gw *fakeGateway, maxOrders int) *appreport.SalesReportUseCase {
	return appreport.NewSalesReportUseCase(gw, logger.Nop(), appreport.Config{
		PageDelay: 0, // sin pausa en tests
		MaxOrders: maxOrders,
	})
}

func pedidoEn(ts time.Time) entity.Order {
	return entity.Order{
		ID:        fmt.Sprintf("gid://shopify/Order/%d", ts.UnixNano()),
		CreatedAt: ts,
		LineItems: []entity.LineItem{{
			Quantity: 1,
			NetTotal: decimal.NewFromInt(10),
			Product:  &entity.Product{Title: "Camiseta", Vendor: "TexCol", ProductType: "Ropa"},
			Variant:  &entity.Variant{Title: "M", SKU: "CAM-M"},
		}},
	}
}

func fecha(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de fechas
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del contrato: pedidos al 2024-01-01T10:00 y 2024-01-02T00:01 con la
// ventana 2024-01-01T00:00..2024-01-01T23:59 → solo el primero entra.
func TestGenerate_VentanaInclusiveDeMinutoFinal(t *testing.T) {
	gw := &fakeGateway{errAt: -1, pages: []*entity.OrdersPage{{
		Orders: []entity.Order{
			pedidoEn(fecha(2024, time.January, 2, 0, 1)),  // fuera (más nuevo primero)
			pedidoEn(fecha(2024, time.January, 1, 23, 59)), // dentro: último minuto inclusive
			pedidoEn(fecha(2024, time.January, 1, 10, 0)),  // dentro
		},
	}}}

	rep, err := newUC(gw, 1000).Generate(context.Background(), dto.SalesReportRequest{
		StartDate: "2024-01-01T00:00",
		EndDate:   "2024-01-01T23:59",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, rep.OrderCount, "el minuto final debe ser inclusive y el pedido del día siguiente debe quedar fuera")
	assert.Equal(t, "2024-01-01T00:00", rep.StartDate, "debe repetirse el string original, no el límite ajustado")
	assert.Equal(t, "2024-01-01T23:59", rep.EndDate)
	assert.False(t, rep.Partial)
	assert.False(t, rep.Truncated)
}

func TestGenerate_FechaInvalidaRetornaError(t *testing.T) {
	gw := &fakeGateway{errAt: -1}
	_, err := newUC(gw, 1000).Generate(context.Background(), dto.SalesReportRequest{
		StartDate: "01/01/2024",
		EndDate:   "2024-01-01T23:59",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, gw.calls, "con fechas inválidas no debe llamarse al gateway")
}

func TestGenerate_RangoInvertidoRetornaError(t *testing.T) {
	gw := &fakeGateway{errAt: -1}
	_, err := newUC(gw, 1000).Generate(context.Background(), dto.SalesReportRequest{
		StartDate: "2024-02-01T00:00",
		EndDate:   "2024-01-01T00:00",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

// ──────────────────────────────────────────────────────────────────────────────
// Condiciones de parada
// ──────────────────────────────────────────────────────────────────────────────

// El tope de pedidos nunca se excede: con tope 5 y 6 pedidos coincidentes el
// reporte queda truncado exactamente en 5.
func TestGenerate_TopeDePedidosNoSeExcede(t *testing.T) {
	dentro := fecha(2024, time.March, 10, 12, 0)
	page := func(n int) *entity.OrdersPage {
		p := &entity.OrdersPage{HasNextPage: true, EndCursor: "c"}
		for i := 0; i < n; i++ {
			p.Orders = append(p.Orders, pedidoEn(dentro))
		}
		return p
	}
	gw := &fakeGateway{errAt: -1, pages: []*entity.OrdersPage{page(3), page(3), page(3)}}

	rep, err := newUC(gw, 5).Generate(context.Background(), dto.SalesReportRequest{
		StartDate: "2024-03-10T00:00",
		EndDate:   "2024-03-10T23:59",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, rep.OrderCount, "el acumulado no debe superar el tope")
	assert.True(t, rep.Truncated, "al tocar el tope el reporte debe marcarse truncado")
	assert.NotEmpty(t, rep.Warning)
	assert.Equal(t, 2, gw.calls, "la paginación debe cortarse al llegar al tope")
}

// Falla a mitad de corrida: se reporta lo acumulado con Partial=true en lugar
// de perderlo en silencio.
func TestGenerate_ErrorIntermedioDegradaAParcial(t *testing.T) {
	dentro := fecha(2024, time.March, 10, 12, 0)
	gw := &fakeGateway{
		errAt: 1,
		pages: []*entity.OrdersPage{{
			Orders:      []entity.Order{pedidoEn(dentro), pedidoEn(dentro)},
			HasNextPage: true,
			EndCursor:   "c1",
		}},
	}

	rep, err := newUC(gw, 1000).Generate(context.Background(), dto.SalesReportRequest{
		StartDate: "2024-03-10T00:00",
		EndDate:   "2024-03-10T23:59",
	})
	require.NoError(t, err, "un error intermedio no debe tumbar el reporte")

	assert.True(t, rep.Partial)
	assert.NotEmpty(t, rep.Warning)
	assert.Equal(t, 2, rep.OrderCount, "debe conservarse lo acumulado antes del error")
}

// La primera página fallida sí es error: no hay nada que reportar.
func TestGenerate_ErrorEnPrimeraPagina(t *testing.T) {
	gw := &fakeGateway{errAt: 0}
	_, err := newUC(gw, 1000).Generate(context.Background(), dto.SalesReportRequest{
		StartDate: "2024-03-10T00:00",
		EndDate:   "2024-03-10T23:59",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

// Corte temprano: las páginas llegan de más nuevo a más viejo; si la página ya
// quedó por debajo de la ventana no se piden más aunque haya cursor.
func TestGenerate_CorteTempranoBajoLaVentana(t *testing.T) {
	gw := &fakeGateway{errAt: -1, pages: []*entity.OrdersPage{
		{
			Orders: []entity.Order{
				pedidoEn(fecha(2024, time.March, 10, 12, 0)), // dentro
				pedidoEn(fecha(2024, time.February, 1, 0, 0)), // ya por debajo de la ventana
			},
			HasNextPage: true,
			EndCursor:   "c1",
		},
		{Orders: []entity.Order{pedidoEn(fecha(2024, time.January, 1, 0, 0))}},
	}}

	rep, err := newUC(gw, 1000).Generate(context.Background(), dto.SalesReportRequest{
		StartDate: "2024-03-10T00:00",
		EndDate:   "2024-03-10T23:59",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.OrderCount)
	assert.Equal(t, 1, gw.calls, "no deben pedirse páginas que ya no pueden coincidir")
	assert.False(t, rep.Partial)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos corridas sobre el mismo dataset remoto producen el mismo agregado ordenado.
func TestGenerate_Idempotente(t *testing.T) {
	dentro := fecha(2024, time.March, 10, 12, 0)
	mkPages := func() []*entity.OrdersPage {
		o1 := pedidoEn(dentro)
		o2 := pedidoEn(dentro.Add(time.Hour))
		o2.LineItems[0].Variant.SKU = "ALFA-1"
		return []*entity.OrdersPage{{Orders: []entity.Order{o2, o1}}}
	}
	req := dto.SalesReportRequest{StartDate: "2024-03-10T00:00", EndDate: "2024-03-10T23:59"}

	rep1, err := newUC(&fakeGateway{errAt: -1, pages: mkPages()}, 1000).Generate(context.Background(), req)
	require.NoError(t, err)
	rep2, err := newUC(&fakeGateway{errAt: -1, pages: mkPages()}, 1000).Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, rep1.Rows, rep2.Rows)
	assert.Equal(t, rep1.Locations, rep2.Locations)
	assert.Equal(t, rep1.OrderCount, rep2.OrderCount)
}
