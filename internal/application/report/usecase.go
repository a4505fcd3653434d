// Package report implementa el caso de uso del reporte de ventas por rango de
// fechas: pagina los pedidos de la tienda vía el OrderGateway, filtra por fecha
// de creación, aplana las líneas y consolida por producto/variante/SKU.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// dateLayout formato de los inputs datetime-local del formulario (resolución de minuto).
const dateLayout = "2006-01-02T15:04"

// Config parámetros de la corrida del pipeline.
type Config struct {
	PageDelay time.Duration // pausa entre páginas (rate limit cooperativo, no backoff)
	MaxOrders int           // tope de seguridad de pedidos acumulados
}

// SalesReportUseCase orquesta el pipeline fetch → filter → flatten → aggregate.
//
// Cada llamada a Generate es una corrida aislada: no hay estado compartido entre
// peticiones y nada se persiste. La paginación es estrictamente secuencial; la
// pausa entre páginas existe justamente para no emitir peticiones concurrentes.
type SalesReportUseCase struct {
	gateway OrderGateway
	log     *logger.Logger
	cfg     Config
}

// NewSalesReportUseCase construye el caso de uso.
func NewSalesReportUseCase(gateway OrderGateway, log *logger.Logger, cfg Config) *SalesReportUseCase {
	if cfg.MaxOrders <= 0 {
		cfg.MaxOrders = 1000
	}
	return &SalesReportUseCase{gateway: gateway, log: log, cfg: cfg}
}

// Generate ejecuta el pipeline completo y devuelve el reporte consolidado.
//
// Ventana del filtro: [start, fin-de-minuto de end], ambos inclusive. El límite
// superior se extiende al último nanosegundo del minuto para que "23:59" incluya
// todo ese minuto.
//
// Condiciones de parada de la paginación:
//   - no hay página siguiente;
//   - se acumularon MaxOrders pedidos coincidentes (Truncated=true, nunca se excede);
//   - la página más antigua quedó por debajo de la ventana (las páginas vienen de
//     más nuevo a más viejo, ninguna posterior puede coincidir);
//   - error del gateway: se reporta lo acumulado con Partial=true en lugar de
//     fallar en silencio; solo la primera página sin datos produce error.
func (uc *SalesReportUseCase) Generate(ctx context.Context, req dto.SalesReportRequest) (*dto.SalesReportDTO, error) {
	start, endIncl, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	reportID := uuid.New().String()
	runLog := uc.log.With().Str("report_id", reportID).Logger()

	var (
		matched   []entity.Order
		truncated bool
		partial   bool
		warning   string
		cursor    string
		pages     int
	)

fetch:
	for {
		page, err := uc.gateway.FetchOrdersPage(ctx, cursor)
		if err != nil {
			if pages == 0 && len(matched) == 0 {
				return nil, fmt.Errorf("reporte de ventas: primera página: %w: %v", domain.ErrRemoteUnavailable, err)
			}
			// Falla a mitad de corrida: degradar a resultado parcial explícito.
			runLog.Warn().Err(err).Int("paginas", pages).Int("pedidos", len(matched)).
				Msg("paginación abortada, se usa el acumulado parcial")
			partial = true
			warning = "la tienda dejó de responder durante la paginación; el reporte está incompleto"
			break
		}
		pages++

		for _, o := range page.Orders {
			if len(matched) >= uc.cfg.MaxOrders {
				truncated = true
				warning = fmt.Sprintf("se alcanzó el tope de %d pedidos; el reporte está truncado", uc.cfg.MaxOrders)
				break fetch
			}
			if !o.CreatedAt.Before(start) && !o.CreatedAt.After(endIncl) {
				matched = append(matched, o)
			}
		}

		// Corte temprano: la página llega ordenada de más nuevo a más viejo; si su
		// pedido más antiguo ya quedó antes de la ventana, las siguientes también.
		if n := len(page.Orders); n > 0 && page.Orders[n-1].CreatedAt.Before(start) {
			break
		}
		if !page.HasNextPage {
			break
		}
		cursor = page.EndCursor

		select {
		case <-ctx.Done():
			runLog.Warn().Int("paginas", pages).Msg("contexto cancelado durante la paginación")
			partial = true
			warning = "la corrida fue cancelada antes de terminar; el reporte está incompleto"
			break fetch
		case <-time.After(uc.cfg.PageDelay):
		}
	}

	flat, locations := Flatten(matched)
	rows := Aggregate(flat)

	runLog.Info().
		Int("paginas", pages).
		Int("pedidos", len(matched)).
		Int("filas", len(rows)).
		Int("sedes", len(locations)).
		Bool("parcial", partial).
		Bool("truncado", truncated).
		Msg("reporte de ventas generado")

	return &dto.SalesReportDTO{
		ReportID:    reportID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: time.Now(),
		OrderCount:  len(matched),
		Locations:   locations,
		Rows:        toRowDTOs(rows),
		Truncated:   truncated,
		Partial:     partial,
		Warning:     warning,
	}, nil
}

// parseWindow valida y parsea el rango; el fin se extiende al último nanosegundo
// de su minuto para hacer el límite inclusivo.
func parseWindow(startStr, endStr string) (start, endIncl time.Time, err error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate y endDate son obligatorios", domain.ErrInvalidInput)
	}
	start, err = time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate %q no tiene formato %s", domain.ErrInvalidInput, startStr, dateLayout)
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate %q no tiene formato %s", domain.ErrInvalidInput, endStr, dateLayout)
	}
	endIncl = end.Add(time.Minute - time.Nanosecond)
	if endIncl.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate es anterior a startDate", domain.ErrInvalidDateRange)
	}
	return start, endIncl, nil
}

func toRowDTOs(rows []AggregateRow) []dto.SalesRowDTO {
	out := make([]dto.SalesRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesRowDTO{
			ProductTitle:  r.ProductTitle,
			VariantTitle:  r.VariantTitle,
			SKU:           r.SKU,
			Vendor:        r.Vendor,
			ProductType:   r.ProductType,
			UnitsSold:     r.UnitsSold,
			NetSales:      r.NetSales,
			LocationStock: r.LocationStock,
		})
	}
	return out
}
