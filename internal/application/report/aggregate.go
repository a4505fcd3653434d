package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Marcadores literales del reporte. Forman parte del contrato observable:
// "N/A" participa en la clave de agrupación (dos líneas sin SKU ni variante de
// productos distintos se consolidan en la misma fila, comportamiento documentado)
// y "-" es la celda de una sede sin disponibilidad reportada.
const (
	missingValue = "N/A"
	noStock      = "-"
)

// FlatRow una fila por línea de pedido, con los campos ya resueltos a sus
// valores por defecto y el stock por sede como texto.
type FlatRow struct {
	ProductTitle  string
	VariantTitle  string
	SKU           string
	Vendor        string
	ProductType   string
	Quantity      int
	NetTotal      decimal.Decimal
	LocationStock map[string]string
}

// AggregateRow fila consolidada por (producto, variante, SKU).
type AggregateRow struct {
	ProductTitle  string
	VariantTitle  string
	SKU           string
	Vendor        string
	ProductType   string
	UnitsSold     int
	NetSales      decimal.Decimal
	LocationStock map[string]string
}

// groupKey clave de agrupación como tupla estructurada. Evita el riesgo de
// colisión por delimitador de la concatenación de strings.
type groupKey struct {
	ProductTitle string
	VariantTitle string
	SKU          string
}

// Flatten expande cada pedido en una fila por línea y devuelve, además, los
// nombres de sede en su orden de primer descubrimiento. Las sedes se recogen
// sobre TODOS los pedidos que entran al pipeline, no solo sobre las filas que
// terminan en el agregado.
func Flatten(orders []entity.Order) ([]FlatRow, []string) {
	rows := make([]FlatRow, 0, len(orders))
	var locations []string
	seen := make(map[string]bool)

	for _, o := range orders {
		for _, li := range o.LineItems {
			row := FlatRow{
				ProductTitle:  missingValue,
				VariantTitle:  missingValue,
				SKU:           missingValue,
				Vendor:        missingValue,
				ProductType:   missingValue,
				Quantity:      li.Quantity,
				NetTotal:      li.NetTotal,
				LocationStock: make(map[string]string),
			}
			if li.Product != nil {
				row.ProductTitle = orPlaceholder(li.Product.Title)
				row.Vendor = orPlaceholder(li.Product.Vendor)
				row.ProductType = orPlaceholder(li.Product.ProductType)
			}
			if li.Variant != nil {
				row.VariantTitle = orPlaceholder(li.Variant.Title)
				row.SKU = orPlaceholder(li.Variant.SKU)
				for _, lvl := range li.Variant.InventoryLevels {
					if lvl.LocationName == "" {
						continue
					}
					if !seen[lvl.LocationName] {
						seen[lvl.LocationName] = true
						locations = append(locations, lvl.LocationName)
					}
					if lvl.Available != nil {
						row.LocationStock[lvl.LocationName] = strconv.Itoa(*lvl.Available)
					} else {
						row.LocationStock[lvl.LocationName] = noStock
					}
				}
			}
			rows = append(rows, row)
		}
	}
	return rows, locations
}

// Aggregate consolida las filas por (producto, variante, SKU): las cantidades y
// ventas netas se suman; el stock por sede se sobreescribe en orden de llegada
// (gana la última fila que reportó cada sede, no se suma). El resultado queda
// ordenado ascendente por SKU con comparación de collation.
func Aggregate(rows []FlatRow) []AggregateRow {
	byKey := make(map[groupKey]*AggregateRow)
	var order []groupKey

	for _, r := range rows {
		key := groupKey{r.ProductTitle, r.VariantTitle, r.SKU}
		agg, ok := byKey[key]
		if !ok {
			agg = &AggregateRow{
				ProductTitle:  r.ProductTitle,
				VariantTitle:  r.VariantTitle,
				SKU:           r.SKU,
				Vendor:        r.Vendor,
				ProductType:   r.ProductType,
				LocationStock: make(map[string]string),
			}
			byKey[key] = agg
			order = append(order, key)
		}
		agg.UnitsSold += r.Quantity
		agg.NetSales = agg.NetSales.Add(r.NetTotal)
		for loc, qty := range r.LocationStock {
			agg.LocationStock[loc] = qty
		}
	}

	out := make([]AggregateRow, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sortBySKU(out)
	return out
}

// sortBySKU orden lexicográfico por SKU con collation (equivalente a la
// comparación locale-aware del navegador). Estable para que filas con el mismo
// SKU conserven su orden de producción.
func sortBySKU(rows []AggregateRow) {
	c := collate.New(language.Und)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].SKU, rows[j].SKU) < 0
	})
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingValue
	}
	return s
}
