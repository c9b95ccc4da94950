// Package invoicing reglas puras de facturas: numeración, totales de línea
// y efecto sobre el stock.
package invoicing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// NextNumber siguiente número de la serie: prefijo + 8 dígitos.
// Un último número vacío o ajeno a la serie reinicia en 1.
func NextNumber(prefix, last string) string {
	n := int64(0)
	if rest, ok := strings.CutPrefix(last, prefix); ok {
		if v, err := strconv.ParseInt(rest, 10, 64); err == nil && v > 0 {
			n = v
		}
	}
	return fmt.Sprintf("%s%08d", prefix, n+1)
}

// LineTotal cantidad * precio, descontando (auto + manual)%. Nunca negativo.
func LineTotal(quantity, unitPrice, discountAuto, discountManual decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(unitPrice)
	pct := discountAuto.Add(discountManual)
	if pct.GreaterThanOrEqual(hundred) {
		return decimal.Zero
	}
	total := gross.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// InvoiceTotal suma de los totales de línea.
func InvoiceTotal(items []entity.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.TotalPrice)
	}
	return sum
}

// StockDelta variación de existencia de un producto.
type StockDelta struct {
	ProductID int64
	Delta     decimal.Decimal
}

// StockDeltas efecto de las líneas de una factura activa: compra suma, venta resta.
// Agrupa por producto, ignora líneas sin producto y devuelve orden por id
// (orden estable de bloqueo en la base).
func StockDeltas(kind entity.InvoiceKind, items []entity.InvoiceItem) []StockDelta {
	acc := make(map[int64]decimal.Decimal)
	for _, it := range items {
		if it.ProductID == nil || it.Quantity.IsZero() {
			continue
		}
		q := it.Quantity
		if kind == entity.InvoiceSale {
			q = q.Neg()
		}
		acc[*it.ProductID] = acc[*it.ProductID].Add(q)
	}
	out := make([]StockDelta, 0, len(acc))
	for id, d := range acc {
		if d.IsZero() {
			continue
		}
		out = append(out, StockDelta{ProductID: id, Delta: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Reverse invierte el signo de cada variación.
func Reverse(deltas []StockDelta) []StockDelta {
	out := make([]StockDelta, len(deltas))
	for i, d := range deltas {
		out[i] = StockDelta{ProductID: d.ProductID, Delta: d.Delta.Neg()}
	}
	return out
}

// Merge combina variaciones sumando por producto (orden por id).
func Merge(sets ...[]StockDelta) []StockDelta {
	acc := make(map[int64]decimal.Decimal)
	for _, set := range sets {
		for _, d := range set {
			acc[d.ProductID] = acc[d.ProductID].Add(d.Delta)
		}
	}
	out := make([]StockDelta, 0, len(acc))
	for id, d := range acc {
		if !d.IsZero() {
			out = append(out, StockDelta{ProductID: id, Delta: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
