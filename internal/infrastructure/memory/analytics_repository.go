package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas del dashboard en memoria.
type AnalyticsRepo struct{ db *conn }

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(db *DB) *AnalyticsRepo { return &AnalyticsRepo{db: db.handle(false)} }

func (r *AnalyticsRepo) SalesTotal(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	defer r.db.lock()()
	sum, n := decimal.Zero, 0
	for _, inv := range r.db.invoices {
		if inv.Kind != entity.InvoiceSale || !inv.IsActive {
			continue
		}
		at := timeOrZero(inv.InvoiceDate)
		if inv.InvoiceDate == nil {
			at = inv.CreatedAt
		}
		if at.Before(start) || at.After(end) {
			continue
		}
		sum = sum.Add(inv.TotalAmount)
		n++
	}
	return sum, n, nil
}

func (r *AnalyticsRepo) OverdueInvoices(_ context.Context, now time.Time, limit int) ([]repository.OverdueInvoice, error) {
	defer r.db.lock()()
	var out []repository.OverdueInvoice
	for _, inv := range r.db.invoices {
		if inv.Kind != entity.InvoiceSale || !inv.IsActive || inv.PaymentDate == nil || !inv.PaymentDate.Before(now) {
			continue
		}
		name := ""
		if inv.CustomerID != nil {
			name = r.db.customers[*inv.CustomerID].Name
		}
		out = append(out, repository.OverdueInvoice{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  name,
			TotalAmount:   inv.TotalAmount,
			PaymentDate:   *inv.PaymentDate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnalyticsRepo) LowStockCount(_ context.Context) (int, error) {
	defer r.db.lock()()
	n := 0
	for _, s := range r.db.stock {
		p, ok := r.db.products[s.ProductID]
		if !ok || !p.IsActive || p.MinStock == nil {
			continue
		}
		if s.Quantity.LessThan(*p.MinStock) {
			n++
		}
	}
	return n, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
