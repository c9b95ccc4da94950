package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SalesTotal suma las ventas activas del rango. Sin invoice_date se usa created_at.
func (r *AnalyticsRepo) SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	FROM invoices
	WHERE kind = 'sale'
	  AND is_active
	  AND COALESCE(invoice_date, created_at) BETWEEN $1 AND $2`
	var total decimal.Decimal
	var count int
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.SalesTotal: %w", err)
	}
	return total, count, nil
}

// OverdueInvoices ventas activas con payment_date vencido, las más antiguas primero.
func (r *AnalyticsRepo) OverdueInvoices(ctx context.Context, now time.Time, limit int) ([]repository.OverdueInvoice, error) {
	const query = `
	SELECT i.id, i.invoice_number, COALESCE(c.name, ''), i.total_amount, i.payment_date
	FROM invoices i
	LEFT JOIN customers c ON c.id = i.customer_id
	WHERE i.kind = 'sale'
	  AND i.is_active
	  AND i.payment_date < $1
	ORDER BY i.payment_date
	LIMIT $2`
	rows, err := r.pool.Query(ctx, query, now, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("analytics.OverdueInvoices: %w", err)
	}
	defer rows.Close()

	var results []repository.OverdueInvoice
	for rows.Next() {
		var row repository.OverdueInvoice
		if err := rows.Scan(&row.InvoiceID, &row.InvoiceNumber, &row.CustomerName, &row.TotalAmount, &row.PaymentDate); err != nil {
			return nil, fmt.Errorf("analytics.OverdueInvoices scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LowStockCount productos activos con existencia por debajo de min_stock.
func (r *AnalyticsRepo) LowStockCount(ctx context.Context) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM warehouse w
	JOIN products p ON p.id = w.product_id
	WHERE p.is_active
	  AND p.min_stock IS NOT NULL
	  AND w.quantity < p.min_stock`
	var n int
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.LowStockCount: %w", err)
	}
	return n, nil
}
