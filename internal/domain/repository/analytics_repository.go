package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OverdueInvoice factura de venta activa con fecha de pago vencida.
type OverdueInvoice struct {
	InvoiceID     int64
	InvoiceNumber string
	CustomerName  string
	TotalAmount   decimal.Decimal
	PaymentDate   time.Time
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	// SalesTotal suma de facturas de venta activas en [start, end]; cero si no hay.
	SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)
	// OverdueInvoices facturas de venta activas cuyo payment_date es anterior a now.
	OverdueInvoices(ctx context.Context, now time.Time, limit int) ([]OverdueInvoice, error)
	// LowStockCount productos activos con existencia por debajo de min_stock.
	LowStockCount(ctx context.Context) (int, error)
}
