package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TodaySales         decimal.Decimal     `json:"today_sales"`
	TodayInvoices      int                 `json:"today_invoices"`
	MonthlySales       decimal.Decimal     `json:"monthly_sales"`
	MonthlyInvoices    int                 `json:"monthly_invoices"`
	LowStockProducts   int                 `json:"low_stock_products"`
	OverdueInvoices    []OverdueInvoiceDTO `json:"overdue_invoices"`
	OverdueTotalAmount decimal.Decimal     `json:"overdue_total_amount"`
	DateLabel          string              `json:"date_label"`
}

// OverdueInvoiceDTO factura de venta activa con pago vencido.
type OverdueInvoiceDTO struct {
	InvoiceID     int64           `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	DaysOverdue   int             `json:"days_overdue"`
}
