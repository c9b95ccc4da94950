package repository

import (
	"context"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// InvoiceFilter criterios de listado de facturas.
type InvoiceFilter struct {
	Kind   entity.InvoiceKind
	Search string // sobre invoice_number
	SortBy string // invoice_number, invoice_date, total_amount, created_at, customer_name
	Desc   bool
	Limit  int
	Offset int
}

// InvoiceRepository define el puerto de persistencia para facturas de venta y compra.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, kind entity.InvoiceKind, id int64) (*entity.Invoice, error)
	UpdateHeader(ctx context.Context, invoice *entity.Invoice) error
	SetActive(ctx context.Context, kind entity.InvoiceKind, id int64, active bool) error
	// ReplaceItems borra las líneas actuales e inserta items.
	ReplaceItems(ctx context.Context, kind entity.InvoiceKind, invoiceID int64, items []entity.InvoiceItem) error
	Delete(ctx context.Context, kind entity.InvoiceKind, id int64) error
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, int, error)
	// LastNumber último número emitido para el tipo ("" si no hay).
	LastNumber(ctx context.Context, kind entity.InvoiceKind) (string, error)
}
