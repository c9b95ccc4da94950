package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind distingue facturas de venta y de compra.
type InvoiceKind string

const (
	InvoiceSale     InvoiceKind = "sale"
	InvoicePurchase InvoiceKind = "purchase"
)

// Prefix prefijo de numeración: SQ venta, AQ compra.
func (k InvoiceKind) Prefix() string {
	if k == InvoicePurchase {
		return "AQ"
	}
	return "SQ"
}

// DefaultActive estado inicial: las ventas nacen como borrador, las compras activas.
func (k InvoiceKind) DefaultActive() bool {
	return k == InvoicePurchase
}

// Valid indica si k es un tipo conocido.
func (k InvoiceKind) Valid() bool {
	return k == InvoiceSale || k == InvoicePurchase
}

// Invoice cabecera de factura. CustomerID es el comprador (venta) o el proveedor (compra).
type Invoice struct {
	ID            int64
	Kind          InvoiceKind
	InvoiceNumber string
	CustomerID    *int64
	CustomerName  string // solo lectura, del JOIN
	TotalAmount   decimal.Decimal
	InvoiceDate   *time.Time
	PaymentDate   *time.Time
	Notes         *string
	IsActive      bool
	Items         []InvoiceItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceItem línea de factura.
type InvoiceItem struct {
	ID             int64
	InvoiceID      int64
	ProductID      *int64
	ProductName    string // solo lectura
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountAuto   decimal.Decimal
	DiscountManual decimal.Decimal
	TotalPrice     decimal.Decimal
}
