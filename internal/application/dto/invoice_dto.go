package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura. TotalPrice nil = se calcula.
type InvoiceItemRequest struct {
	ProductID      *int64           `json:"product_id" validate:"omitempty,gt=0"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	TotalPrice     *decimal.Decimal `json:"total_price"`
	DiscountAuto   decimal.Decimal  `json:"discount_auto"`
	DiscountManual decimal.Decimal  `json:"discount_manual"`
}

// CreateInvoiceRequest alta de factura. IsActive nil = valor por defecto del tipo.
type CreateInvoiceRequest struct {
	CustomerID  *int64               `json:"customer_id" validate:"omitempty,gt=0"`
	InvoiceDate *time.Time           `json:"invoice_date"`
	PaymentDate *time.Time           `json:"payment_date"`
	Notes       *string              `json:"notes"`
	IsActive    *bool                `json:"is_active"`
	Items       []InvoiceItemRequest `json:"items" validate:"dive"`
}

// UpdateInvoiceRequest actualización parcial; Items no nil reemplaza las líneas.
type UpdateInvoiceRequest struct {
	CustomerID  *int64                `json:"customer_id" validate:"omitempty,gt=0"`
	InvoiceDate *time.Time            `json:"invoice_date"`
	PaymentDate *time.Time            `json:"payment_date"`
	Notes       *string               `json:"notes"`
	IsActive    *bool                 `json:"is_active"`
	Items       *[]InvoiceItemRequest `json:"items"`
}

// InvoiceStatusRequest activa o desactiva una factura.
type InvoiceStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// InvoiceListRequest filtros del listado.
type InvoiceListRequest struct {
	Search string `query:"search"`
	SortBy string `query:"sort_by"`
	Order  string `query:"order"`
	PageRequest
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID             int64           `json:"id"`
	ProductID      *int64          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAuto   decimal.Decimal `json:"discount_auto"`
	DiscountManual decimal.Decimal `json:"discount_manual"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// InvoiceResponse factura con sus líneas.
type InvoiceResponse struct {
	ID            int64                 `json:"id"`
	Kind          string                `json:"kind"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    *int64                `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	InvoiceDate   *time.Time            `json:"invoice_date"`
	PaymentDate   *time.Time            `json:"payment_date"`
	Notes         *string               `json:"notes"`
	IsActive      bool                  `json:"is_active"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Data       []InvoiceResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
