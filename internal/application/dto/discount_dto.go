package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountItemRequest línea de un documento de descuento.
type DiscountItemRequest struct {
	ProductID       int64           `json:"product_id" validate:"required,gt=0"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Description     *string         `json:"description"`
}

// DiscountDocumentRequest alta/actualización. EndDate nil = DocumentDate.
type DiscountDocumentRequest struct {
	DocumentNumber string                `json:"document_number" validate:"required,max=100"`
	DocumentDate   time.Time             `json:"document_date" validate:"required"`
	StartDate      *time.Time            `json:"start_date"`
	EndDate        *time.Time            `json:"end_date"`
	Type           string                `json:"type" validate:"required,oneof=PRODUCT SUPPLIER BUYER"`
	EntityID       *int64                `json:"entity_id"`
	Notes          *string               `json:"notes"`
	IsActive       *bool                 `json:"is_active"`
	Items          []DiscountItemRequest `json:"items" validate:"dive"`
}

// DiscountItemResponse línea de descuento.
type DiscountItemResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Description     *string         `json:"description"`
}

// DiscountDocumentResponse documento con sus líneas.
type DiscountDocumentResponse struct {
	ID             int64                  `json:"id"`
	DocumentNumber string                 `json:"document_number"`
	DocumentDate   time.Time              `json:"document_date"`
	StartDate      time.Time              `json:"start_date"`
	EndDate        time.Time              `json:"end_date"`
	Type           string                 `json:"type"`
	EntityID       *int64                 `json:"entity_id"`
	Notes          *string                `json:"notes"`
	IsActive       bool                   `json:"is_active"`
	Items          []DiscountItemResponse `json:"items"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ProductDiscountResponse descuentos vigentes de un producto en una fecha.
type ProductDiscountResponse struct {
	ProductID    int64                     `json:"product_id"`
	At           time.Time                 `json:"at"`
	TotalPercent decimal.Decimal           `json:"total_percent"`
	Layers       []AppliedDiscountResponse `json:"layers"`
}

// AppliedDiscountResponse capa de descuento aportada por un documento.
type AppliedDiscountResponse struct {
	DocumentID      int64           `json:"document_id"`
	DocumentNumber  string          `json:"document_number"`
	DocumentDate    time.Time       `json:"document_date"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}
