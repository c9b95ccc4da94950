package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductFields campos editables de un producto.
type ProductFields struct {
	Code           *string          `json:"code" validate:"omitempty,max=100"`
	Barcode        *string          `json:"barcode" validate:"omitempty,max=100"`
	Article        *string          `json:"article" validate:"omitempty,max=100"`
	Description    *string          `json:"description"`
	Unit           *string          `json:"unit" validate:"omitempty,max=50"`
	CategoryID     *int64           `json:"category_id" validate:"omitempty,gt=0"`
	Type           *string          `json:"type"`
	Brand          *string          `json:"brand"`
	Model          *string          `json:"model"`
	Color          *string          `json:"color"`
	Size           *string          `json:"size"`
	Weight         *decimal.Decimal `json:"weight"`
	Country        *string          `json:"country"`
	Manufacturer   *string          `json:"manufacturer"`
	WarrantyPeriod *int             `json:"warranty_period" validate:"omitempty,min=0"`
	ProductionDate *time.Time       `json:"production_date"`
	ExpiryDate     *time.Time       `json:"expiry_date"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"`
	SalePrice      *decimal.Decimal `json:"sale_price"`
	MinStock       *decimal.Decimal `json:"min_stock"`
	MaxStock       *decimal.Decimal `json:"max_stock"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
	IsActive       *bool            `json:"is_active"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	ProductFields
}

// UpdateProductRequest actualización parcial (incluye category_id).
type UpdateProductRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
	ProductFields
}

// ProductListRequest filtros del listado.
type ProductListRequest struct {
	Search     string  `query:"search"`
	CategoryID *int64  `query:"category_id"`
	IDs        []int64 `query:"-"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Code           *string          `json:"code"`
	Barcode        *string          `json:"barcode"`
	Article        *string          `json:"article"`
	Description    *string          `json:"description"`
	Unit           string           `json:"unit"`
	CategoryID     *int64           `json:"category_id"`
	Type           *string          `json:"type"`
	Brand          *string          `json:"brand"`
	Model          *string          `json:"model"`
	Color          *string          `json:"color"`
	Size           *string          `json:"size"`
	Weight         *decimal.Decimal `json:"weight"`
	Country        *string          `json:"country"`
	Manufacturer   *string          `json:"manufacturer"`
	WarrantyPeriod *int             `json:"warranty_period"`
	ProductionDate *time.Time       `json:"production_date"`
	ExpiryDate     *time.Time       `json:"expiry_date"`
	PurchasePrice  decimal.Decimal  `json:"purchase_price"`
	SalePrice      decimal.Decimal  `json:"sale_price"`
	MinStock       *decimal.Decimal `json:"min_stock"`
	MaxStock       *decimal.Decimal `json:"max_stock"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
