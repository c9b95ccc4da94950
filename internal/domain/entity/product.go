package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit unidad por defecto de un producto ("unidad").
const DefaultUnit = "ədəd"

// Product artículo del catálogo. CategoryID nil = sin carpeta (nivel raíz).
type Product struct {
	ID             int64
	Name           string
	Code           *string
	Barcode        *string
	Article        *string
	Description    *string
	Unit           string
	CategoryID     *int64
	Type           *string
	Brand          *string
	Model          *string
	Color          *string
	Size           *string
	Weight         *decimal.Decimal
	Country        *string
	Manufacturer   *string
	WarrantyPeriod *int
	ProductionDate *time.Time
	ExpiryDate     *time.Time
	PurchasePrice  decimal.Decimal
	SalePrice      decimal.Decimal
	MinStock       *decimal.Decimal
	MaxStock       *decimal.Decimal
	TaxRate        *decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
