package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountDocument documento de descuento con vigencia [StartDate, EndDate].
// Varios documentos pueden solaparse (descuentos por capas).
type DiscountDocument struct {
	ID             int64
	DocumentNumber string
	DocumentDate   time.Time
	StartDate      time.Time
	EndDate        time.Time
	Type           string // PRODUCT, SUPPLIER, BUYER
	EntityID       *int64
	Notes          *string
	IsActive       bool
	Items          []DiscountItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DiscountItem porcentaje aplicado a un producto dentro de un documento.
type DiscountItem struct {
	ID              int64
	DocumentID      int64
	ProductID       int64
	DiscountPercent decimal.Decimal
	Description     *string
}

// Covers indica si el documento está vigente en la fecha at (días completos).
func (d DiscountDocument) Covers(at time.Time) bool {
	day := truncateDay(at)
	return d.IsActive && !day.Before(truncateDay(d.StartDate)) && !day.After(truncateDay(d.EndDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, t.Location())
}

// AppliedDiscount descuento efectivo de un producto proveniente de un documento.
type AppliedDiscount struct {
	DocumentID      int64
	DocumentNumber  string
	DocumentDate    time.Time
	ProductID       int64
	DiscountPercent decimal.Decimal
}
