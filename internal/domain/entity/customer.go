package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de contraparte.
const (
	CustomerBuyer    = "BUYER"
	CustomerSupplier = "SUPPLIER"
	CustomerBoth     = "BOTH"
)

// ValidCustomerType indica si t es un tipo de contraparte conocido.
func ValidCustomerType(t string) bool {
	switch t {
	case CustomerBuyer, CustomerSupplier, CustomerBoth:
		return true
	}
	return false
}

// Customer comprador o proveedor.
type Customer struct {
	ID                int64
	Code              *string
	Name              string
	Phone             *string
	Email             *string
	Address           *string
	Balance           decimal.Decimal
	PermanentDiscount decimal.Decimal
	FolderID          *int64
	Type              string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
