package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest alta o actualización completa de un comprador/proveedor.
type CustomerRequest struct {
	Code              *string          `json:"code" validate:"omitempty,max=100"`
	Name              string           `json:"name" validate:"required,min=1,max=255"`
	Phone             *string          `json:"phone" validate:"omitempty,max=50"`
	Email             *string          `json:"email" validate:"omitempty,email"`
	Address           *string          `json:"address"`
	Balance           *decimal.Decimal `json:"balance"`
	PermanentDiscount *decimal.Decimal `json:"permanent_discount"`
	FolderID          *int64           `json:"folder_id"`
	Type              string           `json:"type" validate:"omitempty,oneof=BUYER SUPPLIER BOTH"`
	IsActive          *bool            `json:"is_active"`
}

// CustomerResponse salida de un comprador/proveedor.
type CustomerResponse struct {
	ID                int64           `json:"id"`
	Code              *string         `json:"code"`
	Name              string          `json:"name"`
	Phone             *string         `json:"phone"`
	Email             *string         `json:"email"`
	Address           *string         `json:"address"`
	Balance           decimal.Decimal `json:"balance"`
	PermanentDiscount decimal.Decimal `json:"permanent_discount"`
	FolderID          *int64          `json:"folder_id"`
	Type              string          `json:"type"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CustomerListResponse lista paginada.
type CustomerListResponse struct {
	Data       []CustomerResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
