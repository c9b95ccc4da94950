package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateStockRequest fija la existencia de una fila de almacén.
type UpdateStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// StockResponse fila de almacén con el producto asociado.
type StockResponse struct {
	ID           int64            `json:"id"`
	ProductID    int64            `json:"product_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Product      *ProductResponse `json:"product,omitempty"`
	BelowMinimum bool             `json:"below_minimum"`
}
