package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// StockRepository define el puerto para las filas de almacén (una por producto).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Create(ctx context.Context, productID int64, quantity decimal.Decimal) (*entity.Stock, error)
	GetByID(ctx context.Context, id int64) (*entity.Stock, error)
	GetByProduct(ctx context.Context, productID int64) (*entity.Stock, error)
	List(ctx context.Context) ([]*entity.Stock, error)
	SetQuantity(ctx context.Context, id int64, quantity decimal.Decimal) error
	// AddQuantity suma delta (puede ser negativo) a la existencia del producto,
	// creando la fila si no existe.
	AddQuantity(ctx context.Context, productID int64, delta decimal.Decimal) error
}
