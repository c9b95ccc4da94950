package repository

import (
	"context"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search     string // ILIKE sobre name, code y barcode
	CategoryID *int64
	IDs        []int64
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	// ListAll devuelve todo el catálogo (carga del navegador de categorías).
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// MoveToCategory cambia la categoría de varios productos en una sola sentencia.
	MoveToCategory(ctx context.Context, ids []int64, categoryID *int64) (int64, error)
}
