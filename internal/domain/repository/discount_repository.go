package repository

import (
	"context"
	"time"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// DiscountFilter criterios de listado de documentos de descuento.
type DiscountFilter struct {
	Type       string
	EntityID   *int64
	ActiveOnly bool
}

// DiscountRepository define el puerto de persistencia para documentos de descuento.
type DiscountRepository interface {
	Create(ctx context.Context, doc *entity.DiscountDocument) error
	GetByID(ctx context.Context, id int64) (*entity.DiscountDocument, error)
	Update(ctx context.Context, doc *entity.DiscountDocument) error
	ReplaceItems(ctx context.Context, documentID int64, items []entity.DiscountItem) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter DiscountFilter) ([]*entity.DiscountDocument, error)
	// ActiveForProduct items vigentes en at para el producto, más recientes primero.
	ActiveForProduct(ctx context.Context, productID int64, at time.Time) ([]entity.AppliedDiscount, error)
}
