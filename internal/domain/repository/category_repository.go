package repository

import (
	"context"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// UpdateParent re-ubica una categoría (nil = raíz).
	UpdateParent(ctx context.Context, id int64, parentID *int64) error
	// ListAll devuelve todas las categorías ordenadas por nombre, con ProductCount.
	ListAll(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}
