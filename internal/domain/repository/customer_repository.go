package repository

import (
	"context"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// CustomerFilter criterios de listado de contrapartes.
type CustomerFilter struct {
	Type   string // BUYER, SUPPLIER; incluye siempre BOTH
	Search string
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, int, error)
}
