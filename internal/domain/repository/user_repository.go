package repository

import (
	"context"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// UserStats conteos para el panel de administración.
type UserStats struct {
	Total    int
	Active   int
	Inactive int
	Admins   int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
	Stats(ctx context.Context) (UserStats, error)
}
