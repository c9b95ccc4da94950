package repository

import (
	"context"
	"time"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// ActivityLogFilter criterios de consulta del log de actividad.
type ActivityLogFilter struct {
	UserID   *int64
	Category string
	Level    string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ActivityLogRepository define el puerto de persistencia del log de auditoría.
type ActivityLogRepository interface {
	// InsertBatch ignora entradas con LogID ya existente y devuelve cuántas insertó.
	InsertBatch(ctx context.Context, logs []entity.ActivityLog) (int, error)
	List(ctx context.Context, filter ActivityLogFilter) ([]*entity.ActivityLog, int, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
