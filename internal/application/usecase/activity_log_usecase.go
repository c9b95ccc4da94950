package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

const maxLogBatch = 500

// ActivityLogUseCase ingesta y consulta del log de actividad.
type ActivityLogUseCase struct {
	repo repository.ActivityLogRepository
	now  func() time.Time
}

// NewActivityLogUseCase construye el caso de uso.
func NewActivityLogUseCase(repo repository.ActivityLogRepository) *ActivityLogUseCase {
	return &ActivityLogUseCase{repo: repo, now: time.Now}
}

// Ingest guarda un lote de entradas del usuario. Las entradas sin id reciben
// un uuid; las de id repetido se omiten.
func (uc *ActivityLogUseCase) Ingest(ctx context.Context, userID int64, in dto.ActivityLogBatchRequest) (*dto.ActivityLogBatchResponse, error) {
	if len(in.Logs) == 0 {
		return nil, fmt.Errorf("%w: lote vacío", domain.ErrInvalidInput)
	}
	if len(in.Logs) > maxLogBatch {
		return nil, fmt.Errorf("%w: máximo %d entradas por lote", domain.ErrInvalidInput, maxLogBatch)
	}
	now := uc.now()
	logs := make([]entity.ActivityLog, 0, len(in.Logs))
	for _, e := range in.Logs {
		if strings.TrimSpace(e.Category) == "" || strings.TrimSpace(e.Action) == "" {
			return nil, fmt.Errorf("%w: category y action son obligatorios", domain.ErrInvalidInput)
		}
		logs = append(logs, newLogEntry(userID, e, now))
	}
	saved, err := uc.repo.InsertBatch(ctx, logs)
	if err != nil {
		return nil, err
	}
	return &dto.ActivityLogBatchResponse{Received: len(logs), Saved: saved}, nil
}

// List entradas de userID (nil = todos) con filtros y paginación.
func (uc *ActivityLogUseCase) List(ctx context.Context, userID *int64, q dto.ActivityLogQuery) (*dto.ActivityLogListResponse, error) {
	q.Normalize(50, maxLogBatch)
	list, total, err := uc.repo.List(ctx, repository.ActivityLogFilter{
		UserID:   userID,
		Category: q.Category,
		Level:    q.Level,
		From:     q.From,
		To:       q.To,
		Limit:    q.Limit,
		Offset:   q.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ActivityLogResponse{
			ID:        l.LogID,
			UserID:    l.UserID,
			Timestamp: l.Timestamp,
			Level:     l.Level,
			Category:  l.Category,
			Action:    l.Action,
			Details:   l.Details,
			Metadata:  l.Metadata,
		})
	}
	return &dto.ActivityLogListResponse{Data: out, Pagination: dto.NewPagination(q.PageRequest, total)}, nil
}

// Clear borra las entradas del usuario.
func (uc *ActivityLogUseCase) Clear(ctx context.Context, userID int64) (int64, error) {
	return uc.repo.DeleteByUser(ctx, userID)
}

func newLogEntry(userID int64, e dto.ActivityLogEntry, now time.Time) entity.ActivityLog {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		id = uuid.NewString()
	}
	level := e.Level
	if level == "" {
		level = entity.LogLevelInfo
	}
	ts := now
	if e.Timestamp != nil {
		ts = *e.Timestamp
	}
	return entity.ActivityLog{
		LogID:     id,
		UserID:    userID,
		Timestamp: ts,
		Level:     level,
		Category:  e.Category,
		Action:    e.Action,
		Details:   e.Details,
		Metadata:  e.Metadata,
		CreatedAt: now,
	}
}
