package memory

import (
	"context"
	"sort"

	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo log de actividad en memoria.
type ActivityLogRepo struct{ db *conn }

// NewActivityLogRepository construye el repositorio.
func NewActivityLogRepository(db *DB) *ActivityLogRepo { return &ActivityLogRepo{db: db.handle(false)} }

func (r *ActivityLogRepo) InsertBatch(_ context.Context, logs []entity.ActivityLog) (int, error) {
	defer r.db.lock()()
	seen := make(map[string]bool, len(r.db.logs))
	for _, l := range r.db.logs {
		seen[l.LogID] = true
	}
	saved := 0
	for _, l := range logs {
		if seen[l.LogID] {
			continue
		}
		seen[l.LogID] = true
		l.ID = r.db.next("activity_logs")
		l.CreatedAt = r.db.now()
		r.db.logs = append(r.db.logs, l)
		saved++
	}
	return saved, nil
}

func (r *ActivityLogRepo) List(_ context.Context, f repository.ActivityLogFilter) ([]*entity.ActivityLog, int, error) {
	defer r.db.lock()()
	var out []*entity.ActivityLog
	for _, l := range r.db.logs {
		l := l
		if f.UserID != nil && l.UserID != *f.UserID {
			continue
		}
		if f.Category != "" && l.Category != f.Category {
			continue
		}
		if f.Level != "" && l.Level != f.Level {
			continue
		}
		if f.From != nil && l.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && l.Timestamp.After(*f.To) {
			continue
		}
		out = append(out, &l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r *ActivityLogRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	defer r.db.lock()()
	kept := r.db.logs[:0]
	var n int64
	for _, l := range r.db.logs {
		if l.UserID == userID {
			n++
			continue
		}
		kept = append(kept, l)
	}
	r.db.logs = kept
	return n, nil
}
