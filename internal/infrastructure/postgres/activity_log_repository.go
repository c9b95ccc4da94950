package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo log de auditoría sobre PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// InsertBatch inserta las entradas ignorando log_id repetidos.
func (r *ActivityLogRepo) InsertBatch(ctx context.Context, logs []entity.ActivityLog) (int, error) {
	query := `
		INSERT INTO activity_logs (log_id, user_id, timestamp, level, category, action, details, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (log_id) DO NOTHING`
	saved := 0
	for _, l := range logs {
		var metadata any
		if len(l.Metadata) > 0 {
			metadata = string(l.Metadata)
		}
		cmd, err := r.q.Exec(ctx, query, l.LogID, l.UserID, l.Timestamp, l.Level, l.Category, l.Action, l.Details, metadata)
		if err != nil {
			return saved, fmt.Errorf("insert activity log: %w", err)
		}
		saved += int(cmd.RowsAffected())
	}
	return saved, nil
}

// List lista entradas filtradas, más recientes primero.
func (r *ActivityLogRepo) List(ctx context.Context, f repository.ActivityLogFilter) ([]*entity.ActivityLog, int, error) {
	var where []string
	var args []any
	add := func(expr string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(expr, len(args)))
	}
	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Level != "" {
		add("level = $%d", f.Level)
	}
	if f.From != nil {
		add("timestamp >= $%d", *f.From)
	}
	if f.To != nil {
		add("timestamp <= $%d", *f.To)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM activity_logs`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}
	args = append(args, limitArg(f.Limit), f.Offset)
	query := fmt.Sprintf(`
		SELECT id, log_id, user_id, timestamp, level, category, action, details, metadata::text, created_at
		FROM activity_logs%s ORDER BY timestamp DESC, id DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		var metadata *string
		if err := rows.Scan(&l.ID, &l.LogID, &l.UserID, &l.Timestamp, &l.Level, &l.Category, &l.Action,
			&l.Details, &metadata, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity log: %w", err)
		}
		if metadata != nil {
			l.Metadata = []byte(*metadata)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// DeleteByUser borra todas las entradas del usuario.
func (r *ActivityLogRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM activity_logs WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete activity logs: %w", err)
	}
	return cmd.RowsAffected(), nil
}
