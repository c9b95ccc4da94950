package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

// DiscountRepo documentos de descuento sobre PostgreSQL.
type DiscountRepo struct {
	q Querier
}

// NewDiscountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

const discountColumns = `id, document_number, document_date, start_date, end_date, type, entity_id, notes,
	is_active, created_at, updated_at`

func scanDiscount(row pgx.Row) (*entity.DiscountDocument, error) {
	var d entity.DiscountDocument
	err := row.Scan(&d.ID, &d.DocumentNumber, &d.DocumentDate, &d.StartDate, &d.EndDate, &d.Type, &d.EntityID,
		&d.Notes, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste el documento y sus items.
func (r *DiscountRepo) Create(ctx context.Context, d *entity.DiscountDocument) error {
	query := `
		INSERT INTO discount_documents (document_number, document_date, start_date, end_date, type, entity_id, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		d.DocumentNumber, d.DocumentDate, d.StartDate, d.EndDate, d.Type, d.EntityID, d.Notes, d.IsActive,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert discount document: %w", err)
	}
	items, err := r.insertItems(ctx, d.ID, d.Items)
	if err != nil {
		return err
	}
	d.Items = items
	return nil
}

func (r *DiscountRepo) insertItems(ctx context.Context, docID int64, items []entity.DiscountItem) ([]entity.DiscountItem, error) {
	query := `
		INSERT INTO discount_items (document_id, product_id, discount_percent, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	out := make([]entity.DiscountItem, len(items))
	for i, it := range items {
		it.DocumentID = docID
		if err := r.q.QueryRow(ctx, query, docID, it.ProductID, it.DiscountPercent, it.Description).Scan(&it.ID); err != nil {
			if isForeignKeyViolation(err) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("insert discount item: %w", err)
		}
		out[i] = it
	}
	return out, nil
}

func (r *DiscountRepo) itemsFor(ctx context.Context, ids []int64) (map[int64][]entity.DiscountItem, error) {
	out := make(map[int64][]entity.DiscountItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, document_id, product_id, discount_percent, description
		 FROM discount_items WHERE document_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list discount items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.DiscountItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProductID, &it.DiscountPercent, &it.Description); err != nil {
			return nil, fmt.Errorf("scan discount item: %w", err)
		}
		out[it.DocumentID] = append(out[it.DocumentID], it)
	}
	return out, rows.Err()
}

// GetByID obtiene el documento con sus items.
func (r *DiscountRepo) GetByID(ctx context.Context, id int64) (*entity.DiscountDocument, error) {
	d, err := scanDiscount(r.q.QueryRow(ctx, `SELECT `+discountColumns+` FROM discount_documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get discount document: %w", err)
	}
	items, err := r.itemsFor(ctx, []int64{d.ID})
	if err != nil {
		return nil, err
	}
	d.Items = items[d.ID]
	return d, nil
}

// Update reemplaza la cabecera del documento.
func (r *DiscountRepo) Update(ctx context.Context, d *entity.DiscountDocument) error {
	query := `
		UPDATE discount_documents SET document_number = $2, document_date = $3, start_date = $4, end_date = $5,
			type = $6, entity_id = $7, notes = $8, is_active = $9, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		d.ID, d.DocumentNumber, d.DocumentDate, d.StartDate, d.EndDate, d.Type, d.EntityID, d.Notes, d.IsActive,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update discount document: %w", err)
	}
	return nil
}

// ReplaceItems borra los items del documento e inserta los nuevos.
func (r *DiscountRepo) ReplaceItems(ctx context.Context, documentID int64, items []entity.DiscountItem) error {
	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM discount_documents WHERE id = $1)`, documentID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check discount document: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM discount_items WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete discount items: %w", err)
	}
	_, err := r.insertItems(ctx, documentID, items)
	return err
}

// Delete elimina el documento; los items caen en cascada.
func (r *DiscountRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM discount_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete discount document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista documentos, más recientes (document_date) primero.
func (r *DiscountRepo) List(ctx context.Context, f repository.DiscountFilter) ([]*entity.DiscountDocument, error) {
	var where []string
	var args []any
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.EntityID != nil {
		args = append(args, *f.EntityID)
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "is_active")
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+discountColumns+` FROM discount_documents`+cond+` ORDER BY document_date DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list discount documents: %w", err)
	}
	var list []*entity.DiscountDocument
	var ids []int64
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan discount document: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list discount documents: %w", err)
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		d.Items = items[d.ID]
	}
	return list, nil
}

// ActiveForProduct items vigentes en at para el producto, más recientes primero.
func (r *DiscountRepo) ActiveForProduct(ctx context.Context, productID int64, at time.Time) ([]entity.AppliedDiscount, error) {
	query := `
		SELECT d.id, d.document_number, d.document_date, i.product_id, i.discount_percent
		FROM discount_items i
		JOIN discount_documents d ON d.id = i.document_id
		WHERE i.product_id = $1
		  AND d.is_active
		  AND $2::date BETWEEN d.start_date AND d.end_date
		ORDER BY d.document_date DESC, d.id DESC, i.id`
	rows, err := r.q.Query(ctx, query, productID, at)
	if err != nil {
		return nil, fmt.Errorf("active discounts: %w", err)
	}
	defer rows.Close()
	var out []entity.AppliedDiscount
	for rows.Next() {
		var a entity.AppliedDiscount
		if err := rows.Scan(&a.DocumentID, &a.DocumentNumber, &a.DocumentDate, &a.ProductID, &a.DiscountPercent); err != nil {
			return nil, fmt.Errorf("scan active discount: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
