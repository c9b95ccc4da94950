package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
// Ventas y compras comparten tabla, separadas por la columna kind.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceSelect = `
	SELECT i.id, i.kind, i.invoice_number, i.customer_id, COALESCE(c.name, ''), i.total_amount,
		i.invoice_date, i.payment_date, i.notes, i.is_active, i.created_at, i.updated_at
	FROM invoices i
	LEFT JOIN customers c ON c.id = i.customer_id`

// invoiceSortColumns columnas permitidas para ORDER BY.
var invoiceSortColumns = map[string]string{
	"invoice_number": "i.invoice_number",
	"invoice_date":   "i.invoice_date",
	"total_amount":   "i.total_amount",
	"created_at":     "i.created_at",
	"customer_name":  "COALESCE(c.name, '')",
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.Kind, &inv.InvoiceNumber, &inv.CustomerID, &inv.CustomerName, &inv.TotalAmount,
		&inv.InvoiceDate, &inv.PaymentDate, &inv.Notes, &inv.IsActive, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste la cabecera y sus líneas (usar dentro de una transacción).
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (kind, invoice_number, customer_id, total_amount, invoice_date, payment_date, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		inv.Kind, inv.InvoiceNumber, inv.CustomerID, inv.TotalAmount, inv.InvoiceDate, inv.PaymentDate, inv.Notes, inv.IsActive,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	items, err := r.insertItems(ctx, inv.ID, inv.Items)
	if err != nil {
		return err
	}
	inv.Items = items
	return nil
}

func (r *InvoiceRepo) insertItems(ctx context.Context, invoiceID int64, items []entity.InvoiceItem) ([]entity.InvoiceItem, error) {
	query := `
		INSERT INTO invoice_items (invoice_id, product_id, quantity, unit_price, discount_auto, discount_manual, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	out := make([]entity.InvoiceItem, len(items))
	for i, it := range items {
		it.InvoiceID = invoiceID
		err := r.q.QueryRow(ctx, query,
			invoiceID, it.ProductID, it.Quantity, it.UnitPrice, it.DiscountAuto, it.DiscountManual, it.TotalPrice,
		).Scan(&it.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("insert invoice item: %w", err)
		}
		out[i] = it
	}
	return out, nil
}

// itemsFor carga las líneas de varias facturas en una sola consulta.
func (r *InvoiceRepo) itemsFor(ctx context.Context, ids []int64) (map[int64][]entity.InvoiceItem, error) {
	out := make(map[int64][]entity.InvoiceItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT it.id, it.invoice_id, it.product_id, COALESCE(p.name, ''), it.quantity, it.unit_price,
			it.discount_auto, it.discount_manual, it.total_price
		FROM invoice_items it
		LEFT JOIN products p ON p.id = it.product_id
		WHERE it.invoice_id = ANY($1)
		ORDER BY it.id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.DiscountAuto, &it.DiscountManual, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out[it.InvoiceID] = append(out[it.InvoiceID], it)
	}
	return out, rows.Err()
}

// GetByID obtiene la factura del tipo indicado con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, kind entity.InvoiceKind, id int64) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE i.kind = $1 AND i.id = $2`, kind, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.itemsFor(ctx, []int64{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Items = items[inv.ID]
	return inv, nil
}

// UpdateHeader actualiza la cabecera (no toca las líneas).
func (r *InvoiceRepo) UpdateHeader(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer_id = $3, invoice_date = $4, payment_date = $5, notes = $6,
			total_amount = $7, is_active = $8, updated_at = now()
		WHERE kind = $1 AND id = $2
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		inv.Kind, inv.ID, inv.CustomerID, inv.InvoiceDate, inv.PaymentDate, inv.Notes, inv.TotalAmount, inv.IsActive,
	).Scan(&inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// SetActive cambia el estado borrador/activa.
func (r *InvoiceRepo) SetActive(ctx context.Context, kind entity.InvoiceKind, id int64, active bool) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE invoices SET is_active = $3, updated_at = now() WHERE kind = $1 AND id = $2`,
		kind, id, active,
	)
	if err != nil {
		return fmt.Errorf("set invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceItems borra las líneas actuales e inserta items.
func (r *InvoiceRepo) ReplaceItems(ctx context.Context, kind entity.InvoiceKind, invoiceID int64, items []entity.InvoiceItem) error {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE kind = $1 AND id = $2)`, kind, invoiceID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	_, err = r.insertItems(ctx, invoiceID, items)
	return err
}

// Delete elimina la factura; las líneas caen en cascada.
func (r *InvoiceRepo) Delete(ctx context.Context, kind entity.InvoiceKind, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista facturas del tipo con búsqueda por número, orden y paginación.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	args := []any{f.Kind}
	cond := ` WHERE i.kind = $1`
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		cond += fmt.Sprintf(" AND i.invoice_number ILIKE $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM invoices i`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	col, ok := invoiceSortColumns[f.SortBy]
	if !ok {
		col = invoiceSortColumns["created_at"]
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	args = append(args, limitArg(f.Limit), f.Offset)
	query := fmt.Sprintf(`%s%s ORDER BY %s %s, i.id %s LIMIT $%d OFFSET $%d`,
		invoiceSelect, cond, col, dir, dir, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	var list []*entity.Invoice
	var ids []int64
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
		ids = append(ids, inv.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, inv := range list {
		inv.Items = items[inv.ID]
	}
	return list, total, nil
}

// LastNumber último número emitido con el prefijo del tipo ("" si no hay).
func (r *InvoiceRepo) LastNumber(ctx context.Context, kind entity.InvoiceKind) (string, error) {
	var number string
	err := r.q.QueryRow(ctx,
		`SELECT invoice_number FROM invoices WHERE kind = $1 AND invoice_number LIKE $2
		 ORDER BY invoice_number DESC LIMIT 1`,
		kind, kind.Prefix()+"%",
	).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	return number, nil
}
