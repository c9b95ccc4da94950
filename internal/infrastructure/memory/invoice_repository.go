package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
	"github.com/anbar/anbar-api/pkg/textmatch"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas de venta y compra en memoria.
type InvoiceRepo struct{ db *conn }

// NewInvoiceRepository construye el repositorio.
func NewInvoiceRepository(db *DB) *InvoiceRepo { return &InvoiceRepo{db: db.handle(false)} }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.db.lock()()
	for _, other := range r.db.invoices {
		if other.Kind == inv.Kind && other.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	now := r.db.now()
	inv.ID = r.db.next("invoices")
	inv.CreatedAt, inv.UpdatedAt = now, now
	items := r.storeItems(inv.ID, inv.Items)
	inv.Items = items
	stored := *inv
	stored.Items = nil
	r.db.invoices[inv.ID] = stored
	return nil
}

func (r *InvoiceRepo) storeItems(invoiceID int64, items []entity.InvoiceItem) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, len(items))
	for i, it := range items {
		it.ID = r.db.next("invoice_items")
		it.InvoiceID = invoiceID
		it.ProductName = ""
		out[i] = it
	}
	r.db.invoiceItems[invoiceID] = out
	return append([]entity.InvoiceItem(nil), out...)
}

func (r *InvoiceRepo) hydrate(inv entity.Invoice) *entity.Invoice {
	if inv.CustomerID != nil {
		if c, ok := r.db.customers[*inv.CustomerID]; ok {
			inv.CustomerName = c.Name
		}
	}
	items := append([]entity.InvoiceItem(nil), r.db.invoiceItems[inv.ID]...)
	for i := range items {
		if items[i].ProductID != nil {
			if p, ok := r.db.products[*items[i].ProductID]; ok {
				items[i].ProductName = p.Name
			}
		}
	}
	inv.Items = items
	return &inv
}

func (r *InvoiceRepo) GetByID(_ context.Context, kind entity.InvoiceKind, id int64) (*entity.Invoice, error) {
	defer r.db.lock()()
	inv, ok := r.db.invoices[id]
	if !ok || inv.Kind != kind {
		return nil, nil
	}
	return r.hydrate(inv), nil
}

func (r *InvoiceRepo) UpdateHeader(_ context.Context, inv *entity.Invoice) error {
	defer r.db.lock()()
	cur, ok := r.db.invoices[inv.ID]
	if !ok || cur.Kind != inv.Kind {
		return domain.ErrNotFound
	}
	cur.CustomerID = inv.CustomerID
	cur.InvoiceDate = inv.InvoiceDate
	cur.PaymentDate = inv.PaymentDate
	cur.Notes = inv.Notes
	cur.TotalAmount = inv.TotalAmount
	cur.IsActive = inv.IsActive
	cur.UpdatedAt = r.db.now()
	r.db.invoices[inv.ID] = cur
	inv.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *InvoiceRepo) SetActive(_ context.Context, kind entity.InvoiceKind, id int64, active bool) error {
	defer r.db.lock()()
	cur, ok := r.db.invoices[id]
	if !ok || cur.Kind != kind {
		return domain.ErrNotFound
	}
	cur.IsActive = active
	cur.UpdatedAt = r.db.now()
	r.db.invoices[id] = cur
	return nil
}

func (r *InvoiceRepo) ReplaceItems(_ context.Context, kind entity.InvoiceKind, invoiceID int64, items []entity.InvoiceItem) error {
	defer r.db.lock()()
	cur, ok := r.db.invoices[invoiceID]
	if !ok || cur.Kind != kind {
		return domain.ErrNotFound
	}
	r.storeItems(invoiceID, items)
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, kind entity.InvoiceKind, id int64) error {
	defer r.db.lock()()
	cur, ok := r.db.invoices[id]
	if !ok || cur.Kind != kind {
		return domain.ErrNotFound
	}
	delete(r.db.invoices, id)
	delete(r.db.invoiceItems, id)
	return nil
}

func (r *InvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	defer r.db.lock()()
	search := strings.TrimSpace(f.Search)
	var out []*entity.Invoice
	for _, inv := range r.db.invoices {
		if inv.Kind != f.Kind {
			continue
		}
		if search != "" && !textmatch.Contains(inv.InvoiceNumber, search) {
			continue
		}
		out = append(out, r.hydrate(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if f.Desc {
			a, b = b, a
		}
		less, equal := compareInvoices(a, b, f.SortBy)
		if equal {
			return a.ID < b.ID
		}
		return less
	})
	return page(out, f.Limit, f.Offset), len(out), nil
}

func compareInvoices(a, b *entity.Invoice, sortBy string) (less, equal bool) {
	switch sortBy {
	case "invoice_number":
		return a.InvoiceNumber < b.InvoiceNumber, a.InvoiceNumber == b.InvoiceNumber
	case "total_amount":
		return a.TotalAmount.LessThan(b.TotalAmount), a.TotalAmount.Equal(b.TotalAmount)
	case "customer_name":
		return a.CustomerName < b.CustomerName, a.CustomerName == b.CustomerName
	case "invoice_date":
		at, bt := timeOrZero(a.InvoiceDate), timeOrZero(b.InvoiceDate)
		return at.Before(bt), at.Equal(bt)
	default:
		return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	}
}

func (r *InvoiceRepo) LastNumber(_ context.Context, kind entity.InvoiceKind) (string, error) {
	defer r.db.lock()()
	last := ""
	for _, inv := range r.db.invoices {
		if inv.Kind == kind && strings.HasPrefix(inv.InvoiceNumber, kind.Prefix()) && inv.InvoiceNumber > last {
			last = inv.InvoiceNumber
		}
	}
	return last, nil
}
