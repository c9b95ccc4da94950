package memory

import (
	"context"
	"sort"
	"time"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

// DiscountRepo documentos de descuento en memoria.
type DiscountRepo struct{ db *conn }

// NewDiscountRepository construye el repositorio.
func NewDiscountRepository(db *DB) *DiscountRepo { return &DiscountRepo{db: db.handle(false)} }

func (r *DiscountRepo) Create(_ context.Context, d *entity.DiscountDocument) error {
	defer r.db.lock()()
	for _, other := range r.db.discounts {
		if other.DocumentNumber == d.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	now := r.db.now()
	d.ID = r.db.next("discounts")
	d.CreatedAt, d.UpdatedAt = now, now
	d.Items = r.storeItems(d.ID, d.Items)
	stored := *d
	stored.Items = nil
	r.db.discounts[d.ID] = stored
	return nil
}

func (r *DiscountRepo) storeItems(docID int64, items []entity.DiscountItem) []entity.DiscountItem {
	out := make([]entity.DiscountItem, len(items))
	for i, it := range items {
		it.ID = r.db.next("discount_items")
		it.DocumentID = docID
		out[i] = it
	}
	r.db.discountItems[docID] = out
	return append([]entity.DiscountItem(nil), out...)
}

func (r *DiscountRepo) hydrate(d entity.DiscountDocument) *entity.DiscountDocument {
	d.Items = append([]entity.DiscountItem(nil), r.db.discountItems[d.ID]...)
	return &d
}

func (r *DiscountRepo) GetByID(_ context.Context, id int64) (*entity.DiscountDocument, error) {
	defer r.db.lock()()
	d, ok := r.db.discounts[id]
	if !ok {
		return nil, nil
	}
	return r.hydrate(d), nil
}

func (r *DiscountRepo) Update(_ context.Context, d *entity.DiscountDocument) error {
	defer r.db.lock()()
	cur, ok := r.db.discounts[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.db.discounts {
		if id != d.ID && other.DocumentNumber == d.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	stored := *d
	stored.Items = nil
	stored.CreatedAt = cur.CreatedAt
	stored.UpdatedAt = r.db.now()
	r.db.discounts[d.ID] = stored
	d.CreatedAt, d.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	return nil
}

func (r *DiscountRepo) ReplaceItems(_ context.Context, documentID int64, items []entity.DiscountItem) error {
	defer r.db.lock()()
	if _, ok := r.db.discounts[documentID]; !ok {
		return domain.ErrNotFound
	}
	r.storeItems(documentID, items)
	return nil
}

func (r *DiscountRepo) Delete(_ context.Context, id int64) error {
	defer r.db.lock()()
	if _, ok := r.db.discounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.discounts, id)
	delete(r.db.discountItems, id)
	return nil
}

func (r *DiscountRepo) List(_ context.Context, f repository.DiscountFilter) ([]*entity.DiscountDocument, error) {
	defer r.db.lock()()
	var out []*entity.DiscountDocument
	for _, d := range r.db.discounts {
		if f.Type != "" && d.Type != f.Type {
			continue
		}
		if f.EntityID != nil && !sameID(d.EntityID, f.EntityID) {
			continue
		}
		if f.ActiveOnly && !d.IsActive {
			continue
		}
		out = append(out, r.hydrate(d))
	}
	sortByDocumentDate(out)
	return out, nil
}

func sortByDocumentDate(docs []*entity.DiscountDocument) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].DocumentDate.Equal(docs[j].DocumentDate) {
			return docs[i].DocumentDate.After(docs[j].DocumentDate)
		}
		return docs[i].ID > docs[j].ID
	})
}

func (r *DiscountRepo) ActiveForProduct(_ context.Context, productID int64, at time.Time) ([]entity.AppliedDiscount, error) {
	defer r.db.lock()()
	var docs []*entity.DiscountDocument
	for _, d := range r.db.discounts {
		if d.Covers(at) {
			docs = append(docs, r.hydrate(d))
		}
	}
	sortByDocumentDate(docs)
	var out []entity.AppliedDiscount
	for _, d := range docs {
		for _, it := range d.Items {
			if it.ProductID != productID {
				continue
			}
			out = append(out, entity.AppliedDiscount{
				DocumentID:      d.ID,
				DocumentNumber:  d.DocumentNumber,
				DocumentDate:    d.DocumentDate,
				ProductID:       productID,
				DiscountPercent: it.DiscountPercent,
			})
		}
	}
	return out, nil
}
