package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
	"github.com/anbar/anbar-api/pkg/textmatch"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. code y barcode son únicos cuando no son nulos.
type ProductRepo struct{ db *conn }

// NewProductRepository construye el repositorio.
func NewProductRepository(db *DB) *ProductRepo { return &ProductRepo{db: db.handle(false)} }

func (r *ProductRepo) conflicts(p *entity.Product) bool {
	for id, other := range r.db.products {
		if id == p.ID {
			continue
		}
		if eqPtr(p.Code, other.Code) || eqPtr(p.Barcode, other.Barcode) {
			return true
		}
	}
	return false
}

func eqPtr(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.db.lock()()
	if r.conflicts(p) {
		return domain.ErrDuplicate
	}
	if p.CategoryID != nil {
		if _, ok := r.db.categories[*p.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	now := r.db.now()
	p.ID = r.db.next("products")
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.db.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.db.lock()()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.db.lock()()
	cur, ok := r.db.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.conflicts(p) {
		return domain.ErrDuplicate
	}
	if p.CategoryID != nil {
		if _, ok := r.db.categories[*p.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.db.now()
	r.db.products[p.ID] = *p
	return nil
}

// Delete borra el producto y su fila de almacén; las líneas de factura quedan sin producto.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	defer r.db.lock()()
	if _, ok := r.db.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.products, id)
	for sid, s := range r.db.stock {
		if s.ProductID == id {
			delete(r.db.stock, sid)
		}
	}
	for inv, items := range r.db.invoiceItems {
		for i := range items {
			if items[i].ProductID != nil && *items[i].ProductID == id {
				items[i].ProductID = nil
			}
		}
		r.db.invoiceItems[inv] = items
	}
	for doc, items := range r.db.discountItems {
		kept := items[:0]
		for _, it := range items {
			if it.ProductID != id {
				kept = append(kept, it)
			}
		}
		r.db.discountItems[doc] = kept
	}
	return nil
}

// sorted orden de listado: created_at DESC, id DESC.
func (r *ProductRepo) sorted() []*entity.Product {
	out := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	defer r.db.lock()()
	ids := map[int64]bool{}
	for _, id := range f.IDs {
		ids[id] = true
	}
	search := strings.TrimSpace(f.Search)
	var matched []*entity.Product
	for _, p := range r.sorted() {
		if f.CategoryID != nil && !sameID(p.CategoryID, f.CategoryID) {
			continue
		}
		if len(ids) > 0 && !ids[p.ID] {
			continue
		}
		if search != "" && !textmatch.Contains(p.Name, search) &&
			!textmatch.Contains(deref(p.Code), search) && !textmatch.Contains(deref(p.Barcode), search) {
			continue
		}
		matched = append(matched, p)
	}
	return page(matched, f.Limit, f.Offset), len(matched), nil
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	defer r.db.lock()()
	return r.sorted(), nil
}

func (r *ProductRepo) MoveToCategory(_ context.Context, ids []int64, categoryID *int64) (int64, error) {
	defer r.db.lock()()
	if categoryID != nil {
		if _, ok := r.db.categories[*categoryID]; !ok {
			return 0, domain.ErrNotFound
		}
	}
	var n int64
	now := r.db.now()
	for _, id := range ids {
		p, ok := r.db.products[id]
		if !ok {
			continue
		}
		if categoryID != nil {
			p.CategoryID = int64Ptr(*categoryID)
		} else {
			p.CategoryID = nil
		}
		p.UpdatedAt = now
		r.db.products[id] = p
		n++
	}
	return n, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo filas de almacén en memoria (una por producto).
type StockRepo struct{ db *conn }

// NewStockRepository construye el repositorio.
func NewStockRepository(db *DB) *StockRepo { return &StockRepo{db: db.handle(false)} }

func (r *StockRepo) Create(_ context.Context, productID int64, quantity decimal.Decimal) (*entity.Stock, error) {
	defer r.db.lock()()
	if _, ok := r.db.products[productID]; !ok {
		return nil, domain.ErrNotFound
	}
	for _, s := range r.db.stock {
		if s.ProductID == productID {
			return nil, domain.ErrDuplicate
		}
	}
	s := entity.Stock{ID: r.db.next("stock"), ProductID: productID, Quantity: quantity, UpdatedAt: r.db.now()}
	r.db.stock[s.ID] = s
	return &s, nil
}

func (r *StockRepo) withProduct(s entity.Stock) *entity.Stock {
	if p, ok := r.db.products[s.ProductID]; ok {
		s.Product = &p
	}
	return &s
}

func (r *StockRepo) GetByID(_ context.Context, id int64) (*entity.Stock, error) {
	defer r.db.lock()()
	s, ok := r.db.stock[id]
	if !ok {
		return nil, nil
	}
	return r.withProduct(s), nil
}

func (r *StockRepo) GetByProduct(_ context.Context, productID int64) (*entity.Stock, error) {
	defer r.db.lock()()
	for _, s := range r.db.stock {
		if s.ProductID == productID {
			return r.withProduct(s), nil
		}
	}
	return nil, nil
}

func (r *StockRepo) List(_ context.Context) ([]*entity.Stock, error) {
	defer r.db.lock()()
	out := make([]*entity.Stock, 0, len(r.db.stock))
	for _, s := range r.db.stock {
		out = append(out, r.withProduct(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *StockRepo) SetQuantity(_ context.Context, id int64, quantity decimal.Decimal) error {
	defer r.db.lock()()
	s, ok := r.db.stock[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Quantity = quantity
	s.UpdatedAt = r.db.now()
	r.db.stock[id] = s
	return nil
}

func (r *StockRepo) AddQuantity(_ context.Context, productID int64, delta decimal.Decimal) error {
	defer r.db.lock()()
	if _, ok := r.db.products[productID]; !ok {
		return domain.ErrNotFound
	}
	for id, s := range r.db.stock {
		if s.ProductID == productID {
			s.Quantity = s.Quantity.Add(delta)
			s.UpdatedAt = r.db.now()
			r.db.stock[id] = s
			return nil
		}
	}
	s := entity.Stock{ID: r.db.next("stock"), ProductID: productID, Quantity: delta, UpdatedAt: r.db.now()}
	r.db.stock[s.ID] = s
	return nil
}
