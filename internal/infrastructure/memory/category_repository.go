package memory

import (
	"context"
	"sort"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ db *conn }

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(db *DB) *CategoryRepo { return &CategoryRepo{db: db.handle(false)} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	defer r.db.lock()()
	if c.ParentID != nil {
		if _, ok := r.db.categories[*c.ParentID]; !ok {
			return domain.ErrNotFound
		}
	}
	now := r.db.now()
	c.ID = r.db.next("categories")
	c.CreatedAt, c.UpdatedAt = now, now
	c.ProductCount = 0
	r.db.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	defer r.db.lock()()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	c.ProductCount = r.countProducts(id)
	return &c, nil
}

func (r *CategoryRepo) countProducts(id int64) int {
	n := 0
	for _, p := range r.db.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			n++
		}
	}
	return n
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	defer r.db.lock()()
	cur, ok := r.db.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = c.Name
	cur.ParentID = c.ParentID
	cur.UpdatedAt = r.db.now()
	r.db.categories[c.ID] = cur
	c.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *CategoryRepo) UpdateParent(_ context.Context, id int64, parentID *int64) error {
	defer r.db.lock()()
	cur, ok := r.db.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	if parentID != nil {
		if _, ok := r.db.categories[*parentID]; !ok {
			return domain.ErrNotFound
		}
		parentID = int64Ptr(*parentID)
	}
	cur.ParentID = parentID
	cur.UpdatedAt = r.db.now()
	r.db.categories[id] = cur
	return nil
}

// ListAll ordena por nombre y luego por id.
func (r *CategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	defer r.db.lock()()
	out := make([]*entity.Category, 0, len(r.db.categories))
	for id, c := range r.db.categories {
		c := c
		c.ProductCount = r.countProducts(id)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete deja en raíz los productos y subcategorías de la categoría borrada.
func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	defer r.db.lock()()
	if _, ok := r.db.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.categories, id)
	for pid, p := range r.db.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.db.products[pid] = p
		}
	}
	for cid, c := range r.db.categories {
		if c.ParentID != nil && *c.ParentID == id {
			c.ParentID = nil
			r.db.categories[cid] = c
		}
	}
	return nil
}
