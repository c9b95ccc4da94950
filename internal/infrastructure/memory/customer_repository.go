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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo compradores y proveedores en memoria.
type CustomerRepo struct{ db *conn }

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(db *DB) *CustomerRepo { return &CustomerRepo{db: db.handle(false)} }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.db.lock()()
	for _, other := range r.db.customers {
		if eqPtr(c.Code, other.Code) {
			return domain.ErrDuplicate
		}
	}
	now := r.db.now()
	c.ID = r.db.next("customers")
	c.CreatedAt, c.UpdatedAt = now, now
	r.db.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	defer r.db.lock()()
	c, ok := r.db.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.db.lock()()
	cur, ok := r.db.customers[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.db.customers {
		if id != c.ID && eqPtr(c.Code, other.Code) {
			return domain.ErrDuplicate
		}
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.db.now()
	r.db.customers[c.ID] = *c
	return nil
}

// Delete borra la contraparte; sus facturas quedan sin cliente.
func (r *CustomerRepo) Delete(_ context.Context, id int64) error {
	defer r.db.lock()()
	if _, ok := r.db.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.customers, id)
	for iid, inv := range r.db.invoices {
		if inv.CustomerID != nil && *inv.CustomerID == id {
			inv.CustomerID = nil
			r.db.invoices[iid] = inv
		}
	}
	return nil
}

func (r *CustomerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	defer r.db.lock()()
	search := strings.TrimSpace(f.Search)
	var out []*entity.Customer
	for _, c := range r.db.customers {
		c := c
		if f.Type != "" && c.Type != f.Type && c.Type != entity.CustomerBoth {
			continue
		}
		if search != "" && !textmatch.Contains(c.Name, search) &&
			!textmatch.Contains(deref(c.Code), search) && !textmatch.Contains(deref(c.Phone), search) {
			continue
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), len(out), nil
}
