// Package memory implementación en memoria de los repositorios. Se usa con
// STORAGE_DRIVER=memory (demos, desarrollo sin base) y como doble en tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// DB estado compartido por todos los repositorios en memoria.
type DB struct {
	mu   sync.Mutex
	txMu sync.Mutex
	now  func() time.Time
	state
}

type state struct {
	seq           map[string]int64
	categories    map[int64]entity.Category
	products      map[int64]entity.Product
	stock         map[int64]entity.Stock
	customers     map[int64]entity.Customer
	invoices      map[int64]entity.Invoice
	invoiceItems  map[int64][]entity.InvoiceItem
	discounts     map[int64]entity.DiscountDocument
	discountItems map[int64][]entity.DiscountItem
	logs          []entity.ActivityLog
	users         map[int64]entity.User
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{now: time.Now, state: newState()}
}

// SetClock fija el reloj (tests).
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	db.now = now
	db.mu.Unlock()
}

func newState() state {
	return state{
		seq:           map[string]int64{},
		categories:    map[int64]entity.Category{},
		products:      map[int64]entity.Product{},
		stock:         map[int64]entity.Stock{},
		customers:     map[int64]entity.Customer{},
		invoices:      map[int64]entity.Invoice{},
		invoiceItems:  map[int64][]entity.InvoiceItem{},
		discounts:     map[int64]entity.DiscountDocument{},
		discountItems: map[int64][]entity.DiscountItem{},
		users:         map[int64]entity.User{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.invoiceItems {
		c.invoiceItems[k] = append([]entity.InvoiceItem(nil), v...)
	}
	for k, v := range s.discounts {
		c.discounts[k] = v
	}
	for k, v := range s.discountItems {
		c.discountItems[k] = append([]entity.DiscountItem(nil), v...)
	}
	c.logs = append([]entity.ActivityLog(nil), s.logs...)
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

func (db *DB) next(name string) int64 {
	db.seq[name]++
	return db.seq[name]
}

// Repos repositorios sobre esta base. Cada operación espera a que termine
// la transacción en curso.
func (db *DB) Repos() ports.Repos {
	return db.repos(db.handle(false))
}

func (db *DB) repos(c *conn) ports.Repos {
	return ports.Repos{
		Categories: &CategoryRepo{db: c},
		Products:   &ProductRepo{db: c},
		Stock:      &StockRepo{db: c},
		Customers:  &CustomerRepo{db: c},
		Invoices:   &InvoiceRepo{db: c},
		Discounts:  &DiscountRepo{db: c},
		Logs:       &ActivityLogRepo{db: c},
	}
}

// conn acceso a la base desde un repositorio. Dentro de una transacción
// (inTx) txMu ya está tomado por el runner.
type conn struct {
	*DB
	inTx bool
}

func (db *DB) handle(inTx bool) *conn { return &conn{DB: db, inTx: inTx} }

// lock serializa la operación con las transacciones y devuelve el unlock.
func (c *conn) lock() func() {
	if !c.inTx {
		c.txMu.Lock()
	}
	c.mu.Lock()
	return func() {
		c.mu.Unlock()
		if !c.inTx {
			c.txMu.Unlock()
		}
	}
}

// TxRunner serializa las transacciones y restaura el estado si fn falla.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn de forma atómica. Mientras corre, las escrituras fuera de
// la transacción esperan en txMu, así el rollback solo descarta lo de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()

	r.db.mu.Lock()
	backup := r.db.state.clone()
	r.db.mu.Unlock()

	if err := fn(r.db.repos(r.db.handle(true))); err != nil {
		r.db.mu.Lock()
		r.db.state = backup
		r.db.mu.Unlock()
		return err
	}
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
