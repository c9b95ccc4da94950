package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	db    *memory.DB
	repos ports.Repos
	store *appcatalog.Store
	tx    *spyTx
}

// spyTx cuenta las transacciones y puede forzar un error.
type spyTx struct {
	inner ports.TxRunner
	runs  int
	fail  error
}

func (s *spyTx) Run(ctx context.Context, fn func(ports.Repos) error) error {
	s.runs++
	if s.fail != nil {
		return s.fail
	}
	return s.inner.Run(ctx, fn)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.NewDB()
	repos := db.Repos()
	return &fixture{
		db:    db,
		repos: repos,
		store: appcatalog.NewStore(repos.Categories, repos.Products, nil, nil),
		tx:    &spyTx{inner: memory.NewTxRunner(db)},
	}
}

func (f *fixture) category(t *testing.T, name string, parent *int64) int64 {
	t.Helper()
	c := &entity.Category{Name: name, ParentID: parent}
	require.NoError(t, f.repos.Categories.Create(context.Background(), c))
	f.store.Invalidate()
	return c.ID
}

func (f *fixture) product(t *testing.T, name string, category *int64) int64 {
	t.Helper()
	p := &entity.Product{Name: name, CategoryID: category, Unit: entity.DefaultUnit, SalePrice: decimal.Zero, PurchasePrice: decimal.Zero, IsActive: true}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	f.store.Invalidate()
	return p.ID
}

func ptr(v int64) *int64 { return &v }
