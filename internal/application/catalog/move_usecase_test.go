package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/pkg/logger"
)

func TestMove_ProductosQuedanEnDestino(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	src := f.category(t, "Origen", nil)
	dst := f.category(t, "Destino", nil)
	p1 := f.product(t, "P1", &src)
	p2 := f.product(t, "P2", nil)
	p3 := f.product(t, "P3", &src)

	uc := appcatalog.NewMoveUseCase(f.store, f.tx, logger.Nop(), nil)
	res, err := uc.Move(ctx, dto.MoveItemsRequest{
		ItemIDs:          []string{"prod_" + itoa(p1), "prod_" + itoa(p2)},
		TargetCategoryID: &dst,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{p1, p2}, res.MovedProducts)
	assert.Empty(t, res.Rejected)

	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	for _, p := range snap.Products {
		switch p.ID {
		case p1, p2:
			require.NotNil(t, p.CategoryID)
			assert.Equal(t, dst, *p.CategoryID)
		case p3:
			assert.Equal(t, src, *p.CategoryID)
		}
	}
}

func TestMove_AutoMovimientoSinEscrituras(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "C", nil)
	metrics := &countingMetrics{}

	uc := appcatalog.NewMoveUseCase(f.store, f.tx, logger.Nop(), metrics)
	res, err := uc.Move(context.Background(), dto.MoveItemsRequest{ItemIDs: []string{"cat_" + itoa(c)}, TargetCategoryID: &c})
	require.NoError(t, err)

	assert.Equal(t, 0, f.tx.runs)
	assert.Empty(t, res.MovedCategories)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "self_move", res.Rejected[0].Reason)
	assert.Equal(t, []string{"self_move"}, metrics.rejected)
}

func TestMove_CicloRechazadoRestoAplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a)
	c := f.category(t, "C", &b)
	d := f.category(t, "D", nil)

	uc := appcatalog.NewMoveUseCase(f.store, f.tx, logger.Nop(), nil)
	res, err := uc.Move(ctx, dto.MoveItemsRequest{
		ItemIDs:          []string{"cat_" + itoa(a), "cat_" + itoa(d)},
		TargetCategoryID: &c,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{d}, res.MovedCategories)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, dto.MoveRejection{CategoryID: a, Reason: "cycle"}, res.Rejected[0])

	got, err := f.repos.Categories.GetByID(ctx, a)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	got, err = f.repos.Categories.GetByID(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, c, *got.ParentID)
}

func TestMove_DestinoInexistente(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", nil)

	uc := appcatalog.NewMoveUseCase(f.store, f.tx, logger.Nop(), nil)
	_, err := uc.Move(context.Background(), dto.MoveItemsRequest{ItemIDs: []string{"prod_" + itoa(p)}, TargetCategoryID: ptr(999)})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.tx.runs)
}

func TestMove_ARaiz(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a)
	p := f.product(t, "P", &b)

	uc := appcatalog.NewMoveUseCase(f.store, f.tx, logger.Nop(), nil)
	_, err := uc.Move(ctx, dto.MoveItemsRequest{ItemIDs: []string{"cat_" + itoa(b), "prod_" + itoa(p)}})
	require.NoError(t, err)

	got, err := f.repos.Categories.GetByID(ctx, b)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	prod, err := f.repos.Products.GetByID(ctx, p)
	require.NoError(t, err)
	assert.Nil(t, prod.CategoryID)
}

func TestMove_ErrorDeTransaccionInvalidaIgual(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P", nil)
	ctx := context.Background()
	before, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	f.tx.fail = errors.New("db caída")

	uc := appcatalog.NewMoveUseCase(f.store, f.tx, logger.Nop(), nil)
	_, err = uc.Move(ctx, dto.MoveItemsRequest{ItemIDs: []string{"prod_" + itoa(p)}})
	require.Error(t, err)

	after, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotSame(t, before, after)
}

func TestMove_IdentificadoresInvalidos(t *testing.T) {
	f := newFixture(t)
	uc := appcatalog.NewMoveUseCase(f.store, f.tx, logger.Nop(), nil)

	_, err := uc.Move(context.Background(), dto.MoveItemsRequest{ItemIDs: []string{"foo_1"}})
	assert.ErrorIs(t, err, domain.ErrInvalidItemID)

	_, err = uc.Move(context.Background(), dto.MoveItemsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
