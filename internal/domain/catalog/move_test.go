package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/catalog"
)

func TestParseItemID(t *testing.T) {
	ref, err := catalog.ParseItemID("prod_12")
	require.NoError(t, err)
	assert.Equal(t, catalog.ItemRef{Kind: catalog.KindProduct, ID: 12}, ref)

	ref, err = catalog.ParseItemID("cat_3")
	require.NoError(t, err)
	assert.Equal(t, catalog.ItemRef{Kind: catalog.KindCategory, ID: 3}, ref)

	for _, bad := range []string{"", "12", "prod_", "cat_x", "prod_-1", "item_4"} {
		_, err := catalog.ParseItemID(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidItemID, bad)
	}
}

func TestPlanMove_RechazaCicloHaciaDescendiente(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	plan, err := catalog.PlanMove(ix, []string{"cat_1"}, id(3))
	require.NoError(t, err)
	require.Len(t, plan.Categories, 1)
	assert.Equal(t, catalog.RejectCycle, plan.Categories[0].Reason)
	assert.True(t, plan.Empty())
	assert.ErrorIs(t, catalog.ValidateReparent(ix, 1, id(3)), domain.ErrCycle)
}

func TestPlanMove_AutoMovimientoNoHaceNada(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	plan, err := catalog.PlanMove(ix, []string{"cat_5"}, id(5))
	require.NoError(t, err)
	assert.Equal(t, catalog.RejectSelfMove, plan.Categories[0].Reason)
	assert.Empty(t, plan.Accepted())
	assert.True(t, plan.Empty())
}

func TestPlanMove_MezclaProductosYCategorias(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	plan, err := catalog.PlanMove(ix, []string{"prod_1", "cat_4", "prod_2", "cat_2", "prod_1", "cat_77"}, id(5))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, plan.ProductIDs)
	assert.Equal(t, []int64{4, 2}, plan.Accepted())
	require.Len(t, plan.Rejected(), 1)
	assert.Equal(t, catalog.CategoryMove{CategoryID: 77, Reason: catalog.RejectNotFound}, plan.Rejected()[0])
	assert.Equal(t, int64(5), *plan.Target)
}

func TestPlanMove_ARaizSiempreValido(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	plan, err := catalog.PlanMove(ix, []string{"cat_3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, plan.Accepted())
	assert.NoError(t, catalog.ValidateReparent(ix, 3, nil))
}

func TestPlanMove_IDInvalidoAbortaTodo(t *testing.T) {
	_, err := catalog.PlanMove(catalog.NewIndex(nil), []string{"prod_1", "x_2"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidItemID)
}
