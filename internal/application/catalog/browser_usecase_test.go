package catalog_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
)

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func gridIDs(items []dto.GridItemResponse) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemID
	}
	return out
}

func TestBrowser_GridDeSubcarpeta(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a)
	p := f.product(t, "Tornillo", &b)
	f.product(t, "Suelto", nil)

	uc := appcatalog.NewBrowserUseCase(f.store)
	res, err := uc.Grid(context.Background(), dto.GridRequest{CategoryID: &b})
	require.NoError(t, err)

	assert.Equal(t, []string{"cat_" + itoa(a), "cat_" + itoa(b), "prod_" + itoa(p)}, gridIDs(res.Items))
	assert.True(t, res.Items[0].IsParent)
	assert.Equal(t, "product", res.Items[2].Type)
	require.Len(t, res.Breadcrumbs, 3)
	assert.Nil(t, res.Breadcrumbs[0].ID)
}

func TestBrowser_GridConFiltros(t *testing.T) {
	f := newFixture(t)
	keep := f.product(t, "Taladro", nil)
	drop := f.product(t, "Martillo", nil)
	uc := appcatalog.NewBrowserUseCase(f.store)

	filters := `[{"component":"product","condition":"in","value":[{"id":` + itoa(keep) + `}]}]`
	res, err := uc.Grid(context.Background(), dto.GridRequest{Filters: filters})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod_" + itoa(keep)}, gridIDs(res.Items))
	assert.NotContains(t, gridIDs(res.Items), "prod_"+itoa(drop))

	_, err = uc.Grid(context.Background(), dto.GridRequest{Filters: `[{"component":"x","condition":"equals"}]`})
	assert.ErrorIs(t, err, domain.ErrInvalidRule)
}

func TestBrowser_TreeYBreadcrumbs(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a)
	uc := appcatalog.NewBrowserUseCase(f.store)
	ctx := context.Background()

	tree, err := uc.Tree(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, b, tree[0].Children[0].ID)

	_, err = uc.Tree(ctx, ptr(404))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	crumbs, err := uc.Breadcrumbs(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "B", crumbs[len(crumbs)-1].Name)

	_, err = uc.Breadcrumbs(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrowser_Navigate(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a)
	p := f.product(t, "P", &b)
	uc := appcatalog.NewBrowserUseCase(f.store)
	ctx := context.Background()

	res, err := uc.Navigate(ctx, dto.NavigateRequest{CategoryID: &b, Event: "row_click", ItemID: "cat_" + itoa(b), IsParent: true})
	require.NoError(t, err)
	require.NotNil(t, res.CategoryID)
	assert.Equal(t, a, *res.CategoryID)
	assert.Equal(t, "navigate", res.Action)

	res, err = uc.Navigate(ctx, dto.NavigateRequest{CategoryID: &b, Event: "row_click", ItemID: "prod_" + itoa(p), PickerMode: true})
	require.NoError(t, err)
	assert.Equal(t, "select_product", res.Action)
	assert.Equal(t, p, *res.ProductID)

	_, err = uc.Navigate(ctx, dto.NavigateRequest{Event: "row_click", ItemID: "prod_999"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, err = uc.Navigate(ctx, dto.NavigateRequest{Event: "locate", ItemID: "prod_" + itoa(p)})
	require.NoError(t, err)
	require.NotNil(t, res.CategoryID)
	assert.Equal(t, b, *res.CategoryID)
	assert.True(t, res.ClearSearch)
	require.Len(t, res.Breadcrumbs, 3)
}

func TestBrowser_MoveTargetsExcluyeDescendientes(t *testing.T) {
	f := newFixture(t)
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a)
	f.category(t, "C", &b)
	d := f.category(t, "D", nil)
	uc := appcatalog.NewBrowserUseCase(f.store)

	targets, err := uc.MoveTargets(context.Background(), []string{"cat_" + itoa(b)})
	require.NoError(t, err)

	var ids []int64
	for _, tgt := range targets {
		ids = append(ids, tgt.ID)
	}
	assert.ElementsMatch(t, []int64{a, d}, ids)
	assert.Equal(t, "A", targets[0].Path)
}
