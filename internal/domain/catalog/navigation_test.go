package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/catalog"
)

func TestNavigator_ClicEnCarpetaEntra(t *testing.T) {
	nav := catalog.Navigator{Index: catalog.NewIndex(sampleCategories())}

	next, action, err := nav.Apply(id(1), catalog.NavEvent{Kind: catalog.EventRowClick, ItemID: "cat_2"})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, int64(2), *next)
	assert.Equal(t, catalog.ActionNavigate, action.Kind)
}

func TestNavigator_ClicEnAncestroSalePorEncima(t *testing.T) {
	nav := catalog.Navigator{Index: catalog.NewIndex(sampleCategories())}

	next, _, err := nav.Apply(id(3), catalog.NavEvent{Kind: catalog.EventRowClick, ItemID: "cat_2", IsParent: true})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, int64(1), *next)

	next, _, err = nav.Apply(id(3), catalog.NavEvent{Kind: catalog.EventRowClick, ItemID: "cat_1", IsParent: true})
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNavigator_MigaEntraEnEseNivel(t *testing.T) {
	nav := catalog.Navigator{Index: catalog.NewIndex(sampleCategories())}

	next, _, err := nav.Apply(id(3), catalog.NavEvent{Kind: catalog.EventBreadcrumbClick, CrumbID: id(2)})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, int64(2), *next)

	next, _, err = nav.Apply(id(3), catalog.NavEvent{Kind: catalog.EventBreadcrumbClick})
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNavigator_Subir(t *testing.T) {
	nav := catalog.Navigator{Index: catalog.NewIndex(sampleCategories())}

	next, _, err := nav.Apply(id(3), catalog.NavEvent{Kind: catalog.EventUp})
	require.NoError(t, err)
	assert.Equal(t, int64(2), *next)

	next, _, err = nav.Apply(id(1), catalog.NavEvent{Kind: catalog.EventUp})
	require.NoError(t, err)
	assert.Nil(t, next)

	next, _, err = nav.Apply(nil, catalog.NavEvent{Kind: catalog.EventUp})
	require.NoError(t, err)
	assert.Nil(t, next)

	next, _, err = nav.Apply(id(404), catalog.NavEvent{Kind: catalog.EventUp})
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNavigator_ClicEnProducto(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	next, action, err := catalog.Navigator{Index: ix}.Apply(id(1), catalog.NavEvent{Kind: catalog.EventRowClick, ItemID: "prod_9"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), *next)
	assert.Equal(t, catalog.ActionEditProduct, action.Kind)
	assert.Equal(t, int64(9), action.ProductID)

	_, action, err = catalog.Navigator{Index: ix, PickerMode: true}.Apply(id(1), catalog.NavEvent{Kind: catalog.EventRowClick, ItemID: "prod_9"})
	require.NoError(t, err)
	assert.Equal(t, catalog.ActionSelectProduct, action.Kind)
}

func TestNavigator_Errores(t *testing.T) {
	nav := catalog.Navigator{Index: catalog.NewIndex(sampleCategories())}

	_, _, err := nav.Apply(nil, catalog.NavEvent{Kind: catalog.EventRowClick, ItemID: "cat_404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = nav.Apply(nil, catalog.NavEvent{Kind: catalog.EventRowClick, ItemID: "basura"})
	assert.ErrorIs(t, err, domain.ErrInvalidItemID)

	_, _, err = nav.Apply(nil, catalog.NavEvent{Kind: "teleport"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNavigator_LocalizarAbreLaCarpetaContenedora(t *testing.T) {
	located := map[int64]*int64{10: id(3), 11: nil}
	nav := catalog.Navigator{
		Index: catalog.NewIndex(sampleCategories()),
		Products: func(pid int64) (*int64, bool) {
			parent, ok := located[pid]
			return parent, ok
		},
	}

	next, action, err := nav.Apply(nil, catalog.NavEvent{Kind: catalog.EventLocate, ItemID: "prod_10"})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, int64(3), *next)
	assert.Equal(t, catalog.ActionNavigate, action.Kind)
	assert.True(t, action.ClearSearch)

	next, _, err = nav.Apply(id(3), catalog.NavEvent{Kind: catalog.EventLocate, ItemID: "prod_11"})
	require.NoError(t, err)
	assert.Nil(t, next)

	next, action, err = nav.Apply(nil, catalog.NavEvent{Kind: catalog.EventLocate, ItemID: "cat_3"})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, int64(2), *next)
	assert.True(t, action.ClearSearch)

	next, _, err = nav.Apply(id(4), catalog.NavEvent{Kind: catalog.EventLocate, ItemID: "cat_1"})
	require.NoError(t, err)
	assert.Nil(t, next)

	_, _, err = nav.Apply(nil, catalog.NavEvent{Kind: catalog.EventLocate, ItemID: "prod_99"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = nav.Apply(nil, catalog.NavEvent{Kind: catalog.EventLocate, ItemID: "cat_99"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
