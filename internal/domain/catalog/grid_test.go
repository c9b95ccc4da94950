package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/domain/catalog"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

func itemIDs(items []catalog.GridItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemID()
	}
	return out
}

func TestCompose_OrdenAncestrosCategoriasProductos(t *testing.T) {
	cats := []*entity.Category{
		cat(1, "Raíz", nil),
		cat(10, "X", id(1)),
		cat(11, "Y", id(1)),
	}
	products := []*entity.Product{
		prod(100, "P1", id(1)),
		prod(200, "fuera", id(10)),
		prod(101, "P2", id(1)),
	}

	items := catalog.Compose(catalog.NewIndex(cats), products, catalog.GridQuery{CategoryID: id(1)})

	assert.Equal(t, []string{"cat_1", "cat_10", "cat_11", "prod_100", "prod_101"}, itemIDs(items))
	assert.True(t, items[0].IsParent)
	assert.False(t, items[1].IsParent)
	assert.Equal(t, catalog.KindProduct, items[3].Kind)
}

func TestCompose_RaizSinAncestros(t *testing.T) {
	products := []*entity.Product{prod(1, "suelto", nil), prod(2, "en A", id(1))}

	items := catalog.Compose(catalog.NewIndex(sampleCategories()), products, catalog.GridQuery{})

	assert.Equal(t, []string{"cat_1", "cat_4", "prod_1"}, itemIDs(items))
}

func TestCompose_AncestrosCompletosEnSubcarpeta(t *testing.T) {
	items := catalog.Compose(catalog.NewIndex(sampleCategories()), nil, catalog.GridQuery{CategoryID: id(3)})

	require.Len(t, items, 3)
	for _, it := range items {
		assert.True(t, it.IsParent)
	}
	assert.Equal(t, []string{"cat_1", "cat_2", "cat_3"}, itemIDs(items))
}

func TestCompose_BusquedaIgnoraCarpeta(t *testing.T) {
	cats := []*entity.Category{cat(5, "Cinco", nil), cat(7, "Siete", nil)}
	products := []*entity.Product{
		prod(1, "xxABCxx", id(7)),
		prod(2, "otro", id(5)),
	}

	items := catalog.Compose(catalog.NewIndex(cats), products, catalog.GridQuery{CategoryID: id(5), Search: "abc"})

	assert.Equal(t, []string{"prod_1"}, itemIDs(items))
}

func TestCompose_BusquedaPorCodigoYBarcodeYCategoria(t *testing.T) {
	p1 := prod(1, "Tornillo", nil)
	p1.Code = str("TR-900")
	p2 := prod(2, "Tuerca", nil)
	p2.Barcode = str("4800900")
	cats := []*entity.Category{cat(1, "Ferretería 900", nil)}

	items := catalog.Compose(catalog.NewIndex(cats), []*entity.Product{p1, p2}, catalog.GridQuery{Search: " 900 "})

	assert.Equal(t, []string{"cat_1", "prod_1", "prod_2"}, itemIDs(items))
}

func TestCompose_BusquedaNoAplicaFiltros(t *testing.T) {
	rule, err := catalog.ParseRule("brand", catalog.CondEquals, []byte(`"Bosch"`))
	require.NoError(t, err)
	products := []*entity.Product{prod(1, "taladro", nil)}

	items := catalog.Compose(catalog.NewIndex(nil), products, catalog.GridQuery{Search: "tal", Rules: []catalog.Rule{rule}})
	assert.Len(t, items, 1)

	items = catalog.Compose(catalog.NewIndex(nil), products, catalog.GridQuery{Rules: []catalog.Rule{rule}})
	assert.Empty(t, items)
}

func TestCompose_FiltrosSobreProductosDeLaCarpeta(t *testing.T) {
	p1 := prod(1, "a", nil)
	p1.Brand = str("Bosch")
	p2 := prod(2, "b", nil)
	p2.Brand = str("Makita")
	rule, err := catalog.ParseRule("brand", catalog.CondEquals, []byte(`"bosch"`))
	require.NoError(t, err)

	items := catalog.Compose(catalog.NewIndex(nil), []*entity.Product{p1, p2}, catalog.GridQuery{Rules: []catalog.Rule{rule}})

	assert.Equal(t, []string{"prod_1"}, itemIDs(items))
}

func TestCompose_BusquedaEnBlancoMuestraLaCarpeta(t *testing.T) {
	cats := []*entity.Category{cat(5, "Cinco", nil)}
	products := []*entity.Product{prod(1, "a", id(5)), prod(2, "b", nil)}

	items := catalog.Compose(catalog.NewIndex(cats), products, catalog.GridQuery{Search: "   "})

	assert.Equal(t, []string{"cat_5", "prod_2"}, itemIDs(items))
}
