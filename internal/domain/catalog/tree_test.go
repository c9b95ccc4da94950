package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/domain/catalog"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

func names(cs []*entity.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestTree_RaizConHijosRecursivos(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	tree := ix.Tree(nil)
	require.Len(t, tree, 2)
	assert.Equal(t, "A", tree[0].Category.Name)
	assert.Equal(t, "D", tree[1].Category.Name)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "B", tree[0].Children[0].Category.Name)
	assert.Equal(t, "E", tree[0].Children[1].Category.Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "C", tree[0].Children[0].Children[0].Category.Name)
	assert.Empty(t, tree[1].Children)
}

func TestTree_SubarbolDeUnaCarpeta(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	tree := ix.Tree(id(2))
	require.Len(t, tree, 1)
	assert.Equal(t, "C", tree[0].Category.Name)
}

func TestTree_CicloEnDatosNoCuelga(t *testing.T) {
	ix := catalog.NewIndex([]*entity.Category{
		cat(1, "X", id(2)),
		cat(2, "Y", id(1)),
	})

	tree := ix.Tree(id(1))
	require.Len(t, tree, 1)
	assert.Equal(t, "Y", tree[0].Category.Name)
	assert.Empty(t, tree[0].Children)
}

func TestAncestorChain_OrdenRaizPrimero(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	assert.Equal(t, []string{"A", "B", "C"}, names(ix.AncestorChain(3)))
	assert.Equal(t, []string{"D"}, names(ix.AncestorChain(4)))
}

func TestAncestorChain_PadreInexistenteTrunca(t *testing.T) {
	ix := catalog.NewIndex([]*entity.Category{
		cat(2, "B", id(99)),
		cat(3, "C", id(2)),
	})

	assert.Equal(t, []string{"B", "C"}, names(ix.AncestorChain(3)))
	assert.Empty(t, ix.AncestorChain(42))
}

func TestIsDescendant(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	assert.True(t, ix.IsDescendant(3, 1))
	assert.True(t, ix.IsDescendant(2, 1))
	assert.False(t, ix.IsDescendant(1, 3))
	assert.False(t, ix.IsDescendant(1, 1))
	assert.False(t, ix.IsDescendant(4, 1))
	assert.False(t, ix.IsDescendant(99, 1))
}

func TestPath(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	assert.Equal(t, "A > B > C", ix.Path(3))
	assert.Equal(t, "", ix.Path(99))
}

func TestBreadcrumbs(t *testing.T) {
	ix := catalog.NewIndex(sampleCategories())

	crumbs := ix.Breadcrumbs(id(3))
	require.Len(t, crumbs, 4)
	assert.Nil(t, crumbs[0].ID)
	assert.Equal(t, catalog.HomeCrumbName, crumbs[0].Name)
	assert.Equal(t, int64(1), *crumbs[1].ID)
	assert.Equal(t, "C", crumbs[3].Name)

	assert.Len(t, ix.Breadcrumbs(nil), 1)
}

func TestNewIndex_IdDuplicadoGanaPrimero(t *testing.T) {
	ix := catalog.NewIndex([]*entity.Category{cat(1, "primero", nil), cat(1, "segundo", nil), nil})

	c, ok := ix.Get(1)
	require.True(t, ok)
	assert.Equal(t, "primero", c.Name)
	assert.Equal(t, 1, ix.Len())
}
