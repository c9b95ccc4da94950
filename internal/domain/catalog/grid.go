package catalog

import (
	"strconv"
	"strings"

	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/pkg/textmatch"
)

// ItemKind tipo de fila de la grilla.
type ItemKind string

const (
	KindCategory ItemKind = "category"
	KindProduct  ItemKind = "product"
)

const (
	categoryPrefix = "cat_"
	productPrefix  = "prod_"
)

// GridItem fila de la grilla: una categoría o un producto.
// IsParent marca las filas de ancestros insertadas al entrar en una carpeta.
type GridItem struct {
	Kind     ItemKind
	Category *entity.Category
	Product  *entity.Product
	IsParent bool
}

// ItemID identificador de selección ("cat_<id>" o "prod_<id>").
func (g GridItem) ItemID() string {
	if g.Kind == KindCategory {
		return FormatItemID(KindCategory, g.Category.ID)
	}
	return FormatItemID(KindProduct, g.Product.ID)
}

// FormatItemID construye el identificador de selección.
func FormatItemID(kind ItemKind, id int64) string {
	if kind == KindCategory {
		return categoryPrefix + strconv.FormatInt(id, 10)
	}
	return productPrefix + strconv.FormatInt(id, 10)
}

// GridQuery estado de la vista que determina la grilla.
type GridQuery struct {
	CategoryID *int64 // carpeta seleccionada; nil = raíz
	Search     string
	Rules      []Rule
}

// Compose arma la grilla: ancestros, categorías y productos, en ese orden
// y sin reordenar. Con búsqueda activa ignora la carpeta y los filtros.
func Compose(ix *Index, products []*entity.Product, q GridQuery) []GridItem {
	if term := strings.TrimSpace(q.Search); term != "" {
		return search(ix, products, term)
	}

	var items []GridItem
	if q.CategoryID != nil {
		for _, c := range ix.AncestorChain(*q.CategoryID) {
			items = append(items, GridItem{Kind: KindCategory, Category: c, IsParent: true})
		}
	}
	for _, c := range ix.Children(q.CategoryID) {
		items = append(items, GridItem{Kind: KindCategory, Category: c})
	}
	for _, p := range products {
		if p == nil || !sameParent(p.CategoryID, q.CategoryID) {
			continue
		}
		if !Matches(p, q.Rules) {
			continue
		}
		items = append(items, GridItem{Kind: KindProduct, Product: p})
	}
	return items
}

func search(ix *Index, products []*entity.Product, term string) []GridItem {
	var items []GridItem
	for _, c := range ix.All() {
		if textmatch.Contains(c.Name, term) {
			items = append(items, GridItem{Kind: KindCategory, Category: c})
		}
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		if textmatch.Contains(p.Name, term) ||
			textmatch.Contains(deref(p.Code), term) ||
			textmatch.Contains(deref(p.Barcode), term) {
			items = append(items, GridItem{Kind: KindProduct, Product: p})
		}
	}
	return items
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
