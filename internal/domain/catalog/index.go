// Package catalog contiene la lógica del navegador de categorías: árbol,
// grilla, navegación, filtros avanzados y el motor de movimiento.
// Todo es puro: opera sobre una foto inmutable de categorías y productos.
package catalog

import "github.com/anbar/anbar-api/internal/domain/entity"

// Index indexa las categorías por id y por padre una sola vez por carga.
// Los hijos conservan el orden de la lista de origen.
type Index struct {
	all      []*entity.Category
	byID     map[int64]*entity.Category
	children map[int64][]*entity.Category
	roots    []*entity.Category
}

// NewIndex construye el índice. Si un id se repite gana la primera aparición.
func NewIndex(categories []*entity.Category) *Index {
	ix := &Index{
		all:      make([]*entity.Category, 0, len(categories)),
		byID:     make(map[int64]*entity.Category, len(categories)),
		children: make(map[int64][]*entity.Category),
	}
	for _, c := range categories {
		if c == nil {
			continue
		}
		if _, dup := ix.byID[c.ID]; dup {
			continue
		}
		ix.all = append(ix.all, c)
		ix.byID[c.ID] = c
		if c.ParentID == nil {
			ix.roots = append(ix.roots, c)
			continue
		}
		ix.children[*c.ParentID] = append(ix.children[*c.ParentID], c)
	}
	return ix
}

// Get busca una categoría por id.
func (ix *Index) Get(id int64) (*entity.Category, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// Children devuelve los hijos directos de parentID (nil = raíz).
func (ix *Index) Children(parentID *int64) []*entity.Category {
	if parentID == nil {
		return ix.roots
	}
	return ix.children[*parentID]
}

// All devuelve todas las categorías en orden de origen.
func (ix *Index) All() []*entity.Category {
	return ix.all
}

// Len número de categorías indexadas.
func (ix *Index) Len() int {
	return len(ix.all)
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
