package catalog

import (
	"strings"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

// PathSeparator separa los nombres en la ruta legible de una categoría.
const PathSeparator = " > "

// TreeNode categoría con sus hijos ya resueltos.
type TreeNode struct {
	Category *entity.Category
	Children []*TreeNode
}

// Tree devuelve los hijos directos de parentID, cada uno con su subárbol.
// Un ciclo en los datos corta la rama en la categoría repetida.
func (ix *Index) Tree(parentID *int64) []*TreeNode {
	visited := make(map[int64]bool)
	if parentID != nil {
		visited[*parentID] = true
	}
	return ix.buildTree(parentID, visited)
}

func (ix *Index) buildTree(parentID *int64, visited map[int64]bool) []*TreeNode {
	kids := ix.Children(parentID)
	nodes := make([]*TreeNode, 0, len(kids))
	for _, c := range kids {
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true
		id := c.ID
		nodes = append(nodes, &TreeNode{Category: c, Children: ix.buildTree(&id, visited)})
	}
	return nodes
}

// AncestorChain devuelve [raíz, ..., padre, id]. Si un eslabón no existe la
// cadena se trunca en silencio y se devuelve lo construido hasta ahí.
func (ix *Index) AncestorChain(id int64) []*entity.Category {
	var chain []*entity.Category
	seen := make(map[int64]bool)
	cur := id
	for {
		c, ok := ix.byID[cur]
		if !ok || seen[cur] {
			break
		}
		seen[cur] = true
		chain = append(chain, c)
		if c.ParentID == nil {
			break
		}
		cur = *c.ParentID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// IsDescendant indica si candidate cuelga (a cualquier profundidad) de ancestor.
// Una categoría no es descendiente de sí misma.
func (ix *Index) IsDescendant(candidate, ancestor int64) bool {
	c, ok := ix.byID[candidate]
	if !ok {
		return false
	}
	seen := map[int64]bool{candidate: true}
	for c.ParentID != nil {
		pid := *c.ParentID
		if pid == ancestor {
			return true
		}
		if seen[pid] {
			return false
		}
		seen[pid] = true
		if c, ok = ix.byID[pid]; !ok {
			return false
		}
	}
	return false
}

// Path ruta legible "A > B > C" de la categoría; "" si no existe.
func (ix *Index) Path(id int64) string {
	chain := ix.AncestorChain(id)
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	return strings.Join(names, PathSeparator)
}

// Crumb elemento de la barra de migas. ID nil = inicio.
type Crumb struct {
	ID   *int64
	Name string
}

// HomeCrumbName nombre de la miga de inicio.
const HomeCrumbName = "Anbar"

// Breadcrumbs migas para la categoría seleccionada, empezando por inicio.
func (ix *Index) Breadcrumbs(selected *int64) []Crumb {
	crumbs := []Crumb{{Name: HomeCrumbName}}
	if selected == nil {
		return crumbs
	}
	for _, c := range ix.AncestorChain(*selected) {
		id := c.ID
		crumbs = append(crumbs, Crumb{ID: &id, Name: c.Name})
	}
	return crumbs
}
