package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/catalog"
)

// BrowserUseCase lecturas del navegador: árbol, grilla, migas y navegación.
type BrowserUseCase struct {
	store *Store
}

// NewBrowserUseCase construye el caso de uso.
func NewBrowserUseCase(store *Store) *BrowserUseCase {
	return &BrowserUseCase{store: store}
}

// Tree árbol de categorías bajo parentID (nil = raíz).
func (uc *BrowserUseCase) Tree(ctx context.Context, parentID *int64) ([]dto.TreeNodeResponse, error) {
	snap, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		if _, ok := snap.Index.Get(*parentID); !ok {
			return nil, domain.ErrNotFound
		}
	}
	return toTreeResponse(snap.Index.Tree(parentID)), nil
}

// Grid compone la grilla de la carpeta. Una carpeta inexistente da grilla vacía.
func (uc *BrowserUseCase) Grid(ctx context.Context, in dto.GridRequest) (*dto.GridResponse, error) {
	rules, err := catalog.ParseRules([]byte(in.Filters))
	if err != nil {
		return nil, err
	}
	snap, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	items := catalog.Compose(snap.Index, snap.Products, catalog.GridQuery{
		CategoryID: in.CategoryID,
		Search:     in.Search,
		Rules:      rules,
	})
	return &dto.GridResponse{
		CategoryID:  in.CategoryID,
		Items:       toGridResponse(items),
		Breadcrumbs: toCrumbs(snap.Index.Breadcrumbs(in.CategoryID)),
	}, nil
}

// Breadcrumbs cadena de ancestros de la categoría, incluida ella.
func (uc *BrowserUseCase) Breadcrumbs(ctx context.Context, id int64) ([]dto.CrumbResponse, error) {
	snap, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := snap.Index.Get(id); !ok {
		return nil, domain.ErrNotFound
	}
	return toCrumbs(snap.Index.Breadcrumbs(&id)), nil
}

// Navigate aplica un evento de navegación a la carpeta actual.
func (uc *BrowserUseCase) Navigate(ctx context.Context, in dto.NavigateRequest) (*dto.NavigateResponse, error) {
	snap, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	nav := catalog.Navigator{Index: snap.Index, Products: snap.locateProduct, PickerMode: in.PickerMode}
	next, action, err := nav.Apply(in.CategoryID, catalog.NavEvent{
		Kind:     catalog.NavEventKind(in.Event),
		ItemID:   in.ItemID,
		IsParent: in.IsParent,
		CrumbID:  in.CrumbID,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.NavigateResponse{
		CategoryID:  next,
		Action:      string(action.Kind),
		ClearSearch: action.ClearSearch,
		Breadcrumbs: toCrumbs(snap.Index.Breadcrumbs(next)),
	}
	if action.Kind != catalog.ActionNavigate {
		if !hasProduct(snap, action.ProductID) {
			return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, action.ProductID)
		}
		pid := action.ProductID
		out.ProductID = &pid
	}
	return out, nil
}

// MoveTargets categorías donde se pueden soltar los elementos seleccionados,
// ordenadas por ruta. Excluye las seleccionadas y sus descendientes.
func (uc *BrowserUseCase) MoveTargets(ctx context.Context, itemIDs []string) ([]dto.MoveTargetResponse, error) {
	snap, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var moving []int64
	for _, raw := range itemIDs {
		ref, err := catalog.ParseItemID(raw)
		if err != nil {
			return nil, err
		}
		if ref.Kind == catalog.KindCategory {
			moving = append(moving, ref.ID)
		}
	}
	out := make([]dto.MoveTargetResponse, 0, snap.Index.Len())
	for _, c := range snap.Index.All() {
		if blocked(snap.Index, c.ID, moving) {
			continue
		}
		out = append(out, dto.MoveTargetResponse{ID: c.ID, Name: c.Name, Path: snap.Index.Path(c.ID)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func blocked(ix *catalog.Index, target int64, moving []int64) bool {
	for _, m := range moving {
		if m == target || ix.IsDescendant(target, m) {
			return true
		}
	}
	return false
}

func hasProduct(snap *Snapshot, id int64) bool {
	_, ok := snap.locateProduct(id)
	return ok
}

// locateProduct categoría del producto id en la foto.
func (s *Snapshot) locateProduct(id int64) (*int64, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p.CategoryID, true
		}
	}
	return nil, false
}
