package catalog

import (
	"fmt"

	"github.com/anbar/anbar-api/internal/domain"
)

// NavEventKind evento de la vista de catálogo.
type NavEventKind string

const (
	EventRowClick        NavEventKind = "row_click"
	EventBreadcrumbClick NavEventKind = "breadcrumb_click"
	EventUp              NavEventKind = "up"
	EventLocate          NavEventKind = "locate"
)

// NavEvent evento de navegación. Para row_click se usan ItemID e IsParent;
// para breadcrumb_click, CrumbID (nil = inicio); para locate, ItemID.
type NavEvent struct {
	Kind     NavEventKind
	ItemID   string
	IsParent bool
	CrumbID  *int64
}

// NavActionKind efecto que la vista debe ejecutar.
type NavActionKind string

const (
	ActionNavigate      NavActionKind = "navigate"
	ActionSelectProduct NavActionKind = "select_product"
	ActionEditProduct   NavActionKind = "edit_product"
)

// NavAction resultado de aplicar un evento. ClearSearch: la vista debe
// vaciar el término de búsqueda.
type NavAction struct {
	Kind        NavActionKind
	ProductID   int64
	ClearSearch bool
}

// ProductLocator devuelve la categoría de un producto (nil = raíz) y si existe.
type ProductLocator func(id int64) (*int64, bool)

// Navigator máquina de estados sobre la carpeta seleccionada.
// PickerMode: el clic en producto lo selecciona en lugar de abrir la edición.
type Navigator struct {
	Index      *Index
	Products   ProductLocator
	PickerMode bool
}

// Apply calcula la nueva carpeta seleccionada a partir de current y ev.
//
// Clic en fila de ancestro sube por encima de ella (va a su padre); clic en
// la miga de la misma categoría entra en ella. La asimetría es intencional.
func (n Navigator) Apply(current *int64, ev NavEvent) (*int64, NavAction, error) {
	switch ev.Kind {
	case EventRowClick:
		return n.rowClick(current, ev)
	case EventBreadcrumbClick:
		return copyID(ev.CrumbID), NavAction{Kind: ActionNavigate}, nil
	case EventUp:
		if current == nil {
			return nil, NavAction{Kind: ActionNavigate}, nil
		}
		c, ok := n.Index.Get(*current)
		if !ok {
			return nil, NavAction{Kind: ActionNavigate}, nil
		}
		return copyID(c.ParentID), NavAction{Kind: ActionNavigate}, nil
	case EventLocate:
		return n.locate(current, ev)
	default:
		return current, NavAction{}, fmt.Errorf("%w: evento %q", domain.ErrInvalidInput, ev.Kind)
	}
}

func (n Navigator) rowClick(current *int64, ev NavEvent) (*int64, NavAction, error) {
	ref, err := ParseItemID(ev.ItemID)
	if err != nil {
		return current, NavAction{}, err
	}
	if ref.Kind == KindProduct {
		kind := ActionEditProduct
		if n.PickerMode {
			kind = ActionSelectProduct
		}
		return current, NavAction{Kind: kind, ProductID: ref.ID}, nil
	}
	c, ok := n.Index.Get(ref.ID)
	if !ok {
		return current, NavAction{}, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, ref.ID)
	}
	if ev.IsParent {
		return copyID(c.ParentID), NavAction{Kind: ActionNavigate}, nil
	}
	id := c.ID
	return &id, NavAction{Kind: ActionNavigate}, nil
}

// locate abre la carpeta que contiene el elemento: la categoría del
// producto o el padre de la categoría.
func (n Navigator) locate(current *int64, ev NavEvent) (*int64, NavAction, error) {
	ref, err := ParseItemID(ev.ItemID)
	if err != nil {
		return current, NavAction{}, err
	}
	if ref.Kind == KindProduct {
		if n.Products == nil {
			return current, NavAction{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, ref.ID)
		}
		parent, ok := n.Products(ref.ID)
		if !ok {
			return current, NavAction{}, fmt.Errorf("%w: producto %d", domain.ErrNotFound, ref.ID)
		}
		return copyID(parent), NavAction{Kind: ActionNavigate, ClearSearch: true}, nil
	}
	c, ok := n.Index.Get(ref.ID)
	if !ok {
		return current, NavAction{}, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, ref.ID)
	}
	return copyID(c.ParentID), NavAction{Kind: ActionNavigate, ClearSearch: true}, nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
