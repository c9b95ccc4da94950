package dto

import "encoding/json"

// TreeNodeResponse nodo del árbol de categorías.
type TreeNodeResponse struct {
	CategoryResponse
	Children []TreeNodeResponse `json:"children"`
}

// GridItemResponse fila de la grilla: la categoría o el producto aplanado más type/is_parent/item_id.
type GridItemResponse struct {
	Type     string            `json:"type"`
	ItemID   string            `json:"item_id"`
	IsParent bool              `json:"is_parent"`
	Category *CategoryResponse `json:"-"`
	Product  *ProductResponse  `json:"-"`
}

// MarshalJSON aplana el registro envuelto junto a los campos de la fila.
func (g GridItemResponse) MarshalJSON() ([]byte, error) {
	var inner any = g.Category
	if g.Product != nil {
		inner = g.Product
	}
	body, err := json.Marshal(inner)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	for k, v := range map[string]any{"type": g.Type, "item_id": g.ItemID, "is_parent": g.IsParent} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// CrumbResponse miga de la barra de navegación (id null = inicio).
type CrumbResponse struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// GridRequest estado de la vista. Filters es un arreglo JSON de reglas.
type GridRequest struct {
	CategoryID *int64 `query:"category_id"`
	Search     string `query:"search"`
	Filters    string `query:"filters"`
}

// GridResponse grilla compuesta y migas de la carpeta.
type GridResponse struct {
	CategoryID  *int64             `json:"category_id"`
	Items       []GridItemResponse `json:"items"`
	Breadcrumbs []CrumbResponse    `json:"breadcrumbs"`
}

// NavigateRequest evento de navegación sobre la carpeta actual.
type NavigateRequest struct {
	CategoryID *int64 `json:"category_id"`
	Event      string `json:"event" validate:"required,oneof=row_click breadcrumb_click up locate"`
	ItemID     string `json:"item_id"`
	IsParent   bool   `json:"is_parent"`
	CrumbID    *int64 `json:"crumb_id"`
	PickerMode bool   `json:"picker_mode"`
}

// NavigateResponse nueva carpeta y efecto a ejecutar.
type NavigateResponse struct {
	CategoryID  *int64          `json:"category_id"`
	Action      string          `json:"action"`
	ProductID   *int64          `json:"product_id,omitempty"`
	ClearSearch bool            `json:"clear_search,omitempty"`
	Breadcrumbs []CrumbResponse `json:"breadcrumbs"`
}

// MoveItemsRequest mueve filas seleccionadas ("prod_<id>" / "cat_<id>").
type MoveItemsRequest struct {
	ItemIDs          []string `json:"item_ids" validate:"required,min=1"`
	TargetCategoryID *int64   `json:"target_category_id" validate:"omitempty,gt=0"`
}

// MoveRejection categoría no movida y su motivo.
type MoveRejection struct {
	CategoryID int64  `json:"category_id"`
	Reason     string `json:"reason"`
}

// MoveItemsResponse resultado por ítem del movimiento.
type MoveItemsResponse struct {
	MovedProducts   []int64         `json:"moved_products"`
	MovedCategories []int64         `json:"moved_categories"`
	Rejected        []MoveRejection `json:"rejected"`
}

// MoveTargetResponse categoría destino válida con su ruta.
type MoveTargetResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}
