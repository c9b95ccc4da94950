package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
}

// UpdateCategoryRequest renombra y/o re-ubica. ParentIDSet distingue "no enviado" de null.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	ParentID    *int64  `json:"parent_id" validate:"omitempty,gt=0"`
	ParentIDSet bool    `json:"-"`
}

// MoveProductsRequest mueve productos a una categoría (null = raíz).
type MoveProductsRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
	CategoryID *int64  `json:"category_id" validate:"omitempty,gt=0"`
}

// MoveProductsResponse cantidad de productos actualizados.
type MoveProductsResponse struct {
	Moved int64 `json:"moved"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ParentID     *int64    `json:"parent_id"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
