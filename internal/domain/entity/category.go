package entity

import "time"

// Category carpeta del catálogo. ParentID nil = raíz.
// ProductCount es desnormalizado (lo calcula el repositorio), nunca se persiste.
type Category struct {
	ID           int64
	Name         string
	ParentID     *int64
	ProductCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}
