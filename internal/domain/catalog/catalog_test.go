package catalog_test

import (
	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain/entity"
)

func id(v int64) *int64 { return &v }

func str(s string) *string { return &s }

func cat(catID int64, name string, parent *int64) *entity.Category {
	return &entity.Category{ID: catID, Name: name, ParentID: parent}
}

func prod(prodID int64, name string, category *int64) *entity.Product {
	return &entity.Product{ID: prodID, Name: name, CategoryID: category, Unit: entity.DefaultUnit, SalePrice: decimal.Zero}
}

// sampleCategories arma A(1) > B(2) > C(3), más D(4) en raíz y E(5) bajo A.
func sampleCategories() []*entity.Category {
	return []*entity.Category{
		cat(1, "A", nil),
		cat(2, "B", id(1)),
		cat(3, "C", id(2)),
		cat(4, "D", nil),
		cat(5, "E", id(1)),
	}
}
