package catalog

import (
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain/catalog"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

// ToCategoryResponse convierte la entidad a DTO.
func ToCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		ParentID:     c.ParentID,
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Code:           p.Code,
		Barcode:        p.Barcode,
		Article:        p.Article,
		Description:    p.Description,
		Unit:           p.Unit,
		CategoryID:     p.CategoryID,
		Type:           p.Type,
		Brand:          p.Brand,
		Model:          p.Model,
		Color:          p.Color,
		Size:           p.Size,
		Weight:         p.Weight,
		Country:        p.Country,
		Manufacturer:   p.Manufacturer,
		WarrantyPeriod: p.WarrantyPeriod,
		ProductionDate: p.ProductionDate,
		ExpiryDate:     p.ExpiryDate,
		PurchasePrice:  p.PurchasePrice,
		SalePrice:      p.SalePrice,
		MinStock:       p.MinStock,
		MaxStock:       p.MaxStock,
		TaxRate:        p.TaxRate,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toTreeResponse(nodes []*catalog.TreeNode) []dto.TreeNodeResponse {
	out := make([]dto.TreeNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.TreeNodeResponse{
			CategoryResponse: *ToCategoryResponse(n.Category),
			Children:         toTreeResponse(n.Children),
		})
	}
	return out
}

func toGridResponse(items []catalog.GridItem) []dto.GridItemResponse {
	out := make([]dto.GridItemResponse, 0, len(items))
	for _, it := range items {
		row := dto.GridItemResponse{Type: string(it.Kind), ItemID: it.ItemID(), IsParent: it.IsParent}
		if it.Kind == catalog.KindCategory {
			row.Category = ToCategoryResponse(it.Category)
		} else {
			row.Product = ToProductResponse(it.Product)
		}
		out = append(out, row)
	}
	return out
}

func toCrumbs(crumbs []catalog.Crumb) []dto.CrumbResponse {
	out := make([]dto.CrumbResponse, len(crumbs))
	for i, c := range crumbs {
		out[i] = dto.CrumbResponse{ID: c.ID, Name: c.Name}
	}
	return out
}
