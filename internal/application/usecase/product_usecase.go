package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	appcatalog "github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 500
)

// ProductUseCase casos de uso CRUD para productos. La existencia se maneja
// vía almacén y facturas.
type ProductUseCase struct {
	repo    repository.ProductRepository
	tx      ports.TxRunner
	catalog CatalogInvalidator
}

// NewProductUseCase construye el caso de uso. inv puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, tx ports.TxRunner, inv CatalogInvalidator) *ProductUseCase {
	if inv == nil {
		inv = nopInvalidator{}
	}
	return &ProductUseCase{repo: repo, tx: tx, catalog: inv}
}

// Create crea el producto y su fila de almacén con existencia 0 en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	p := &entity.Product{
		Name:          name,
		Unit:          entity.DefaultUnit,
		PurchasePrice: decimal.Zero,
		SalePrice:     decimal.Zero,
		IsActive:      true,
	}
	if err := applyProductFields(p, in.ProductFields); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(repos ports.Repos) error {
		if p.CategoryID != nil {
			c, err := repos.Categories.GetByID(ctx, *p.CategoryID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, *p.CategoryID)
			}
		}
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		_, err := repos.Stock.Create(ctx, p.ID, decimal.Zero)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.catalog.Invalidate()
	return appcatalog.ToProductResponse(p), nil
}

// GetByID obtiene un producto; nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return appcatalog.ToProductResponse(p), nil
}

// Update aplica los campos enviados, incluida la categoría.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if err := applyProductFields(p, in.ProductFields); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.catalog.Invalidate()
	return appcatalog.ToProductResponse(p), nil
}

// Delete elimina el producto y su fila de almacén.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.catalog.Invalidate()
	return nil
}

// List lista productos con búsqueda, categoría, ids y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.Normalize(defaultPageLimit, maxPageLimit)
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		IDs:        in.IDs,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *appcatalog.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Data:       items,
		Pagination: dto.NewPagination(in.PageRequest, total),
	}, nil
}

func applyProductFields(p *entity.Product, f dto.ProductFields) error {
	for _, v := range []*decimal.Decimal{f.PurchasePrice, f.SalePrice, f.MinStock, f.MaxStock, f.Weight} {
		if v != nil && v.IsNegative() {
			return fmt.Errorf("%w: valor negativo", domain.ErrInvalidInput)
		}
	}
	if f.Code != nil {
		p.Code = blankToNil(f.Code)
	}
	if f.Barcode != nil {
		p.Barcode = blankToNil(f.Barcode)
	}
	if f.Article != nil {
		p.Article = blankToNil(f.Article)
	}
	if f.Description != nil {
		p.Description = f.Description
	}
	if f.Unit != nil && strings.TrimSpace(*f.Unit) != "" {
		p.Unit = strings.TrimSpace(*f.Unit)
	}
	if f.CategoryID != nil {
		p.CategoryID = f.CategoryID
	}
	if f.Type != nil {
		p.Type = f.Type
	}
	if f.Brand != nil {
		p.Brand = f.Brand
	}
	if f.Model != nil {
		p.Model = f.Model
	}
	if f.Color != nil {
		p.Color = f.Color
	}
	if f.Size != nil {
		p.Size = f.Size
	}
	if f.Weight != nil {
		p.Weight = f.Weight
	}
	if f.Country != nil {
		p.Country = f.Country
	}
	if f.Manufacturer != nil {
		p.Manufacturer = f.Manufacturer
	}
	if f.WarrantyPeriod != nil {
		p.WarrantyPeriod = f.WarrantyPeriod
	}
	if f.ProductionDate != nil {
		p.ProductionDate = f.ProductionDate
	}
	if f.ExpiryDate != nil {
		p.ExpiryDate = f.ExpiryDate
	}
	if f.PurchasePrice != nil {
		p.PurchasePrice = *f.PurchasePrice
	}
	if f.SalePrice != nil {
		p.SalePrice = *f.SalePrice
	}
	if f.MinStock != nil {
		p.MinStock = f.MinStock
	}
	if f.MaxStock != nil {
		p.MaxStock = f.MaxStock
	}
	if f.TaxRate != nil {
		p.TaxRate = f.TaxRate
	}
	if f.IsActive != nil {
		p.IsActive = *f.IsActive
	}
	return nil
}

// blankToNil convierte "" en NULL para no chocar con los índices únicos.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
