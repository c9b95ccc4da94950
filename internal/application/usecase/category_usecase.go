package usecase

import (
	"context"
	"fmt"
	"strings"

	appcatalog "github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/catalog"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

// CatalogInvalidator recibe el aviso de que categorías o productos cambiaron.
type CatalogInvalidator interface {
	Invalidate()
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate() {}

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	catalog  CatalogInvalidator
}

// NewCategoryUseCase construye el caso de uso. inv puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository, inv CatalogInvalidator) *CategoryUseCase {
	if inv == nil {
		inv = nopInvalidator{}
	}
	return &CategoryUseCase{repo: repo, products: products, catalog: inv}
}

// List todas las categorías ordenadas por nombre, con su cantidad de productos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *appcatalog.ToCategoryResponse(c))
	}
	return out, nil
}

// GetByID obtiene una categoría; nil si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return appcatalog.ToCategoryResponse(c), nil
}

// Create crea una categoría bajo ParentID (nil = raíz).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	if err := uc.requireCategory(ctx, in.ParentID); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: name, ParentID: in.ParentID}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.catalog.Invalidate()
	return appcatalog.ToCategoryResponse(c), nil
}

// Update renombra y/o re-ubica. Re-ubicar debajo de sí misma o de un
// descendiente devuelve ErrCycle.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		c.Name = name
	}
	if in.ParentIDSet {
		if err := uc.requireCategory(ctx, in.ParentID); err != nil {
			return nil, err
		}
		all, err := uc.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if err := catalog.ValidateReparent(catalog.NewIndex(all), id, in.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = in.ParentID
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.catalog.Invalidate()
	return appcatalog.ToCategoryResponse(c), nil
}

// Delete elimina la categoría; sus productos y subcategorías pasan a la raíz.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.catalog.Invalidate()
	return nil
}

// MoveProducts cambia la categoría de varios productos (nil = raíz).
func (uc *CategoryUseCase) MoveProducts(ctx context.Context, in dto.MoveProductsRequest) (*dto.MoveProductsResponse, error) {
	if len(in.ProductIDs) == 0 {
		return nil, fmt.Errorf("%w: product_ids vacío", domain.ErrInvalidInput)
	}
	if err := uc.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	n, err := uc.products.MoveToCategory(ctx, in.ProductIDs, in.CategoryID)
	if err != nil {
		return nil, err
	}
	uc.catalog.Invalidate()
	return &dto.MoveProductsResponse{Moved: n}, nil
}

func (uc *CategoryUseCase) requireCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := uc.repo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, *id)
	}
	return nil
}
