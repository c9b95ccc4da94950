package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/usecase"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

func TestCategory_CreateInvalidaCatalogo(t *testing.T) {
	_, repos := newRepos(t)
	inv := &invalidations{}
	uc := usecase.NewCategoryUseCase(repos.Categories, repos.Products, inv)
	ctx := context.Background()

	root, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: " Herramientas "})
	require.NoError(t, err)
	assert.Equal(t, "Herramientas", root.Name)
	assert.Nil(t, root.ParentID)

	child, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Manuales", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *child.ParentID)
	assert.Equal(t, 2, inv.n)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "X", ParentID: ptr(int64(404))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_ReubicarEnDescendienteEsCiclo(t *testing.T) {
	_, repos := newRepos(t)
	uc := usecase.NewCategoryUseCase(repos.Categories, repos.Products, nil)
	ctx := context.Background()
	a := seedCategory(t, repos, "A", nil)
	b := seedCategory(t, repos, "B", &a)
	c := seedCategory(t, repos, "C", &b)

	_, err := uc.Update(ctx, a, dto.UpdateCategoryRequest{ParentID: &c, ParentIDSet: true})
	assert.ErrorIs(t, err, domain.ErrCycle)

	_, err = uc.Update(ctx, a, dto.UpdateCategoryRequest{ParentID: &a, ParentIDSet: true})
	assert.ErrorIs(t, err, domain.ErrCycle)

	got, err := uc.Update(ctx, c, dto.UpdateCategoryRequest{ParentIDSet: true})
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestCategory_RenombrarSinTocarPadre(t *testing.T) {
	_, repos := newRepos(t)
	uc := usecase.NewCategoryUseCase(repos.Categories, repos.Products, nil)
	ctx := context.Background()
	a := seedCategory(t, repos, "A", nil)
	b := seedCategory(t, repos, "B", &a)

	got, err := uc.Update(ctx, b, dto.UpdateCategoryRequest{Name: ptr("Bebidas")})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", got.Name)
	assert.Equal(t, a, *got.ParentID)

	_, err = uc.Update(ctx, 999, dto.UpdateCategoryRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_DeleteLiberaProductosYSubcategorias(t *testing.T) {
	_, repos := newRepos(t)
	uc := usecase.NewCategoryUseCase(repos.Categories, repos.Products, nil)
	ctx := context.Background()
	a := seedCategory(t, repos, "A", nil)
	b := seedCategory(t, repos, "B", &a)
	p := &entity.Product{Name: "P", CategoryID: &a, Unit: entity.DefaultUnit}
	require.NoError(t, repos.Products.Create(ctx, p))

	require.NoError(t, uc.Delete(ctx, a))

	child, err := repos.Categories.GetByID(ctx, b)
	require.NoError(t, err)
	assert.Nil(t, child.ParentID)
	prod, err := repos.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, prod.CategoryID)
	assert.ErrorIs(t, uc.Delete(ctx, a), domain.ErrNotFound)
}

func TestCategory_MoveProductsYConteo(t *testing.T) {
	_, repos := newRepos(t)
	uc := usecase.NewCategoryUseCase(repos.Categories, repos.Products, nil)
	ctx := context.Background()
	a := seedCategory(t, repos, "A", nil)
	var ids []int64
	for _, name := range []string{"P1", "P2"} {
		p := &entity.Product{Name: name, Unit: entity.DefaultUnit}
		require.NoError(t, repos.Products.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	res, err := uc.MoveProducts(ctx, dto.MoveProductsRequest{ProductIDs: ids, CategoryID: &a})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Moved)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ProductCount)

	_, err = uc.MoveProducts(ctx, dto.MoveProductsRequest{ProductIDs: ids, CategoryID: ptr(int64(404))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
