package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/usecase"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/repository"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
)

func day(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

func discountDoc(number string, date, start, end time.Time, productID int64, pct int64) dto.DiscountDocumentRequest {
	return dto.DiscountDocumentRequest{
		DocumentNumber: number,
		DocumentDate:   date,
		StartDate:      &start,
		EndDate:        &end,
		Type:           "PRODUCT",
		Items:          []dto.DiscountItemRequest{{ProductID: productID, DiscountPercent: decimal.NewFromInt(pct)}},
	}
}

func TestDiscount_CapasVigentesMasRecientePrimero(t *testing.T) {
	db, repos := newRepos(t)
	uc := usecase.NewDiscountUseCase(repos.Discounts, memory.NewTxRunner(db))
	ctx := context.Background()

	_, err := uc.Create(ctx, discountDoc("D-1", day(1), day(1), day(31), 7, 10))
	require.NoError(t, err)
	_, err = uc.Create(ctx, discountDoc("D-2", day(10), day(10), day(20), 7, 5))
	require.NoError(t, err)
	_, err = uc.Create(ctx, discountDoc("D-3", day(12), day(21), day(25), 7, 50))
	require.NoError(t, err)

	res, err := uc.ForProduct(ctx, 7, day(15).Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, res.Layers, 2)
	assert.Equal(t, "D-2", res.Layers[0].DocumentNumber)
	assert.Equal(t, "D-1", res.Layers[1].DocumentNumber)
	assert.Equal(t, "15", res.TotalPercent.String())

	res, err = uc.ForProduct(ctx, 8, day(15))
	require.NoError(t, err)
	assert.Empty(t, res.Layers)
	assert.True(t, res.TotalPercent.IsZero())
}

func TestDiscount_TotalConTope(t *testing.T) {
	db, repos := newRepos(t)
	uc := usecase.NewDiscountUseCase(repos.Discounts, memory.NewTxRunner(db))
	ctx := context.Background()
	_, err := uc.Create(ctx, discountDoc("A", day(1), day(1), day(5), 1, 70))
	require.NoError(t, err)
	_, err = uc.Create(ctx, discountDoc("B", day(2), day(1), day(5), 1, 60))
	require.NoError(t, err)

	res, err := uc.ForProduct(ctx, 1, day(3))
	require.NoError(t, err)
	assert.Equal(t, "100", res.TotalPercent.String())
}

func TestDiscount_UpdateReemplazaLineasYInactivoNoAplica(t *testing.T) {
	db, repos := newRepos(t)
	uc := usecase.NewDiscountUseCase(repos.Discounts, memory.NewTxRunner(db))
	ctx := context.Background()
	doc, err := uc.Create(ctx, discountDoc("D-1", day(1), day(1), day(31), 7, 10))
	require.NoError(t, err)

	in := discountDoc("D-1", day(1), day(1), day(31), 8, 20)
	in.IsActive = ptr(false)
	up, err := uc.Update(ctx, doc.ID, in)
	require.NoError(t, err)
	require.Len(t, up.Items, 1)
	assert.Equal(t, int64(8), up.Items[0].ProductID)
	assert.False(t, up.IsActive)

	res, err := uc.ForProduct(ctx, 8, day(5))
	require.NoError(t, err)
	assert.Empty(t, res.Layers)

	list, err := uc.List(ctx, repository.DiscountFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Update(ctx, 404, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscount_Validaciones(t *testing.T) {
	db, repos := newRepos(t)
	uc := usecase.NewDiscountUseCase(repos.Discounts, memory.NewTxRunner(db))
	ctx := context.Background()

	_, err := uc.Create(ctx, discountDoc("X", day(5), day(5), day(1), 1, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, discountDoc("X", day(1), day(1), day(2), 1, 101))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := discountDoc("X", day(1), day(1), day(2), 1, 10)
	in.StartDate, in.EndDate = nil, nil
	doc, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, day(1), doc.StartDate)
	assert.Equal(t, day(1), doc.EndDate)

	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
