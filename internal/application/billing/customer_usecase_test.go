package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/billing"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
)

func TestCustomer_ListPorTipoIncluyeAmbos(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepository(memory.NewDB()))
	ctx := context.Background()
	for _, c := range []dto.CustomerRequest{
		{Name: "Comprador", Type: "BUYER"},
		{Name: "Proveedor", Type: "SUPPLIER"},
		{Name: "Mixto", Type: "BOTH"},
	} {
		_, err := uc.Create(ctx, c)
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, "SUPPLIER", "", dto.PageRequest{})
	require.NoError(t, err)
	var names []string
	for _, c := range res.Data {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Proveedor", "Mixto"}, names)

	_, err = uc.List(ctx, "OTRO", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomer_CreateValidaYDefaults(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepository(memory.NewDB()))
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CustomerRequest{Name: "  Ana  "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "BUYER", c.Type)
	assert.True(t, c.IsActive)

	_, err = uc.Create(ctx, dto.CustomerRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	code := "C-1"
	_, err = uc.Create(ctx, dto.CustomerRequest{Name: "Uno", Code: &code})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CustomerRequest{Name: "Dos", Code: &code})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomer_UpdateYDelete(t *testing.T) {
	uc := billing.NewCustomerUseCase(memory.NewCustomerRepository(memory.NewDB()))
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CustomerRequest{Name: "Ana"})
	require.NoError(t, err)

	up, err := uc.Update(ctx, c.ID, dto.CustomerRequest{Name: "Ana María", Type: "BOTH"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", up.Name)
	assert.Equal(t, "BOTH", up.Type)

	require.NoError(t, uc.Delete(ctx, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrNotFound)
	_, err = uc.Update(ctx, c.ID, dto.CustomerRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
