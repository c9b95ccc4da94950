package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/billing"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

type fakePDF struct {
	invoice  *entity.Invoice
	customer *entity.Customer
}

func (f *fakePDF) Generate(inv *entity.Invoice, c *entity.Customer) ([]byte, error) {
	f.invoice, f.customer = inv, c
	return []byte("%PDF"), nil
}

func TestPDF_GeneraConLineasYContraparte(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "Foco")
	cust := &entity.Customer{Name: "Proveedor SA", Type: entity.CustomerSupplier, IsActive: true}
	require.NoError(t, e.repos.Customers.Create(ctx, cust))
	inv, err := e.purchases.Create(ctx, dto.CreateInvoiceRequest{CustomerID: &cust.ID, Items: []dto.InvoiceItemRequest{line(p, 1, 9)}})
	require.NoError(t, err)

	gen := &fakePDF{}
	uc := billing.NewPDFUseCase(e.repos.Invoices, e.repos.Customers, gen)
	body, name, err := uc.DownloadInvoicePDF(ctx, entity.InvoicePurchase, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF"), body)
	assert.Equal(t, "factura_AQ00000001.pdf", name)
	require.NotNil(t, gen.customer)
	assert.Equal(t, "Proveedor SA", gen.customer.Name)
	assert.Len(t, gen.invoice.Items, 1)

	_, _, err = uc.DownloadInvoicePDF(ctx, entity.InvoiceSale, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
