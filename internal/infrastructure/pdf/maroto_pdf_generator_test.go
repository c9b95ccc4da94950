package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/infrastructure/pdf"
)

func TestMarotoPDFGenerator_GeneraPDF(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	pid := int64(1)
	notes := "Entrega en almacén central"
	phone := "+994 50 000 00 00"
	inv := &entity.Invoice{
		Kind:          entity.InvoiceSale,
		InvoiceNumber: "SQ00000001",
		TotalAmount:   decimal.RequireFromString("1125.00"),
		InvoiceDate:   &date,
		Notes:         &notes,
		IsActive:      true,
		Items: []entity.InvoiceItem{{
			ProductID:    &pid,
			ProductName:  "Cemento",
			Quantity:     decimal.NewFromInt(10),
			UnitPrice:    decimal.NewFromInt(125),
			DiscountAuto: decimal.NewFromInt(10),
			TotalPrice:   decimal.RequireFromString("1125.00"),
		}},
	}
	customer := &entity.Customer{Name: "Comprador SA", Phone: &phone}

	out, err := pdf.NewMarotoPDFGenerator("").Generate(inv, customer)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoPDFGenerator_SinContraparteNiFechas(t *testing.T) {
	inv := &entity.Invoice{Kind: entity.InvoicePurchase, InvoiceNumber: "AQ00000001"}

	out, err := pdf.NewMarotoPDFGenerator("Anbar").Generate(inv, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMarotoPDFGenerator_FacturaNula(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("Anbar").Generate(nil, nil)
	assert.Error(t, err)
}
