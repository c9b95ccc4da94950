package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/invoicing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pid(v int64) *int64 { return &v }

func TestNextNumber(t *testing.T) {
	assert.Equal(t, "SQ00000001", invoicing.NextNumber("SQ", ""))
	assert.Equal(t, "SQ00000043", invoicing.NextNumber("SQ", "SQ00000042"))
	assert.Equal(t, "AQ00000001", invoicing.NextNumber("AQ", "SQ00000042"))
	assert.Equal(t, "AQ00000001", invoicing.NextNumber("AQ", "AQxx"))
	assert.Equal(t, "AQ123456790", invoicing.NextNumber("AQ", "AQ123456789"))
}

func TestLineTotal(t *testing.T) {
	assert.True(t, d("20").Equal(invoicing.LineTotal(d("2"), d("10"), decimal.Zero, decimal.Zero)))
	assert.True(t, d("17").Equal(invoicing.LineTotal(d("2"), d("10"), d("10"), d("5"))))
	assert.True(t, decimal.Zero.Equal(invoicing.LineTotal(d("2"), d("10"), d("60"), d("50"))))
	assert.True(t, d("3.33").Equal(invoicing.LineTotal(d("1"), d("3.333"), decimal.Zero, decimal.Zero)))
}

func TestStockDeltas_CompraSumaVentaResta(t *testing.T) {
	items := []entity.InvoiceItem{
		{ProductID: pid(2), Quantity: d("3")},
		{ProductID: pid(1), Quantity: d("1.5")},
		{ProductID: pid(2), Quantity: d("2")},
		{ProductID: nil, Quantity: d("9")},
	}

	purchase := invoicing.StockDeltas(entity.InvoicePurchase, items)
	require.Len(t, purchase, 2)
	assert.Equal(t, int64(1), purchase[0].ProductID)
	assert.True(t, d("1.5").Equal(purchase[0].Delta))
	assert.True(t, d("5").Equal(purchase[1].Delta))

	sale := invoicing.StockDeltas(entity.InvoiceSale, items)
	assert.True(t, d("-5").Equal(sale[1].Delta))
	assert.Equal(t, invoicing.Reverse(sale)[1].Delta.String(), purchase[1].Delta.String())
}

func TestMerge_ReemplazoDeLineas(t *testing.T) {
	old := invoicing.StockDeltas(entity.InvoicePurchase, []entity.InvoiceItem{{ProductID: pid(1), Quantity: d("5")}})
	nuevo := invoicing.StockDeltas(entity.InvoicePurchase, []entity.InvoiceItem{
		{ProductID: pid(1), Quantity: d("5")},
		{ProductID: pid(2), Quantity: d("1")},
	})

	merged := invoicing.Merge(invoicing.Reverse(old), nuevo)
	require.Len(t, merged, 1)
	assert.Equal(t, int64(2), merged[0].ProductID)
}

func TestInvoiceTotal(t *testing.T) {
	total := invoicing.InvoiceTotal([]entity.InvoiceItem{{TotalPrice: d("1.10")}, {TotalPrice: d("2.20")}})
	assert.True(t, d("3.30").Equal(total))
}
