package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/analytics"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

type fakeAnalytics struct {
	overdue  []repository.OverdueInvoice
	lowStock int
	failLow  bool
}

func (f *fakeAnalytics) SalesTotal(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	// El rango del mes empieza el día 1; el de hoy, el mismo día.
	if start.Day() == 1 && end.Day() != 1 {
		return decimal.NewFromInt(1000), 12, nil
	}
	return decimal.RequireFromString("150.456"), 2, nil
}

func (f *fakeAnalytics) OverdueInvoices(_ context.Context, _ time.Time, _ int) ([]repository.OverdueInvoice, error) {
	return f.overdue, nil
}

func (f *fakeAnalytics) LowStockCount(context.Context) (int, error) {
	if f.failLow {
		return 0, errors.New("db caída")
	}
	return f.lowStock, nil
}

func TestDashboard_Resumen(t *testing.T) {
	now := time.Date(2026, time.February, 18, 10, 0, 0, 0, time.UTC)
	repo := &fakeAnalytics{
		lowStock: 3,
		overdue: []repository.OverdueInvoice{
			{InvoiceID: 1, InvoiceNumber: "SQ00000001", CustomerName: "Ana", TotalAmount: decimal.NewFromInt(40), PaymentDate: now.AddDate(0, 0, -5)},
			{InvoiceID: 2, InvoiceNumber: "SQ00000002", TotalAmount: decimal.NewFromInt(60), PaymentDate: now.Add(-2 * time.Hour)},
		},
	}
	uc := analytics.NewDashboardUseCase(repo).WithClock(func() time.Time { return now })

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "150.46", got.TodaySales.String())
	assert.Equal(t, 2, got.TodayInvoices)
	assert.Equal(t, "1000", got.MonthlySales.String())
	assert.Equal(t, 12, got.MonthlyInvoices)
	assert.Equal(t, 3, got.LowStockProducts)
	assert.Equal(t, "100", got.OverdueTotalAmount.String())
	require.Len(t, got.OverdueInvoices, 2)
	assert.Equal(t, 5, got.OverdueInvoices[0].DaysOverdue)
	assert.Equal(t, 0, got.OverdueInvoices[1].DaysOverdue)
	assert.Equal(t, "Febrero 2026", got.DateLabel)
}

func TestDashboard_ErrorDeConsulta(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalytics{failLow: true})

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock bajo")
}
