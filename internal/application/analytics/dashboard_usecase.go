// Package analytics resumen del dashboard: ventas del día y del mes,
// existencias bajo mínimo y facturas vencidas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

const dashboardOverdueLimit = 10 // facturas vencidas en el widget

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. SalesTotal(hoy)
//  2. SalesTotal(mes)
//  3. LowStockCount
//  4. OverdueInvoices(now)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type salesResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type lowStockResult struct {
		count int
		err   error
	}
	type overdueResult struct {
		rows []repository.OverdueInvoice
		err  error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	lowCh := make(chan lowStockResult, 1)
	overdueCh := make(chan overdueResult, 1)

	go func() {
		total, n, err := uc.analyticsRepo.SalesTotal(ctx, todayStart, todayEnd)
		todayCh <- salesResult{total, n, err}
	}()
	go func() {
		total, n, err := uc.analyticsRepo.SalesTotal(ctx, monthStart, todayEnd)
		monthCh <- salesResult{total, n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.LowStockCount(ctx)
		lowCh <- lowStockResult{n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.OverdueInvoices(ctx, now, dashboardOverdueLimit)
		overdueCh <- overdueResult{rows, err}
	}()

	today := <-todayCh
	month := <-monthCh
	low := <-lowCh
	overdue := <-overdueCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if overdue.err != nil {
		return nil, fmt.Errorf("dashboard: facturas vencidas: %w", overdue.err)
	}

	overdueTotal := decimal.Zero
	items := make([]dto.OverdueInvoiceDTO, 0, len(overdue.rows))
	for _, r := range overdue.rows {
		overdueTotal = overdueTotal.Add(r.TotalAmount)
		items = append(items, dto.OverdueInvoiceDTO{
			InvoiceID:     r.InvoiceID,
			InvoiceNumber: r.InvoiceNumber,
			CustomerName:  r.CustomerName,
			TotalAmount:   r.TotalAmount.Round(2),
			PaymentDate:   r.PaymentDate,
			DaysOverdue:   daysBetween(r.PaymentDate, now),
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:         today.total.Round(2),
		TodayInvoices:      today.count,
		MonthlySales:       month.total.Round(2),
		MonthlyInvoices:    month.count,
		LowStockProducts:   low.count,
		OverdueInvoices:    items,
		OverdueTotalAmount: overdueTotal.Round(2),
		DateLabel:          monthLabel(now),
	}, nil
}

// daysBetween días completos de calendario entre from y to.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
