package ports

import (
	"context"

	"github.com/anbar/anbar-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Stock      repository.StockRepository
	Customers  repository.CustomerRepository
	Invoices   repository.InvoiceRepository
	Discounts  repository.DiscountRepository
	Logs       repository.ActivityLogRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
