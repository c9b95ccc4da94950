package billing

import "github.com/anbar/anbar-api/internal/domain/entity"

// InvoicePDFGenerator genera el PDF de una factura. customer puede ser nil.
type InvoicePDFGenerator interface {
	Generate(invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
