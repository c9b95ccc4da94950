package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/invoicing"
	"github.com/anbar/anbar-api/internal/domain/repository"
	"github.com/anbar/anbar-api/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

var invoiceSortFields = map[string]bool{
	"invoice_number": true,
	"invoice_date":   true,
	"total_amount":   true,
	"created_at":     true,
	"customer_name":  true,
}

// InvoiceUseCase facturas de un tipo (venta o compra). Mientras una factura
// está activa sus líneas afectan el almacén: la compra suma, la venta resta.
// Alta, cambio de estado, reemplazo de líneas y baja aplican la diferencia
// en la misma transacción que la escritura de la factura.
type InvoiceUseCase struct {
	kind     entity.InvoiceKind
	invoices repository.InvoiceRepository
	tx       ports.TxRunner
	log      *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso para kind.
func NewInvoiceUseCase(kind entity.InvoiceKind, invoices repository.InvoiceRepository, tx ports.TxRunner, log *logger.Logger) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		kind:     kind,
		invoices: invoices,
		tx:       tx,
		log:      log.Component(string(kind) + "_invoices"),
	}
}

// Kind tipo de factura que maneja el caso de uso.
func (uc *InvoiceUseCase) Kind() entity.InvoiceKind { return uc.kind }

// Create numera la factura (SQ/AQ + 8 dígitos), calcula totales y, si nace
// activa, aplica su efecto en el almacén.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	items, err := buildItems(in.Items)
	if err != nil {
		return nil, err
	}
	active := uc.kind.DefaultActive()
	if in.IsActive != nil {
		active = *in.IsActive
	}
	inv := &entity.Invoice{
		Kind:        uc.kind,
		CustomerID:  in.CustomerID,
		InvoiceDate: in.InvoiceDate,
		PaymentDate: in.PaymentDate,
		Notes:       in.Notes,
		IsActive:    active,
		Items:       items,
		TotalAmount: invoicing.InvoiceTotal(items),
	}
	err = uc.tx.Run(ctx, func(repos ports.Repos) error {
		if err := requireCustomer(ctx, repos, in.CustomerID); err != nil {
			return err
		}
		last, err := repos.Invoices.LastNumber(ctx, uc.kind)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = invoicing.NextNumber(uc.kind.Prefix(), last)
		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if !active {
			return nil
		}
		return uc.applyStock(ctx, repos, inv.ID, invoicing.StockDeltas(uc.kind, inv.Items))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("invoice_id", inv.ID).Str("number", inv.InvoiceNumber).Bool("active", active).Msg("factura creada")
	return uc.GetByID(ctx, inv.ID)
}

// GetByID factura con sus líneas; nil si no existe.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, uc.kind, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	return toInvoiceResponse(inv), nil
}

// Update cambia la cabecera y, si se envían, reemplaza las líneas. El almacén
// recibe la diferencia entre el efecto anterior y el nuevo.
func (uc *InvoiceUseCase) Update(ctx context.Context, id int64, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var newItems []entity.InvoiceItem
	if in.Items != nil {
		items, err := buildItems(*in.Items)
		if err != nil {
			return nil, err
		}
		newItems = items
	}
	err := uc.tx.Run(ctx, func(repos ports.Repos) error {
		cur, err := repos.Invoices.GetByID(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		var before []invoicing.StockDelta
		if cur.IsActive {
			before = invoicing.StockDeltas(uc.kind, cur.Items)
		}

		if in.CustomerID != nil {
			if err := requireCustomer(ctx, repos, in.CustomerID); err != nil {
				return err
			}
			cur.CustomerID = in.CustomerID
		}
		if in.InvoiceDate != nil {
			cur.InvoiceDate = in.InvoiceDate
		}
		if in.PaymentDate != nil {
			cur.PaymentDate = in.PaymentDate
		}
		if in.Notes != nil {
			cur.Notes = in.Notes
		}
		if in.IsActive != nil {
			cur.IsActive = *in.IsActive
		}
		if in.Items != nil {
			cur.Items = newItems
			if err := repos.Invoices.ReplaceItems(ctx, uc.kind, id, newItems); err != nil {
				return err
			}
		}
		cur.TotalAmount = invoicing.InvoiceTotal(cur.Items)
		if err := repos.Invoices.UpdateHeader(ctx, cur); err != nil {
			return err
		}

		var after []invoicing.StockDelta
		if cur.IsActive {
			after = invoicing.StockDeltas(uc.kind, cur.Items)
		}
		return uc.applyStock(ctx, repos, id, invoicing.Merge(invoicing.Reverse(before), after))
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// SetStatus activa o desactiva la factura. Sin cambio de estado no toca el almacén.
func (uc *InvoiceUseCase) SetStatus(ctx context.Context, id int64, active bool) (*dto.InvoiceResponse, error) {
	err := uc.tx.Run(ctx, func(repos ports.Repos) error {
		cur, err := repos.Invoices.GetByID(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		if cur.IsActive == active {
			return nil
		}
		if err := repos.Invoices.SetActive(ctx, uc.kind, id, active); err != nil {
			return err
		}
		deltas := invoicing.StockDeltas(uc.kind, cur.Items)
		if !active {
			deltas = invoicing.Reverse(deltas)
		}
		return uc.applyStock(ctx, repos, id, deltas)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina la factura revirtiendo su efecto si estaba activa.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(repos ports.Repos) error {
		cur, err := repos.Invoices.GetByID(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		if cur.IsActive {
			if err := uc.applyStock(ctx, repos, id, invoicing.Reverse(invoicing.StockDeltas(uc.kind, cur.Items))); err != nil {
				return err
			}
		}
		return repos.Invoices.Delete(ctx, uc.kind, id)
	})
}

// List facturas con búsqueda por número, orden y paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceListRequest) (*dto.InvoiceListResponse, error) {
	in.Normalize(50, 1000)
	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	if !invoiceSortFields[sortBy] {
		return nil, fmt.Errorf("%w: sort_by %q", domain.ErrInvalidInput, in.SortBy)
	}
	desc := true
	switch strings.ToLower(in.Order) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return nil, fmt.Errorf("%w: order %q", domain.ErrInvalidInput, in.Order)
	}
	list, total, err := uc.invoices.List(ctx, repository.InvoiceFilter{
		Kind:   uc.kind,
		Search: strings.TrimSpace(in.Search),
		SortBy: sortBy,
		Desc:   desc,
		Limit:  in.Limit,
		Offset: in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{Data: out, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

func (uc *InvoiceUseCase) applyStock(ctx context.Context, repos ports.Repos, invoiceID int64, deltas []invoicing.StockDelta) error {
	for _, d := range deltas {
		if err := repos.Stock.AddQuantity(ctx, d.ProductID, d.Delta); err != nil {
			return fmt.Errorf("stock producto %d: %w", d.ProductID, err)
		}
		uc.log.Debug().Int64("invoice_id", invoiceID).Int64("product_id", d.ProductID).Str("delta", d.Delta.String()).Msg("stock ajustado")
	}
	return nil
}

func requireCustomer(ctx context.Context, repos ports.Repos, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := repos.Customers.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: contraparte %d", domain.ErrNotFound, *id)
	}
	return nil
}

// buildItems valida las líneas y calcula su total cuando el cliente no lo envía.
func buildItems(in []dto.InvoiceItemRequest) ([]entity.InvoiceItem, error) {
	out := make([]entity.InvoiceItem, 0, len(in))
	for i, it := range in {
		if !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: cantidad o precio", domain.ErrInvalidInput, i+1)
		}
		if !validPercent(it.DiscountAuto) || !validPercent(it.DiscountManual) {
			return nil, fmt.Errorf("%w: línea %d: descuento fuera de 0-100", domain.ErrInvalidInput, i+1)
		}
		total := invoicing.LineTotal(it.Quantity, it.UnitPrice, it.DiscountAuto, it.DiscountManual)
		if it.TotalPrice != nil {
			if it.TotalPrice.IsNegative() {
				return nil, fmt.Errorf("%w: línea %d: total negativo", domain.ErrInvalidInput, i+1)
			}
			total = *it.TotalPrice
		}
		out = append(out, entity.InvoiceItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAuto:   it.DiscountAuto,
			DiscountManual: it.DiscountManual,
			TotalPrice:     total,
		})
	}
	return out, nil
}

func validPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && !d.GreaterThan(hundred)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAuto:   it.DiscountAuto,
			DiscountManual: it.DiscountManual,
			TotalPrice:     it.TotalPrice,
		})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		Kind:          string(inv.Kind),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		TotalAmount:   inv.TotalAmount,
		InvoiceDate:   inv.InvoiceDate,
		PaymentDate:   inv.PaymentDate,
		Notes:         inv.Notes,
		IsActive:      inv.IsActive,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
