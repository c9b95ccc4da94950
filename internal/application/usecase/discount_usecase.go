package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var hundredPercent = decimal.NewFromInt(100)

// DiscountUseCase documentos de descuento y descuento efectivo por producto.
type DiscountUseCase struct {
	repo repository.DiscountRepository
	tx   ports.TxRunner
}

// NewDiscountUseCase construye el caso de uso.
func NewDiscountUseCase(repo repository.DiscountRepository, tx ports.TxRunner) *DiscountUseCase {
	return &DiscountUseCase{repo: repo, tx: tx}
}

// Create da de alta un documento con sus líneas.
func (uc *DiscountUseCase) Create(ctx context.Context, in dto.DiscountDocumentRequest) (*dto.DiscountDocumentResponse, error) {
	doc, err := buildDiscountDocument(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return toDiscountResponse(doc), nil
}

// GetByID documento con sus líneas; nil si no existe.
func (uc *DiscountUseCase) GetByID(ctx context.Context, id int64) (*dto.DiscountDocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return toDiscountResponse(doc), nil
}

// Update reemplaza cabecera y líneas en una transacción.
func (uc *DiscountUseCase) Update(ctx context.Context, id int64, in dto.DiscountDocumentRequest) (*dto.DiscountDocumentResponse, error) {
	doc, err := buildDiscountDocument(in)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	err = uc.tx.Run(ctx, func(repos ports.Repos) error {
		cur, err := repos.Discounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		if err := repos.Discounts.Update(ctx, doc); err != nil {
			return err
		}
		return repos.Discounts.ReplaceItems(ctx, id, doc.Items)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina el documento y sus líneas.
func (uc *DiscountUseCase) Delete(ctx context.Context, id int64) error {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// List documentos filtrados, más recientes primero.
func (uc *DiscountUseCase) List(ctx context.Context, f repository.DiscountFilter) ([]dto.DiscountDocumentResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscountDocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDiscountResponse(d))
	}
	return out, nil
}

// ForProduct capas de descuento vigentes para el producto en at. El total
// es la suma de las capas con tope en 100.
func (uc *DiscountUseCase) ForProduct(ctx context.Context, productID int64, at time.Time) (*dto.ProductDiscountResponse, error) {
	applied, err := uc.repo.ActiveForProduct(ctx, productID, at)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	layers := make([]dto.AppliedDiscountResponse, 0, len(applied))
	for _, a := range applied {
		total = total.Add(a.DiscountPercent)
		layers = append(layers, dto.AppliedDiscountResponse{
			DocumentID:      a.DocumentID,
			DocumentNumber:  a.DocumentNumber,
			DocumentDate:    a.DocumentDate,
			DiscountPercent: a.DiscountPercent,
		})
	}
	if total.GreaterThan(hundredPercent) {
		total = hundredPercent
	}
	return &dto.ProductDiscountResponse{ProductID: productID, At: at, TotalPercent: total, Layers: layers}, nil
}

func buildDiscountDocument(in dto.DiscountDocumentRequest) (*entity.DiscountDocument, error) {
	number := strings.TrimSpace(in.DocumentNumber)
	if number == "" || in.DocumentDate.IsZero() {
		return nil, fmt.Errorf("%w: número y fecha del documento son obligatorios", domain.ErrInvalidInput)
	}
	switch in.Type {
	case "PRODUCT", "SUPPLIER", "BUYER":
	default:
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	start := in.DocumentDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	end := start
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	items := make([]entity.DiscountItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.DiscountPercent.IsNegative() || it.DiscountPercent.GreaterThan(hundredPercent) {
			return nil, fmt.Errorf("%w: línea de descuento", domain.ErrInvalidInput)
		}
		items = append(items, entity.DiscountItem{
			ProductID:       it.ProductID,
			DiscountPercent: it.DiscountPercent,
			Description:     it.Description,
		})
	}
	return &entity.DiscountDocument{
		DocumentNumber: number,
		DocumentDate:   in.DocumentDate,
		StartDate:      start,
		EndDate:        end,
		Type:           in.Type,
		EntityID:       in.EntityID,
		Notes:          in.Notes,
		IsActive:       active,
		Items:          items,
	}, nil
}

func toDiscountResponse(d *entity.DiscountDocument) *dto.DiscountDocumentResponse {
	items := make([]dto.DiscountItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DiscountItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			DiscountPercent: it.DiscountPercent,
			Description:     it.Description,
		})
	}
	return &dto.DiscountDocumentResponse{
		ID:             d.ID,
		DocumentNumber: d.DocumentNumber,
		DocumentDate:   d.DocumentDate,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Type:           d.Type,
		EntityID:       d.EntityID,
		Notes:          d.Notes,
		IsActive:       d.IsActive,
		Items:          items,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
