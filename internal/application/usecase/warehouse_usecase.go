package usecase

import (
	"context"
	"fmt"

	appcatalog "github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

// WarehouseUseCase consulta y ajuste manual de las filas de almacén.
type WarehouseUseCase struct {
	repo repository.StockRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.StockRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// List filas de almacén con su producto.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.StockResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStockResponse(s))
	}
	return out, nil
}

// Update fija la existencia de la fila id.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int64, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	if in.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetQuantity(ctx, id, in.Quantity); err != nil {
		return nil, err
	}
	s, err = uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStockResponse(s)
	return &resp, nil
}

func toStockResponse(s *entity.Stock) dto.StockResponse {
	out := dto.StockResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Product != nil {
		out.Product = appcatalog.ToProductResponse(s.Product)
		if s.Product.MinStock != nil {
			out.BelowMinimum = s.Quantity.LessThan(*s.Product.MinStock)
		}
	}
	return out
}
