package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para compradores y proveedores.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo comprador/proveedor. Tipo vacío = BUYER.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c := &entity.Customer{Type: entity.CustomerBuyer, IsActive: true, Balance: decimal.Zero, PermanentDiscount: decimal.Zero}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID obtiene un comprador/proveedor; nil si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCustomerResponse(c), nil
}

// Update reemplaza los datos del comprador/proveedor.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete elimina un comprador/proveedor.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// List lista por tipo (incluye siempre BOTH) y búsqueda, paginado.
func (uc *CustomerUseCase) List(ctx context.Context, typ, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	if typ != "" && !entity.ValidCustomerType(typ) {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, typ)
	}
	page.Normalize(50, 1000)
	list, total, err := uc.repo.List(ctx, repository.CustomerFilter{
		Type:   typ,
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Data: out, Pagination: dto.NewPagination(page, total)}, nil
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if in.Type != "" {
		if !entity.ValidCustomerType(in.Type) {
			return fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
		}
		c.Type = in.Type
	}
	c.Name = name
	c.Code = in.Code
	if c.Code != nil && strings.TrimSpace(*c.Code) == "" {
		c.Code = nil
	}
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	c.FolderID = in.FolderID
	if in.Balance != nil {
		c.Balance = *in.Balance
	}
	if in.PermanentDiscount != nil {
		if in.PermanentDiscount.IsNegative() || in.PermanentDiscount.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: permanent_discount fuera de 0-100", domain.ErrInvalidInput)
		}
		c.PermanentDiscount = *in.PermanentDiscount
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                c.ID,
		Code:              c.Code,
		Name:              c.Name,
		Phone:             c.Phone,
		Email:             c.Email,
		Address:           c.Address,
		Balance:           c.Balance,
		PermanentDiscount: c.PermanentDiscount,
		FolderID:          c.FolderID,
		Type:              c.Type,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
