package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anbar/anbar-api/internal/application/billing"
	"github.com/anbar/anbar-api/internal/application/dto"
)

// CustomerHandler compradores y proveedores.
type CustomerHandler struct {
	uc *billing.CustomerUseCase
	v  *Validator
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase, v *Validator) *CustomerHandler {
	return &CustomerHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Crear comprador/proveedor
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerRequest  true  "Datos"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar compradores/proveedores
// @Description  type=SUPPLIER o BUYER incluye también los de tipo BOTH.
// @Tags         customers
// @Produce      json
// @Param        type    query     string  false  "BUYER, SUPPLIER o BOTH"
// @Param        search  query     string  false  "Nombre, código o teléfono"
// @Param        page    query     int     false  "Página"
// @Param        limit   query     int     false  "Tamaño de página"
// @Success      200     {object}  dto.CustomerListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)}
	out, err := h.uc.List(c.UserContext(), c.Query("type"), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comprador/proveedor
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar comprador/proveedor
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "ID"
// @Param        body  body      dto.CustomerRequest  true  "Datos completos"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.CustomerRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar comprador/proveedor
// @Tags         customers
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
