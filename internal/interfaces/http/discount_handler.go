package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/usecase"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

// DiscountHandler documentos de descuento.
type DiscountHandler struct {
	uc *usecase.DiscountUseCase
	v  *Validator
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *usecase.DiscountUseCase, v *Validator) *DiscountHandler {
	return &DiscountHandler{uc: uc, v: v}
}

// List godoc
// @Summary      Listar documentos de descuento
// @Tags         discounts
// @Produce      json
// @Param        type         query     string  false  "PRODUCT, SUPPLIER o BUYER"
// @Param        entity_id    query     int     false  "Contraparte o producto asociado"
// @Param        active_only  query     bool    false  "Solo activos"
// @Success      200          {array}   dto.DiscountDocumentResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/discounts [get]
func (h *DiscountHandler) List(c *fiber.Ctx) error {
	entityID, err := queryInt64Ptr(c, "entity_id")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	f := repository.DiscountFilter{
		Type:       c.Query("type"),
		EntityID:   entityID,
		ActiveOnly: c.QueryBool("active_only", false),
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento de descuento
// @Tags         discounts
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.DiscountDocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/discounts/{id} [get]
func (h *DiscountHandler) GetByID(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Crear documento de descuento
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.DiscountDocumentRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.DiscountDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/discounts [post]
func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	var in dto.DiscountDocumentRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar documento de descuento
// @Description  Reemplaza la cabecera y todas las líneas.
// @Tags         discounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                          true  "ID"
// @Param        body  body      dto.DiscountDocumentRequest  true  "Documento completo"
// @Success      200   {object}  dto.DiscountDocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/discounts/{id} [put]
func (h *DiscountHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.DiscountDocumentRequest
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
// @Summary      Eliminar documento de descuento
// @Tags         discounts
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/discounts/{id} [delete]
func (h *DiscountHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
