package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/anbar/anbar-api/internal/application/billing"
	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

// InvoiceHandler CRUD de facturas de un tipo (venta o compra).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
	v  *Validator
}

// NewInvoiceHandler construye el handler para el tipo del caso de uso.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, v *Validator) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Crear factura
// @Description  Ventas (/api/orders) nacen como borrador y compras (/api/purchase-invoices) activas. El número se asigna SQ/AQ + 8 dígitos.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
// @Router       /api/purchase-invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
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
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        search   query     string  false  "Número de factura"
// @Param        sort_by  query     string  false  "invoice_number, invoice_date, total_amount, created_at, customer_name"
// @Param        order    query     string  false  "asc o desc"
// @Param        page     query     int     false  "Página"
// @Param        limit    query     int     false  "Tamaño de página"
// @Success      200      {object}  dto.InvoiceListResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/orders [get]
// @Router       /api/purchase-invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	in := dto.InvoiceListRequest{
		Search:      c.Query("search"),
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
		PageRequest: dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)},
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
// @Router       /api/purchase-invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar factura
// @Description  items presente reemplaza las líneas; si la factura está activa se revierte y re-aplica el efecto en almacén.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "ID"
// @Param        body  body      dto.UpdateInvoiceRequest  true  "Cambios"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
// @Router       /api/purchase-invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.UpdateInvoiceRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Activar o desactivar factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "ID"
// @Param        body  body      dto.InvoiceStatusRequest  true  "is_active"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
// @Router       /api/purchase-invoices/{id}/status [patch]
func (h *InvoiceHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.InvoiceStatusRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.SetStatus(c.UserContext(), id, in.IsActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
// @Router       /api/purchase-invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InvoicePDFHandler descarga de facturas en PDF.
type InvoicePDFHandler struct {
	uc *billing.PDFUseCase
}

// NewInvoicePDFHandler construye el handler.
func NewInvoicePDFHandler(uc *billing.PDFUseCase) *InvoicePDFHandler {
	return &InvoicePDFHandler{uc: uc}
}

// Download godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        kind  path      string  true  "sale o purchase"
// @Param        id    path      int     true  "ID"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{kind}/{id}/pdf [get]
func (h *InvoicePDFHandler) Download(c *fiber.Ctx) error {
	kind := entity.InvoiceKind(c.Params("kind"))
	if !kind.Valid() {
		return badRequest(c, "INVALID_KIND", "kind debe ser sale o purchase")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	body, filename, err := h.uc.DownloadInvoicePDF(c.UserContext(), kind, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
