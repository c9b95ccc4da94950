package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	discounts *usecase.DiscountUseCase
	v         *Validator
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, discounts *usecase.DiscountUseCase, v *Validator) *ProductHandler {
	return &ProductHandler{uc: uc, discounts: discounts, v: v}
}

// Create godoc
// @Summary      Crear producto
// @Description  Crea también su fila de almacén con existencia 0.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        search       query  string  false  "Búsqueda en nombre, código y código de barras"
// @Param        category_id  query  int     false  "Categoría"
// @Param        ids          query  string  false  "IDs separados por coma"
// @Param        page         query  int     false  "Página (desde 1)"
// @Param        limit        query  int     false  "Tamaño de página (máx. 500)"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	categoryID, err := queryInt64Ptr(c, "category_id")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	ids, err := queryInt64List(c, "ids")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	in := dto.ProductListRequest{
		Search:      c.Query("search"),
		CategoryID:  categoryID,
		IDs:         ids,
		PageRequest: dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)},
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Discounts godoc
// @Summary      Descuentos vigentes del producto
// @Tags         products
// @Produce      json
// @Param        id    path      int     true   "ID del producto"
// @Param        date  query     string  false  "Fecha YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.ProductDiscountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/discounts [get]
func (h *ProductHandler) Discounts(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	at := time.Now()
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "date debe tener formato YYYY-MM-DD")
		}
		at = d
	}
	out, err := h.discounts.ForProduct(c.UserContext(), id, at)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
