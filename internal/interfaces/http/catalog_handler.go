package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/application/dto"
)

// CatalogHandler expone el navegador de categorías: árbol, grilla, migas, navegación y movimientos.
type CatalogHandler struct {
	browser *catalog.BrowserUseCase
	mover   *catalog.MoveUseCase
	v       *Validator
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(browser *catalog.BrowserUseCase, mover *catalog.MoveUseCase, v *Validator) *CatalogHandler {
	return &CatalogHandler{browser: browser, mover: mover, v: v}
}

// Tree godoc
// @Summary      Árbol de categorías
// @Tags         catalog
// @Produce      json
// @Param        parent_id  query     int  false  "Subárbol bajo esta categoría (vacío = raíz)"
// @Success      200        {array}   dto.TreeNodeResponse
// @Router       /api/catalog/tree [get]
func (h *CatalogHandler) Tree(c *fiber.Ctx) error {
	parentID, err := queryInt64Ptr(c, "parent_id")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.browser.Tree(c.UserContext(), parentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Grid godoc
// @Summary      Grilla de la carpeta actual
// @Description  Con search se busca en todo el catálogo y se ignoran los filtros.
// @Tags         catalog
// @Produce      json
// @Param        category_id  query     int     false  "Carpeta seleccionada (vacío = raíz)"
// @Param        search       query     string  false  "Búsqueda global"
// @Param        filters      query     string  false  "Arreglo JSON de reglas {component, condition, value}"
// @Success      200          {object}  dto.GridResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/catalog/grid [get]
func (h *CatalogHandler) Grid(c *fiber.Ctx) error {
	categoryID, err := queryInt64Ptr(c, "category_id")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	in := dto.GridRequest{CategoryID: categoryID, Search: c.Query("search"), Filters: c.Query("filters")}
	out, err := h.browser.Grid(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Breadcrumbs godoc
// @Summary      Migas de una categoría
// @Tags         catalog
// @Produce      json
// @Param        id   path      int  true  "ID de la categoría"
// @Success      200  {array}   dto.CrumbResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/breadcrumbs/{id} [get]
func (h *CatalogHandler) Breadcrumbs(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.browser.Breadcrumbs(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MoveTargets godoc
// @Summary      Categorías destino válidas para mover una selección
// @Tags         catalog
// @Produce      json
// @Param        item_ids  query     string  false  "Ítems separados por coma (prod_<id>, cat_<id>)"
// @Success      200       {array}   dto.MoveTargetResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/catalog/move-targets [get]
func (h *CatalogHandler) MoveTargets(c *fiber.Ctx) error {
	out, err := h.browser.MoveTargets(c.UserContext(), queryList(c, "item_ids"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Navigate godoc
// @Summary      Aplicar un evento de navegación
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      dto.NavigateRequest  true  "Estado y evento"
// @Success      200   {object}  dto.NavigateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/navigate [post]
func (h *CatalogHandler) Navigate(c *fiber.Ctx) error {
	var in dto.NavigateRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.browser.Navigate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover productos y categorías
// @Description  Las categorías que crearían un ciclo se rechazan individualmente; el resto se aplica.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MoveItemsRequest  true  "Ítems y categoría destino (null = raíz)"
// @Success      200   {object}  dto.MoveItemsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/move [post]
func (h *CatalogHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveItemsRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.mover.Move(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
