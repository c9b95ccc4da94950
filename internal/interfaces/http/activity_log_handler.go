package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/usecase"
)

// ActivityLogHandler auditoría enviada por el cliente.
type ActivityLogHandler struct {
	uc *usecase.ActivityLogUseCase
	v  *Validator
}

// NewActivityLogHandler construye el handler.
func NewActivityLogHandler(uc *usecase.ActivityLogUseCase, v *Validator) *ActivityLogHandler {
	return &ActivityLogHandler{uc: uc, v: v}
}

// Ingest godoc
// @Summary      Registrar lote de actividad
// @Description  Las entradas con id ya registrado se ignoran.
// @Tags         logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ActivityLogBatchRequest  true  "Lote"
// @Success      201   {object}  dto.ActivityLogBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/logs [post]
func (h *ActivityLogHandler) Ingest(c *fiber.Ctx) error {
	var in dto.ActivityLogBatchRequest
	if ok, err := bindJSON(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Ingest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOwn godoc
// @Summary      Actividad del usuario autenticado
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        category  query     string  false  "Categoría"
// @Param        level     query     string  false  "info, warning, error o success"
// @Param        from      query     string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to        query     string  false  "RFC3339 o YYYY-MM-DD"
// @Param        page      query     int     false  "Página"
// @Param        limit     query     int     false  "Tamaño de página"
// @Success      200       {object}  dto.ActivityLogListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *ActivityLogHandler) ListOwn(c *fiber.Ctx) error {
	q, ok, err := parseLogQuery(c)
	if !ok {
		return err
	}
	uid := GetUserID(c)
	return h.list(c, &uid, q)
}

// ListAll godoc
// @Summary      Actividad de todos los usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        category  query     string  false  "Categoría"
// @Param        level     query     string  false  "Nivel"
// @Param        user_id   query     int     false  "Filtra por usuario"
// @Param        from      query     string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to        query     string  false  "RFC3339 o YYYY-MM-DD"
// @Param        page      query     int     false  "Página"
// @Param        limit     query     int     false  "Tamaño de página"
// @Success      200       {object}  dto.ActivityLogListResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Router       /api/admin/logs [get]
func (h *ActivityLogHandler) ListAll(c *fiber.Ctx) error {
	q, ok, err := parseLogQuery(c)
	if !ok {
		return err
	}
	uid, perr := queryInt64Ptr(c, "user_id")
	if perr != nil {
		return badRequest(c, "VALIDATION", perr.Error())
	}
	return h.list(c, uid, q)
}

func (h *ActivityLogHandler) list(c *fiber.Ctx, userID *int64, q dto.ActivityLogQuery) error {
	out, err := h.uc.List(c.UserContext(), userID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Borrar la actividad propia
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/logs [delete]
func (h *ActivityLogHandler) Clear(c *fiber.Ctx) error {
	n, err := h.uc.Clear(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": n})
}

func parseLogQuery(c *fiber.Ctx) (dto.ActivityLogQuery, bool, error) {
	q := dto.ActivityLogQuery{
		Category:    c.Query("category"),
		Level:       c.Query("level"),
		PageRequest: dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)},
	}
	var err error
	if q.From, err = parseTimeParam(c.Query("from"), false); err != nil {
		return q, false, badRequest(c, "VALIDATION", "from inválido")
	}
	if q.To, err = parseTimeParam(c.Query("to"), true); err != nil {
		return q, false, badRequest(c, "VALIDATION", "to inválido")
	}
	return q, true, nil
}

// parseTimeParam acepta RFC3339 o fecha; con endOfDay una fecha cubre el día completo.
func parseTimeParam(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
