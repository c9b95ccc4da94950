package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator valida DTOs de entrada con tags `validate`, reportando nombres JSON.
type Validator struct {
	validate *validator.Validate
}

// NewValidator construye el validador.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate devuelve un error legible con el primer campo inválido.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("%s: regla %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%s: regla %s", fe.Namespace(), fe.Tag())
	}
	return err
}

// bindJSON parsea el cuerpo y lo valida. Escribe la respuesta de error si falla.
func bindJSON(c *fiber.Ctx, v *Validator, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := v.Validate(out); err != nil {
		return false, badRequest(c, "VALIDATION", err.Error())
	}
	return true, nil
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt64Ptr lee un query param opcional. "", "null" y "root" se tratan como nil.
func queryInt64Ptr(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" || raw == "null" || raw == "root" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s inválido", name)
	}
	return &id, nil
}

// queryInt64List lee una lista separada por comas ("1,2,3").
func queryInt64List(c *fiber.Ctx, name string) ([]int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	var out []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s inválido: %q", name, part)
		}
		out = append(out, id)
	}
	return out, nil
}

// queryList lee una lista de strings separada por comas.
func queryList(c *fiber.Ctx, name string) []string {
	var out []string
	for _, part := range strings.Split(c.Query(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
