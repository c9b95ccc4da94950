package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/pkg/textmatch"
)

// Condition condición de una regla de filtro avanzado.
type Condition string

const (
	CondEquals         Condition = "equals"
	CondNotEquals      Condition = "not_equals"
	CondIn             Condition = "in"
	CondNotIn          Condition = "not_in"
	CondContains       Condition = "contains"
	CondNotContains    Condition = "not_contains"
	CondStartsWith     Condition = "starts_with"
	CondNotStartsWith  Condition = "not_starts_with"
	CondGreater        Condition = "greater"
	CondGreaterOrEqual Condition = "greater_or_equal"
	CondLess           Condition = "less"
	CondLessOrEqual    Condition = "less_or_equal"
	CondIsSet          Condition = "is_set"
	CondIsNotSet       Condition = "is_not_set"
)

// IsList indica si la condición trabaja sobre una lista de valores.
func (c Condition) IsList() bool {
	return c == CondIn || c == CondNotIn
}

type fieldKind int

const (
	fieldPlain fieldKind = iota
	fieldRef             // referencia a producto: se compara el id
	fieldID              // id numérico (category_id)
	fieldNumber
)

type fieldSpec struct {
	name string
	kind fieldKind
}

// componentFields traduce el componente lógico al atributo del producto.
var componentFields = map[string]fieldSpec{
	"product":        {"id", fieldRef},
	"code":           {"code", fieldPlain},
	"barcode":        {"barcode", fieldPlain},
	"article":        {"article", fieldPlain},
	"brand":          {"brand", fieldPlain},
	"model":          {"model", fieldPlain},
	"category":       {"category_id", fieldID},
	"name":           {"name", fieldPlain},
	"type":           {"type", fieldPlain},
	"color":          {"color", fieldPlain},
	"size":           {"size", fieldPlain},
	"country":        {"country", fieldPlain},
	"manufacturer":   {"manufacturer", fieldPlain},
	"unit":           {"unit", fieldPlain},
	"sale_price":     {"sale_price", fieldNumber},
	"purchase_price": {"purchase_price", fieldNumber},
}

// Components lista los componentes filtrables.
func Components() []string {
	out := make([]string, 0, len(componentFields))
	for k := range componentFields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Rule regla ya validada y con el valor en su forma definitiva.
type Rule interface {
	Component() string
	Condition() Condition
	Match(p *entity.Product) bool
}

// value valor escalar normalizado. Set=false representa null.
type value struct {
	Set  bool
	Text string
	ID   int64
	Num  decimal.Decimal
}

// ScalarRule regla con un único valor (o sin valor, para is_set/is_not_set).
type ScalarRule struct {
	component string
	field     fieldSpec
	cond      Condition
	value     value
}

// ListRule regla in/not_in. Lista vacía = sin restricción.
type ListRule struct {
	component string
	field     fieldSpec
	cond      Condition
	values    []value
}

func (r ScalarRule) Component() string    { return r.component }
func (r ScalarRule) Condition() Condition { return r.cond }
func (r ListRule) Component() string      { return r.component }
func (r ListRule) Condition() Condition   { return r.cond }

// Value valor de la regla escalar como texto ("" si es null).
func (r ScalarRule) Value() string { return r.value.Text }

// Len cantidad de valores de la regla de lista.
func (r ListRule) Len() int { return len(r.values) }

// Match evalúa la regla escalar sobre p.
func (r ScalarRule) Match(p *entity.Product) bool {
	switch r.cond {
	case CondEquals:
		return r.equals(p)
	case CondNotEquals:
		return !r.equals(p)
	case CondIsSet:
		return fieldPresent(p, r.field)
	case CondIsNotSet:
		return !fieldPresent(p, r.field)
	case CondContains:
		return textmatch.Contains(fieldText(p, r.field), r.value.Text)
	case CondNotContains:
		return !textmatch.Contains(fieldText(p, r.field), r.value.Text)
	case CondStartsWith:
		return textmatch.HasPrefix(fieldText(p, r.field), r.value.Text)
	case CondNotStartsWith:
		return !textmatch.HasPrefix(fieldText(p, r.field), r.value.Text)
	case CondGreater, CondGreaterOrEqual, CondLess, CondLessOrEqual:
		n := fieldNumberValue(p, r.field)
		cmp := n.Cmp(r.value.Num)
		switch r.cond {
		case CondGreater:
			return cmp > 0
		case CondGreaterOrEqual:
			return cmp >= 0
		case CondLess:
			return cmp < 0
		default:
			return cmp <= 0
		}
	}
	return false
}

func (r ScalarRule) equals(p *entity.Product) bool {
	switch r.field.kind {
	case fieldRef:
		return r.value.Set && p.ID == r.value.ID
	case fieldNumber:
		return r.value.Set && fieldNumberValue(p, r.field).Equal(r.value.Num)
	default:
		return textmatch.Equal(fieldText(p, r.field), r.value.Text)
	}
}

// Match evalúa la regla de lista sobre p.
func (r ListRule) Match(p *entity.Product) bool {
	if len(r.values) == 0 {
		return true
	}
	hit := r.anyMatch(p)
	if r.cond == CondNotIn {
		return !hit
	}
	return hit
}

func (r ListRule) anyMatch(p *entity.Product) bool {
	field := fieldText(p, r.field)
	for _, v := range r.values {
		switch r.field.kind {
		case fieldRef:
			if v.Set && v.ID == p.ID {
				return true
			}
		case fieldID:
			if v.Set && textmatch.Equal(field, v.Text) {
				return true
			}
		case fieldNumber:
			if v.Set && fieldNumberValue(p, r.field).Equal(v.Num) {
				return true
			}
		default:
			if v.Set && textmatch.Contains(field, v.Text) {
				return true
			}
		}
	}
	return false
}

// Matches indica si p cumple todas las reglas (AND). Sin reglas, siempre true.
func Matches(p *entity.Product, rules []Rule) bool {
	for _, r := range rules {
		if !r.Match(p) {
			return false
		}
	}
	return true
}

// RawRule forma de la regla tal como llega por la API.
type RawRule struct {
	Component string          `json:"component"`
	Condition Condition       `json:"condition"`
	Value     json.RawMessage `json:"value"`
}

// ParseRules decodifica un arreglo JSON de reglas. Vacío o "null" = sin reglas.
func ParseRules(data []byte) ([]Rule, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var raws []RawRule
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRule, err)
	}
	rules := make([]Rule, 0, len(raws))
	for i, raw := range raws {
		r, err := ParseRule(raw.Component, raw.Condition, raw.Value)
		if err != nil {
			return nil, fmt.Errorf("regla %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ParseRule valida la regla y fija la forma del valor según la condición:
// in/not_in envuelven un escalar en una lista (null = lista vacía); el resto
// toma el primer elemento de una lista (lista vacía = null).
func ParseRule(component string, cond Condition, raw json.RawMessage) (Rule, error) {
	field, ok := componentFields[component]
	if !ok {
		return nil, fmt.Errorf("%w: componente %q", domain.ErrInvalidRule, component)
	}
	if err := checkCondition(field, cond); err != nil {
		return nil, err
	}
	decoded, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}

	if cond.IsList() {
		var elems []any
		switch v := decoded.(type) {
		case nil:
		case []any:
			elems = v
		default:
			elems = []any{v}
		}
		values := make([]value, 0, len(elems))
		for _, e := range elems {
			val, err := toValue(field, e)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
		}
		return ListRule{component: component, field: field, cond: cond, values: values}, nil
	}

	if arr, isArr := decoded.([]any); isArr {
		decoded = nil
		if len(arr) > 0 {
			decoded = arr[0]
		}
	}
	val, err := toValue(field, decoded)
	if err != nil {
		return nil, err
	}
	switch cond {
	case CondGreater, CondGreaterOrEqual, CondLess, CondLessOrEqual:
		if !val.Set {
			return nil, fmt.Errorf("%w: %s requiere un valor numérico", domain.ErrInvalidRule, cond)
		}
	}
	return ScalarRule{component: component, field: field, cond: cond, value: val}, nil
}

func checkCondition(field fieldSpec, cond Condition) error {
	switch cond {
	case CondEquals, CondNotEquals, CondIn, CondNotIn:
		return nil
	case CondIsSet, CondIsNotSet:
		if field.kind != fieldRef {
			return nil
		}
	case CondContains, CondNotContains, CondStartsWith, CondNotStartsWith:
		if field.kind == fieldPlain {
			return nil
		}
	case CondGreater, CondGreaterOrEqual, CondLess, CondLessOrEqual:
		if field.kind == fieldNumber {
			return nil
		}
	}
	return fmt.Errorf("%w: condición %q no aplica a %q", domain.ErrInvalidRule, cond, field.name)
}

func decodeAny(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: valor: %v", domain.ErrInvalidRule, err)
	}
	return v, nil
}

// toValue normaliza un elemento. Un objeto aporta su "id" (o su "name").
func toValue(field fieldSpec, v any) (value, error) {
	if obj, ok := v.(map[string]any); ok {
		if id, has := obj["id"]; has {
			v = id
		} else if name, has := obj["name"]; has {
			v = name
		} else {
			return value{}, fmt.Errorf("%w: objeto sin id", domain.ErrInvalidRule)
		}
	}

	var text string
	switch x := v.(type) {
	case nil:
		return value{}, nil
	case string:
		text = x
	case json.Number:
		text = x.String()
	case bool:
		text = strconv.FormatBool(x)
	default:
		return value{}, fmt.Errorf("%w: valor no escalar", domain.ErrInvalidRule)
	}

	out := value{Set: true, Text: text}
	switch field.kind {
	case fieldRef:
		id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return value{}, fmt.Errorf("%w: id de producto %q", domain.ErrInvalidRule, text)
		}
		out.ID = id
	case fieldNumber:
		n, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			return value{}, fmt.Errorf("%w: número %q", domain.ErrInvalidRule, text)
		}
		out.Num = n
	}
	return out, nil
}

func fieldText(p *entity.Product, f fieldSpec) string {
	switch f.name {
	case "id":
		return strconv.FormatInt(p.ID, 10)
	case "category_id":
		if p.CategoryID == nil {
			return ""
		}
		return strconv.FormatInt(*p.CategoryID, 10)
	case "name":
		return p.Name
	case "unit":
		return p.Unit
	case "code":
		return deref(p.Code)
	case "barcode":
		return deref(p.Barcode)
	case "article":
		return deref(p.Article)
	case "brand":
		return deref(p.Brand)
	case "model":
		return deref(p.Model)
	case "type":
		return deref(p.Type)
	case "color":
		return deref(p.Color)
	case "size":
		return deref(p.Size)
	case "country":
		return deref(p.Country)
	case "manufacturer":
		return deref(p.Manufacturer)
	case "sale_price":
		return p.SalePrice.String()
	case "purchase_price":
		return p.PurchasePrice.String()
	}
	return ""
}

func fieldNumberValue(p *entity.Product, f fieldSpec) decimal.Decimal {
	if f.name == "purchase_price" {
		return p.PurchasePrice
	}
	return p.SalePrice
}

func fieldPresent(p *entity.Product, f fieldSpec) bool {
	if f.kind == fieldNumber {
		return !fieldNumberValue(p, f).IsZero()
	}
	return strings.TrimSpace(fieldText(p, f)) != ""
}
