package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/catalog"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

func mustRule(t *testing.T, component string, cond catalog.Condition, raw string) catalog.Rule {
	t.Helper()
	r, err := catalog.ParseRule(component, cond, []byte(raw))
	require.NoError(t, err)
	return r
}

func brandProduct(prodID int64, brand string) *entity.Product {
	p := prod(prodID, "item", nil)
	if brand != "" {
		p.Brand = str(brand)
	}
	return p
}

func TestFilter_ListaVaciaNoExcluye(t *testing.T) {
	products := []*entity.Product{brandProduct(1, "Bosch"), brandProduct(2, "")}

	for _, cond := range []catalog.Condition{catalog.CondIn, catalog.CondNotIn} {
		for _, raw := range []string{`[]`, `null`, ``} {
			r := mustRule(t, "brand", cond, raw)
			for _, p := range products {
				assert.True(t, r.Match(p), "cond=%s raw=%q id=%d", cond, raw, p.ID)
			}
		}
	}
}

func TestFilter_EqualsProductoComparaID(t *testing.T) {
	p := prod(7, "x", nil)

	assert.True(t, mustRule(t, "product", catalog.CondEquals, `{"id":7,"name":"x"}`).Match(p))
	assert.True(t, mustRule(t, "product", catalog.CondEquals, `7`).Match(p))
	assert.False(t, mustRule(t, "product", catalog.CondEquals, `{"id":8}`).Match(p))
	assert.False(t, mustRule(t, "product", catalog.CondEquals, `null`).Match(p))
	assert.True(t, mustRule(t, "product", catalog.CondNotEquals, `{"id":8}`).Match(p))
}

func TestFilter_EqualsTextoSinMayusculas(t *testing.T) {
	p := brandProduct(1, "BoSCH")

	assert.True(t, mustRule(t, "brand", catalog.CondEquals, `"bosch"`).Match(p))
	assert.False(t, mustRule(t, "brand", catalog.CondNotEquals, `"BOSCH"`).Match(p))
	assert.False(t, mustRule(t, "brand", catalog.CondEquals, `"bos"`).Match(p))
}

func TestFilter_EqualsCampoNuloContraNulo(t *testing.T) {
	p := brandProduct(1, "")

	assert.True(t, mustRule(t, "brand", catalog.CondEquals, `null`).Match(p))
	assert.True(t, mustRule(t, "brand", catalog.CondEquals, `""`).Match(p))
}

func TestFilter_InProductoYTexto(t *testing.T) {
	p := brandProduct(3, "Makita Pro")

	assert.True(t, mustRule(t, "product", catalog.CondIn, `[{"id":1},{"id":3}]`).Match(p))
	assert.False(t, mustRule(t, "product", catalog.CondIn, `[{"id":1}]`).Match(p))
	assert.True(t, mustRule(t, "brand", catalog.CondIn, `["bosch","makita"]`).Match(p))
	assert.False(t, mustRule(t, "brand", catalog.CondNotIn, `["makita"]`).Match(p))
	assert.True(t, mustRule(t, "brand", catalog.CondNotIn, `["dewalt"]`).Match(p))
}

func TestFilter_InCategoriaEsExacto(t *testing.T) {
	p := prod(1, "x", id(12))

	assert.False(t, mustRule(t, "category", catalog.CondIn, `[1]`).Match(p))
	assert.True(t, mustRule(t, "category", catalog.CondIn, `[{"id":12}]`).Match(p))
	assert.True(t, mustRule(t, "category", catalog.CondEquals, `12`).Match(p))
}

func TestFilter_CoercionDeForma(t *testing.T) {
	p := brandProduct(1, "Bosch")

	r := mustRule(t, "brand", catalog.CondIn, `"bosch"`)
	list, ok := r.(catalog.ListRule)
	require.True(t, ok)
	assert.Equal(t, 1, list.Len())
	assert.True(t, r.Match(p))

	r = mustRule(t, "brand", catalog.CondEquals, `["bosch","makita"]`)
	scalar, ok := r.(catalog.ScalarRule)
	require.True(t, ok)
	assert.Equal(t, "bosch", scalar.Value())

	r = mustRule(t, "brand", catalog.CondEquals, `[]`)
	assert.Equal(t, "", r.(catalog.ScalarRule).Value())
}

func TestFilter_CondicionesDeTexto(t *testing.T) {
	p := prod(1, "x", nil)
	p.Code = str("AB-100")

	assert.True(t, mustRule(t, "code", catalog.CondContains, `"b-1"`).Match(p))
	assert.False(t, mustRule(t, "code", catalog.CondNotContains, `"b-1"`).Match(p))
	assert.True(t, mustRule(t, "code", catalog.CondStartsWith, `"ab"`).Match(p))
	assert.True(t, mustRule(t, "code", catalog.CondNotStartsWith, `"100"`).Match(p))
	assert.True(t, mustRule(t, "code", catalog.CondIsSet, ``).Match(p))
	assert.True(t, mustRule(t, "article", catalog.CondIsNotSet, ``).Match(p))
}

func TestFilter_CondicionesNumericas(t *testing.T) {
	p := prod(1, "x", nil)
	p.SalePrice = decimal.RequireFromString("10.50")

	assert.True(t, mustRule(t, "sale_price", catalog.CondGreater, `10`).Match(p))
	assert.True(t, mustRule(t, "sale_price", catalog.CondGreaterOrEqual, `"10.5"`).Match(p))
	assert.False(t, mustRule(t, "sale_price", catalog.CondLess, `10.5`).Match(p))
	assert.True(t, mustRule(t, "sale_price", catalog.CondLessOrEqual, `10.5`).Match(p))
	assert.True(t, mustRule(t, "sale_price", catalog.CondEquals, `10.50`).Match(p))
	assert.False(t, mustRule(t, "purchase_price", catalog.CondIsSet, ``).Match(p))
}

func TestFilter_ReglasInvalidas(t *testing.T) {
	cases := []struct {
		component string
		cond      catalog.Condition
		raw       string
	}{
		{"color_favorito", catalog.CondEquals, `"x"`},
		{"brand", "parece", `"x"`},
		{"brand", catalog.CondGreater, `1`},
		{"sale_price", catalog.CondContains, `"1"`},
		{"sale_price", catalog.CondGreater, `null`},
		{"sale_price", catalog.CondGreater, `"barato"`},
		{"product", catalog.CondEquals, `"abc"`},
		{"product", catalog.CondContains, `"1"`},
		{"brand", catalog.CondEquals, `{"foo":1}`},
		{"brand", catalog.CondEquals, `{`},
	}
	for _, tc := range cases {
		_, err := catalog.ParseRule(tc.component, tc.cond, []byte(tc.raw))
		assert.ErrorIs(t, err, domain.ErrInvalidRule, "%s %s %s", tc.component, tc.cond, tc.raw)
	}
}

func TestParseRules_YMatchesEsAND(t *testing.T) {
	rules, err := catalog.ParseRules([]byte(`[
		{"component":"brand","condition":"equals","value":"bosch"},
		{"component":"code","condition":"starts_with","value":"GS"}
	]`))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	ok := brandProduct(1, "Bosch")
	ok.Code = str("GSR-12")
	wrongCode := brandProduct(2, "Bosch")
	wrongCode.Code = str("PSB")

	assert.True(t, catalog.Matches(ok, rules))
	assert.False(t, catalog.Matches(wrongCode, rules))
	assert.True(t, catalog.Matches(wrongCode, nil))

	none, err := catalog.ParseRules([]byte(" "))
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = catalog.ParseRules([]byte(`{"no":"array"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidRule)
}

func TestComponents_Ordenados(t *testing.T) {
	comps := catalog.Components()
	assert.Contains(t, comps, "product")
	assert.Contains(t, comps, "category")
	assert.IsIncreasing(t, comps)
}

func TestFilter_ElementoNuloEnListaNoCoincide(t *testing.T) {
	products := []*entity.Product{brandProduct(1, "Bosch"), brandProduct(2, "")}

	in := mustRule(t, "brand", catalog.CondIn, `[null]`)
	notIn := mustRule(t, "brand", catalog.CondNotIn, `[null]`)
	for _, p := range products {
		assert.False(t, in.Match(p), "in id=%d", p.ID)
		assert.True(t, notIn.Match(p), "not_in id=%d", p.ID)
	}

	mixed := mustRule(t, "brand", catalog.CondIn, `[null, "bosch"]`)
	assert.True(t, mixed.Match(products[0]))
	assert.False(t, mixed.Match(products[1]))
}
