package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/anbar/anbar-api/docs"
)

func TestSwagger_RegistradoYValido(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	assert.Contains(t, spec.Paths, "/api/catalog/grid")
	assert.Contains(t, spec.Paths["/api/catalog/move"], "post")
	assert.Contains(t, spec.Paths, "/api/invoices/{kind}/{id}/pdf")
}
