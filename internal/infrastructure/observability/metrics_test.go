package observability_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/infrastructure/observability"
)

func scrape(t *testing.T, c *observability.Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestCollector_Catalogo(t *testing.T) {
	c := observability.NewCollector("anbar")

	c.StoreReloaded(20*time.Millisecond, 4, 10)
	c.StoreReloaded(10*time.Millisecond, 5, 12)
	c.MoveRejected("cycle")
	c.MoveRejected("cycle")
	c.MoveRejected("self_move")

	body := scrape(t, c)
	assert.Contains(t, body, "anbar_catalog_reloads_total 2")
	assert.Contains(t, body, `anbar_catalog_items{kind="categories"} 5`)
	assert.Contains(t, body, `anbar_catalog_items{kind="products"} 12`)
	assert.Contains(t, body, `anbar_catalog_moves_rejected_total{reason="cycle"} 2`)
	assert.Contains(t, body, `anbar_catalog_moves_rejected_total{reason="self_move"} 1`)
}

func TestCollector_InstanciasIndependientes(t *testing.T) {
	a := observability.NewCollector("anbar")
	b := observability.NewCollector("anbar")

	a.ObserveHTTP("GET", "/api/products", 200, time.Millisecond)

	assert.Contains(t, scrape(t, a), `anbar_http_requests_total{method="GET",route="/api/products",status="OK"} 1`)
	assert.NotContains(t, scrape(t, b), "anbar_http_requests_total{")
}
