package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/anbar/anbar-api/internal/application/catalog"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
)

type countingMetrics struct {
	reloads  int
	rejected []string
}

func (m *countingMetrics) StoreReloaded(time.Duration, int, int) { m.reloads++ }
func (m *countingMetrics) MoveRejected(reason string)            { m.rejected = append(m.rejected, reason) }

func TestStore_CargaUnaVezHastaInvalidar(t *testing.T) {
	db := memory.NewDB()
	repos := db.Repos()
	metrics := &countingMetrics{}
	store := appcatalog.NewStore(repos.Categories, repos.Products, nil, metrics)
	ctx := context.Background()

	first, err := store.Snapshot(ctx)
	require.NoError(t, err)
	second, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, metrics.reloads)

	store.Invalidate()
	third, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, metrics.reloads)
}

func TestStore_CerradoRechazaLecturas(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Warm(context.Background()))

	f.store.Close()

	_, err := f.store.Snapshot(context.Background())
	assert.ErrorIs(t, err, appcatalog.ErrStoreClosed)
}

func TestStore_ReflejaEscriturasTrasInvalidar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.category(t, "A", nil)

	snap, err := f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Index.Len())

	f.category(t, "B", &a)
	snap, err = f.store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Index.Len())
}
