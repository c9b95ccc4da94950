package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/ports"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos
// ──────────────────────────────────────────────────────────────────────────────

type invalidations struct{ n int }

func (i *invalidations) Invalidate() { i.n++ }

func newRepos(t *testing.T) (*memory.DB, ports.Repos) {
	t.Helper()
	db := memory.NewDB()
	return db, db.Repos()
}

func seedCategory(t *testing.T, repos ports.Repos, name string, parent *int64) int64 {
	t.Helper()
	c := &entity.Category{Name: name, ParentID: parent}
	require.NoError(t, repos.Categories.Create(context.Background(), c))
	return c.ID
}

func ptr[T any](v T) *T { return &v }
