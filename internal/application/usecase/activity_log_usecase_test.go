package usecase_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbar/anbar-api/internal/application/dto"
	"github.com/anbar/anbar-api/internal/application/usecase"
	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/infrastructure/memory"
)

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func TestActivityLog_IngestIgnoraRepetidos(t *testing.T) {
	uc := usecase.NewActivityLogUseCase(memory.NewActivityLogRepository(memory.NewDB()))
	ctx := context.Background()
	batch := dto.ActivityLogBatchRequest{Logs: []dto.ActivityLogEntry{
		{ID: "a-1", Category: "sales", Action: "open"},
		{ID: "a-2", Category: "sales", Action: "save", Level: "success"},
		{Category: "catalog", Action: "move"},
	}}

	res, err := uc.Ingest(ctx, 3, batch)
	require.NoError(t, err)
	assert.Equal(t, dto.ActivityLogBatchResponse{Received: 3, Saved: 3}, *res)

	res, err = uc.Ingest(ctx, 3, dto.ActivityLogBatchRequest{Logs: batch.Logs[:2]})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Saved)

	list, err := uc.List(ctx, ptr(int64(3)), dto.ActivityLogQuery{Category: "sales"})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)

	all, err := uc.List(ctx, ptr(int64(3)), dto.ActivityLogQuery{})
	require.NoError(t, err)
	for _, l := range all.Data {
		assert.NotEmpty(t, l.ID)
		assert.NotEmpty(t, l.Level)
	}
}

func TestActivityLog_LoteInvalidoYClear(t *testing.T) {
	uc := usecase.NewActivityLogUseCase(memory.NewActivityLogRepository(memory.NewDB()))
	ctx := context.Background()

	_, err := uc.Ingest(ctx, 1, dto.ActivityLogBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Ingest(ctx, 1, dto.ActivityLogBatchRequest{Logs: []dto.ActivityLogEntry{{Category: "x"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Ingest(ctx, 1, dto.ActivityLogBatchRequest{Logs: []dto.ActivityLogEntry{{Category: "x", Action: "y"}}})
	require.NoError(t, err)
	_, err = uc.Ingest(ctx, 2, dto.ActivityLogBatchRequest{Logs: []dto.ActivityLogEntry{{Category: "x", Action: "y"}}})
	require.NoError(t, err)

	n, err := uc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := uc.List(ctx, nil, dto.ActivityLogQuery{})
	require.NoError(t, err)
	require.Len(t, all.Data, 1)
	assert.Equal(t, int64(2), all.Data[0].UserID)
}
