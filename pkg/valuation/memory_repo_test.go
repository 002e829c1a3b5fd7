package valuation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	rec := &Record{ValuationID: 7, RequestID: "r", Value: decimal.RequireFromString("1.5"), CreatedAt: 100}
	require.NoError(t, repo.Create(ctx, rec))
	assert.Equal(t, uint(1), rec.ID)

	// 返回副本，修改不影响已存数据
	got, err := repo.GetByValuationID(ctx, 7)
	require.NoError(t, err)
	got.RequestID = "changed"
	again, err := repo.GetByValuationID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "r", again.RequestID)

	assert.Error(t, repo.Create(ctx, &Record{ValuationID: 7}))

	_, err = repo.GetByValuationID(ctx, 8)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryRepository_Ordering(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Record{ValuationID: 1, RequestID: "x", CreatedAt: 200}))
	require.NoError(t, repo.Create(ctx, &Record{ValuationID: 2, RequestID: "y", CreatedAt: 100}))
	require.NoError(t, repo.Create(ctx, &Record{ValuationID: 3, RequestID: "x", CreatedAt: 200}))

	recent, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{recent[0].ValuationID, recent[1].ValuationID, recent[2].ValuationID})

	recent, err = repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, int64(3), recent[0].ValuationID)

	byReq, err := repo.GetByRequestID(ctx, "x")
	require.NoError(t, err)
	require.Len(t, byReq, 2)
	assert.Equal(t, int64(3), byReq[0].ValuationID)

	none, err := repo.GetByRequestID(ctx, "z")
	require.NoError(t, err)
	assert.Empty(t, none)
}
