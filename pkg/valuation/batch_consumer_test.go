package valuation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.com/treeval/pkg/kafka"
)

func TestBatchConsumer_Handle(t *testing.T) {
	svc, repo := newTestService(nil, nil)
	bc := NewBatchConsumer(svc)
	ctx := context.Background()

	body, err := json.Marshal(referenceRequest())
	require.NoError(t, err)

	require.NoError(t, bc.Handle(ctx, kafka.Record{Topic: "valuation.requests", Key: []byte("from-key"), Value: body}))

	recs, err := repo.GetByRequestID(ctx, "from-key")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.InDelta(t, referenceBinomial, recs[0].Float(), 1e-9)

	// 消息体里的 request_id 优先
	req := referenceRequest()
	req.RequestID = "from-body"
	body, err = json.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, bc.Handle(ctx, kafka.Record{Key: []byte("ignored"), Value: body}))
	recs, err = repo.GetByRequestID(ctx, "from-body")
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	processed, failed := bc.Stats()
	assert.Equal(t, int64(2), processed)
	assert.Zero(t, failed)
}

func TestBatchConsumer_Handle_Failures(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	bc := NewBatchConsumer(svc)
	ctx := context.Background()

	assert.Error(t, bc.Handle(ctx, kafka.Record{Value: []byte("nope")}))

	req := referenceRequest()
	req.Strike = 0
	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Error(t, bc.Handle(ctx, kafka.Record{Value: body}))

	processed, failed := bc.Stats()
	assert.Zero(t, processed)
	assert.Equal(t, int64(2), failed)
}
