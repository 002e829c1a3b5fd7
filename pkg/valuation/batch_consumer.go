// 文件: pkg/valuation/batch_consumer.go
// Kafka 批量估值入口: 每条消息一个 Request

package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"max.com/treeval/pkg/kafka"
)

type BatchConsumer struct {
	svc *Service

	processed atomic.Int64
	failed    atomic.Int64
}

func NewBatchConsumer(svc *Service) *BatchConsumer {
	return &BatchConsumer{svc: svc}
}

// Handle 满足 kafka.Handler。消息体没有 request_id 时用消息 key
func (b *BatchConsumer) Handle(ctx context.Context, rec kafka.Record) error {
	var req Request
	if err := json.Unmarshal(rec.Value, &req); err != nil {
		b.failed.Add(1)
		return fmt.Errorf("decode request at offset %d: %w", rec.Offset, err)
	}
	if req.RequestID == "" && len(rec.Key) > 0 {
		req.RequestID = string(rec.Key)
	}

	if _, err := b.svc.Value(ctx, &req); err != nil {
		b.failed.Add(1)
		return fmt.Errorf("value request %s: %w", req.RequestID, err)
	}
	b.processed.Add(1)
	return nil
}

// Stats 已处理 / 失败条数
func (b *BatchConsumer) Stats() (processed, failed int64) {
	return b.processed.Load(), b.failed.Load()
}
