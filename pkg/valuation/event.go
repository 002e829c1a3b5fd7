// 文件: pkg/valuation/event.go
// 估值完成事件，发往 Kafka

package valuation

import (
	"encoding/json"

	"max.com/treeval/pkg/kafka"
)

// EventPublisher 事件发布 (kafka.Producer 满足该接口)
type EventPublisher interface {
	Send(msg kafka.Message) error
}

// ValuationEvent 一次估值完成
type ValuationEvent struct {
	topic string

	ValuationID int64   `json:"valuation_id,string"`
	RequestID   string  `json:"request_id"`
	Fingerprint string  `json:"fingerprint"`
	Model       string  `json:"model"`
	Type        string  `json:"contract_type"`
	Price       string  `json:"price"` // decimal 字符串，保留精度
	Cached      bool    `json:"cached"`
	ElapsedUs   int64   `json:"elapsed_us"`
	Timestamp   int64   `json:"ts"`
	Spot        float64 `json:"spot_price"`
	Strike      float64 `json:"strike"`
}

var _ kafka.Message = (*ValuationEvent)(nil)

func NewValuationEvent(topic string, rec *Record) *ValuationEvent {
	return &ValuationEvent{
		topic:       topic,
		ValuationID: rec.ValuationID,
		RequestID:   rec.RequestID,
		Fingerprint: rec.Fingerprint,
		Model:       rec.Model,
		Type:        rec.ContractType,
		Price:       rec.Value.String(),
		Cached:      rec.Cached,
		ElapsedUs:   rec.ElapsedUs,
		Timestamp:   rec.CreatedAt,
		Spot:        rec.SpotPrice,
		Strike:      rec.Strike,
	}
}

func (e *ValuationEvent) Topic() string { return e.topic }

// Key 按请求ID分区，同一请求的结果有序
func (e *ValuationEvent) Key() string { return e.RequestID }

func (e *ValuationEvent) Value() ([]byte, error) { return json.Marshal(e) }
