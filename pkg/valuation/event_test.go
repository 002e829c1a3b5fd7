package valuation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuationEvent(t *testing.T) {
	rec := &Record{
		ValuationID:  1234567890123,
		RequestID:    "req-7",
		Model:        "trinomial",
		ContractType: "put",
		Value:        decimal.RequireFromString("5.787112175568011"),
		CreatedAt:    1700000000000,
	}
	ev := NewValuationEvent("valuation.results", rec)

	assert.Equal(t, "valuation.results", ev.Topic())
	assert.Equal(t, "req-7", ev.Key())

	data, err := ev.Value()
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "1234567890123", body["valuation_id"])
	assert.Equal(t, "5.787112175568011", body["price"])
	assert.Equal(t, "put", body["contract_type"])
	assert.NotContains(t, body, "topic")
}
