package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("order.placed", "order-1", "order", "storefront", map[string]string{"id": "order-1"})

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "order.placed", event.EventType)
	assert.Equal(t, "order-1", event.AggregateID)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.JSONEq(t, `{"id":"order-1"}`, string(event.Data))
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("order.placed", "order-1", "order", "storefront", make(chan int))
	require.Error(t, err)
}

func TestEvent_CorrelationIDOmittedWhenEmpty(t *testing.T) {
	event, err := NewEvent("order.placed", "order-1", "order", "storefront", nil)
	require.NoError(t, err)

	raw, err := event.WithCorrelationID("").Marshal()
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "correlation_id")

	raw, err = event.WithCorrelationID("corr-1").Marshal()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "correlation_id")
}
