package canonical

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSortsKeys(t *testing.T) {
	a := map[string]any{"b": 1, "a": map[string]any{"z": true, "y": "x"}}
	got, err := JSON(a)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"y":"x","z":true},"b":1}`, string(got))
}

func TestHashIgnoresFieldOrder(t *testing.T) {
	type first struct {
		DocumentID string `json:"documentID"`
		Type       string `json:"type"`
	}
	type second struct {
		Type       string `json:"type"`
		DocumentID string `json:"documentID"`
	}

	h1, err := Hash(first{DocumentID: "pay-1", Type: "PAYMENT_RECEIVED"})
	require.NoError(t, err)
	h2, err := Hash(second{Type: "PAYMENT_RECEIVED", DocumentID: "pay-1"})
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	h3, err := Hash(first{DocumentID: "pay-2", Type: "PAYMENT_RECEIVED"})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestJSONKeepsNumbersExact(t *testing.T) {
	got, err := JSON(map[string]any{"n": 12345678901234567890.0, "d": decimal.RequireFromString("0.10")})
	require.NoError(t, err)
	assert.Contains(t, string(got), `"d":"0.1"`)
}
