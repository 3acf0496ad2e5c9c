package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	o := domain.NewOrder(1, domain.Items(`[{"id":1}]`), decimal.MustParse("50.0"), 0, "")

	assert.Equal(t, domain.OrderID(1), o.ID)
	assert.Equal(t, domain.OrderStatusReceived, o.Status)
	assert.Equal(t, domain.DefaultPaymentMethod, o.PaymentMethod)
	assert.Zero(t, o.UserID)

	o = domain.NewOrder(2, domain.Items(`[{"id":1}]`), decimal.Zero, 3, "PAYPAL")
	assert.Equal(t, "PAYPAL", o.PaymentMethod)
}

func TestItems_Empty(t *testing.T) {
	tests := []struct {
		name  string
		items domain.Items
		empty bool
	}{
		{name: "nil", items: nil, empty: true},
		{name: "null", items: domain.Items("null"), empty: true},
		{name: "empty array", items: domain.Items(" [ ] "), empty: true},
		{name: "empty object", items: domain.Items("{}"), empty: true},
		{name: "scalar", items: domain.Items("12"), empty: true},
		{name: "array", items: domain.Items(`[{"id":1,"quantity":2}]`), empty: false},
		{name: "keyed", items: domain.Items(`{"items":[{"id":1}]}`), empty: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.empty, test.items.Empty())
		})
	}
}

func TestItems_JSON(t *testing.T) {
	var holder struct {
		Items domain.Items `json:"items"`
	}
	err := json.Unmarshal([]byte(`{"items":[{"id":1,"quantity":2}]}`), &holder)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"quantity":2}]`, string(holder.Items))

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":1,"quantity":2}]}`, string(out))
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, domain.OrderStatusReceived.Valid())
	assert.True(t, domain.OrderStatusCancelled.Valid())
	assert.False(t, domain.OrderStatus("received").Valid())
	assert.False(t, domain.OrderStatus("").Valid())
}

func TestPaymentRequest_JSON(t *testing.T) {
	o := domain.NewOrder(123, domain.Items(`[{"id":1,"quantity":2}]`), decimal.MustParse("50.0"), 1, "")
	msg := domain.NewPaymentRequest(o)

	assert.Equal(t, "123", msg.DeduplicationKey())

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, float64(123), wire["orderId"])
	assert.Equal(t, 50.0, wire["amount"])
	assert.Equal(t, "CARD", wire["paymentMethod"])

	var back domain.PaymentRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, msg.OrderID, back.OrderID)
	assert.Equal(t, 0, msg.Amount.Cmp(back.Amount))
}
