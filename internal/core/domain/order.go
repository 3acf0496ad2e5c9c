package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/govalues/decimal"
)

type OrderID uint64

func (id OrderID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusPaymentPending OrderStatus = "PAYMENT_PENDING"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusPaymentFailed  OrderStatus = "PAYMENT_FAILED"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

var knownStatuses = map[OrderStatus]struct{}{
	OrderStatusReceived:       {},
	OrderStatusPaymentPending: {},
	OrderStatusPaid:           {},
	OrderStatusPaymentFailed:  {},
	OrderStatusProcessing:     {},
	OrderStatusShipped:        {},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// Valid reports whether s is one of the known lifecycle states.
// Transitions between states are not checked.
func (s OrderStatus) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

const DefaultPaymentMethod = "CARD"

// Items is the raw JSON document with the order line items.
// The core only requires it to be a non-empty array or object.
type Items json.RawMessage

func (i Items) MarshalJSON() ([]byte, error) {
	if len(i) == 0 {
		return []byte("null"), nil
	}
	return i, nil
}

func (i *Items) UnmarshalJSON(data []byte) error {
	if i == nil {
		return errors.New("domain.Items: UnmarshalJSON on nil pointer")
	}
	*i = append((*i)[0:0], data...)
	return nil
}

// Empty reports whether the document holds no line items.
func (i Items) Empty() bool {
	trimmed := bytes.TrimSpace(i)
	if len(trimmed) == 0 {
		return true
	}
	switch string(trimmed) {
	case "null", "[]", "{}", `""`:
		return true
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(trimmed, &arr); err == nil {
		return len(arr) == 0
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		return len(obj) == 0
	}
	// scalars are not a collection of items
	return true
}

type Order struct {
	ID            OrderID
	Items         Items
	Total         decimal.Decimal
	Status        OrderStatus
	UserID        uint64
	PaymentMethod string
	Version       int64
}

// NewOrder builds an order in its initial state.
func NewOrder(id OrderID, items Items, total decimal.Decimal, userID uint64, paymentMethod string) *Order {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}
	return &Order{
		ID:            id,
		Items:         items,
		Total:         total,
		Status:        OrderStatusReceived,
		UserID:        userID,
		PaymentMethod: paymentMethod,
	}
}
