package domain

import (
	"encoding/json"
	"fmt"

	"github.com/govalues/decimal"
)

// PaymentRequest is the message handed to the payment system when an order is created.
type PaymentRequest struct {
	OrderID       OrderID
	PaymentMethod string
	Amount        decimal.Decimal
	Items         Items
}

func NewPaymentRequest(order *Order) *PaymentRequest {
	return &PaymentRequest{
		OrderID:       order.ID,
		PaymentMethod: order.PaymentMethod,
		Amount:        order.Total,
		Items:         order.Items,
	}
}

// DeduplicationKey binds the message to its order for downstream consumers.
func (p *PaymentRequest) DeduplicationKey() string {
	return p.OrderID.String()
}

type paymentRequestJSON struct {
	OrderID       OrderID     `json:"orderId"`
	PaymentMethod string      `json:"paymentMethod"`
	Amount        json.Number `json:"amount"`
	Items         Items       `json:"items"`
}

func (p PaymentRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(paymentRequestJSON{
		OrderID:       p.OrderID,
		PaymentMethod: p.PaymentMethod,
		Amount:        json.Number(p.Amount.String()),
		Items:         p.Items,
	})
}

func (p *PaymentRequest) UnmarshalJSON(data []byte) error {
	var raw paymentRequestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.Parse(raw.Amount.String())
	if err != nil {
		return fmt.Errorf("payment request amount: %w", err)
	}
	*p = PaymentRequest{
		OrderID:       raw.OrderID,
		PaymentMethod: raw.PaymentMethod,
		Amount:        amount,
		Items:         raw.Items,
	}
	return nil
}

type MessageID string
