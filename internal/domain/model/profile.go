package model

import "time"

// PaymentProfile is a custodial wallet acting as one customer's payment address.
// PrivateKey is owned exclusively by this service and never appears in responses.
type PaymentProfile struct {
	PublicKey  string    `json:"publicKey"`
	PrivateKey string    `json:"privateKey"`
	OrderIDs   []string  `json:"orderIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasOrder reports whether the order id is already linked.
func (p *PaymentProfile) HasOrder(orderID string) bool {
	for _, id := range p.OrderIDs {
		if id == orderID {
			return true
		}
	}
	return false
}
