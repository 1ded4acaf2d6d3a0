package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind selects the product catalog and the provisioning call for an order.
type OrderKind string

const (
	OrderKindEsim  OrderKind = "esim"
	OrderKindTopup OrderKind = "topup"
)

// OrderStatus describes the settlement lifecycle.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusPaid         OrderStatus = "paid"
	OrderStatusProvisioned  OrderStatus = "esim_provisioned"
	OrderStatusPaidToMaster OrderStatus = "paid_to_master"
	OrderStatusFailed       OrderStatus = "failed"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// transitions lists the forward-only settlement graph. Anything absent is illegal.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:     {OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled},
	OrderStatusPaid:        {OrderStatusProvisioned, OrderStatusFailed},
	OrderStatusProvisioned: {OrderStatusPaidToMaster, OrderStatusFailed},
}

// CanTransition reports whether moving to the given status follows the graph.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further automated transition applies.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusFailed, OrderStatusPaidToMaster, OrderStatusCancelled:
		return true
	}
	return false
}

// AtLeastPaid reports whether payment has already been processed for this status.
func (s OrderStatus) AtLeastPaid() bool {
	return s != OrderStatusPending
}

// ProductSpec is the purchase description handed to the fulfillment provider.
type ProductSpec struct {
	PackageID string `json:"package_id"`
	Quantity  int    `json:"quantity"`
	// ICCID is set for top-up orders only.
	ICCID string `json:"iccid,omitempty"`
}

// Order is one purchase intent tied to a payment profile address.
// PriceSol and PaymentInSol carry decimal strings to avoid float rounding.
type Order struct {
	OrderID      string       `json:"orderId"`
	PPPublicKey  string       `json:"ppPublicKey"`
	Kind         OrderKind    `json:"kind"`
	Quantity     int          `json:"quantity"`
	PackageID    string       `json:"package_id"`
	ICCID        string       `json:"iccid,omitempty"`
	PriceSol     string       `json:"package_price"`
	PaymentInSol string       `json:"paymentInSol,omitempty"`
	Sim          *SimArtifact `json:"sim,omitempty"`
	Status       OrderStatus  `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PriceDue parses the order price into a decimal amount.
func (o *Order) PriceDue() (decimal.Decimal, error) {
	return decimal.NewFromString(o.PriceSol)
}

// Spec returns the provisioning request for this order.
func (o *Order) Spec() ProductSpec {
	return ProductSpec{PackageID: o.PackageID, Quantity: o.Quantity, ICCID: o.ICCID}
}

// Resolved reports whether the order can be shown to the client as settled:
// either the artifact is attached or the order reached a terminal status.
func (o *Order) Resolved() bool {
	return o.Sim != nil || o.Status.Terminal()
}
