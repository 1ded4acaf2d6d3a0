package dto

import "github.com/encryptSIM/backend/internal/domain/model"

// CreateOrderRequest is the body of POST /order.
type CreateOrderRequest struct {
	PPPublicKey  string `json:"ppPublicKey" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	PackageID    string `json:"package_id" binding:"required"`
	PackagePrice string `json:"package_price" binding:"required"`
}

// CreateTopupRequest is the body of POST /topup.
type CreateTopupRequest struct {
	PPPublicKey  string `json:"ppPublicKey" binding:"required"`
	ICCID        string `json:"iccid" binding:"required"`
	PackageID    string `json:"package_id" binding:"required"`
	PackagePrice string `json:"package_price" binding:"required"`
}

// CreateOrderResponse acknowledges order registration.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// OrderStatusResponse is returned once an order carries its deliverable.
type OrderStatusResponse struct {
	OrderID         string             `json:"orderId"`
	Status          model.OrderStatus  `json:"status"`
	PaymentReceived bool               `json:"paymentReceived"`
	Sim             *model.SimArtifact `json:"sim,omitempty"`
}
