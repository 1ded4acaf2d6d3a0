package dto

import "github.com/encryptSIM/backend/internal/domain/model"

// CompleteOrderRequest is the body of POST /complete-order: a batch of
// prepaid orders to provision under one client id.
type CompleteOrderRequest struct {
	ID     string               `json:"id" binding:"required"`
	Orders []model.OrderDetails `json:"orders" binding:"required"`
}

// CompleteOrderResponse returns the provisioned sims.
type CompleteOrderResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Sims    []model.SimArtifact `json:"sims"`
}

// MarkSimInstalledRequest is the body of POST /mark-sim-installed.
type MarkSimInstalledRequest struct {
	ID        string `json:"id" binding:"required"`
	ICCID     string `json:"iccid" binding:"required"`
	Installed *bool  `json:"installed" binding:"required"`
}
