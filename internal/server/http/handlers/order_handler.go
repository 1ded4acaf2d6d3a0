package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/server/http/dto"
)

// OrderHandler manages order and top-up endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	spec := model.ProductSpec{PackageID: req.PackageID, Quantity: req.Quantity}
	order, err := h.facade.CreateOrder(c.Request.Context(), req.PPPublicKey, req.PackagePrice, spec)
	if err != nil {
		h.createError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateOrderResponse{OrderID: order.OrderID})
}

// CreateTopup handles POST /topup.
func (h *OrderHandler) CreateTopup(c *gin.Context) {
	var req dto.CreateTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	spec := model.ProductSpec{PackageID: req.PackageID, Quantity: 1, ICCID: req.ICCID}
	order, err := h.facade.CreateTopup(c.Request.Context(), req.PPPublicKey, req.PackagePrice, spec)
	if err != nil {
		h.createError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateOrderResponse{OrderID: order.OrderID})
}

func (h *OrderHandler) createError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrProfileNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment profile not found"})
	case errors.Is(err, domainErrors.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package price"})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

// Query handles GET /order/:orderId and GET /topup/:orderId. The front-end
// polls it until the order resolves; an unresolved order answers 204.
func (h *OrderHandler) Query(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	if !order.Resolved() {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.OrderStatusResponse{
		OrderID:         order.OrderID,
		Status:          order.Status,
		PaymentReceived: order.Status.AtLeastPaid(),
		Sim:             order.Sim,
	})
}

// ListByProfile handles GET /payment-profile/sim/:ppPublicKey.
func (h *OrderHandler) ListByProfile(c *gin.Context) {
	orders, err := h.facade.OrdersByProfile(c.Request.Context(), c.Param("ppPublicKey"))
	if err != nil {
		h.listError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListTopupsByProfile handles GET /payment-profile/topup/:ppPublicKey.
func (h *OrderHandler) ListTopupsByProfile(c *gin.Context) {
	orders, err := h.facade.TopupsByProfile(c.Request.Context(), c.Param("ppPublicKey"))
	if err != nil {
		h.listError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) listError(c *gin.Context, err error) {
	if errors.Is(err, domainErrors.ErrProfileNotFound) || errors.Is(err, domainErrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment profile not found"})
		return
	}
	c.Status(http.StatusInternalServerError)
}
