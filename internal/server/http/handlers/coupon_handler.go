package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/server/http/dto"
)

// CouponHandler manages coupon lookup and redemption.
type CouponHandler struct {
	facade CouponFacade
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(facade CouponFacade) *CouponHandler {
	return &CouponHandler{facade: facade}
}

// Get handles GET /coupon/:code.
func (h *CouponHandler) Get(c *gin.Context) {
	code := c.Param("code")
	if len(code) < 3 || len(code) > 32 {
		respondError(c, http.StatusBadRequest, "Bad request")
		return
	}

	coupon, err := h.facade.Coupon(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Coupon not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondData(c, http.StatusOK, coupon)
}

// Redeem handles POST /coupon/:code/redeem.
func (h *CouponHandler) Redeem(c *gin.Context) {
	code := c.Param("code")
	if len(code) < 3 || len(code) > 32 {
		respondError(c, http.StatusBadRequest, "Bad request")
		return
	}

	coupon, err := h.facade.RedeemCoupon(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "Coupon not found")
		case errors.Is(err, domainErrors.ErrCouponRedeemed):
			respondError(c, http.StatusBadRequest, "Coupon already redeemed")
		case errors.Is(err, domainErrors.ErrCouponExpired):
			respondError(c, http.StatusBadRequest, "Coupon expired")
		default:
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: "Coupon redeemed successfully", Data: coupon})
}
