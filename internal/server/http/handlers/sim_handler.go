package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/server/http/dto"
)

// SimHandler manages sims provisioned and tracked outside the settlement flow.
type SimHandler struct {
	facade SimFacade
}

// NewSimHandler constructs SimHandler.
func NewSimHandler(facade SimFacade) *SimHandler {
	return &SimHandler{facade: facade}
}

// CompleteOrder handles POST /complete-order.
func (h *SimHandler) CompleteOrder(c *gin.Context) {
	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request")
		return
	}

	sims, err := h.facade.CompleteOrder(c.Request.Context(), req.ID, req.Orders)
	if err != nil {
		if errors.Is(err, domainErrors.ErrProviderFailure) {
			respondError(c, http.StatusInternalServerError, "Failed to place some orders")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update SIMs in the database")
		return
	}
	c.JSON(http.StatusOK, dto.CompleteOrderResponse{Success: true, Message: "Order completed", Sims: sims})
}

// MarkInstalled handles POST /mark-sim-installed.
func (h *SimHandler) MarkInstalled(c *gin.Context) {
	var req dto.MarkSimInstalledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request")
		return
	}

	err := h.facade.MarkSimInstalled(c.Request.Context(), req.ID, req.ICCID, *req.Installed)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "SIM not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update SIM's installation status in the database")
		return
	}
	respondMessage(c, http.StatusOK, "Success")
}

// FetchSims handles GET /fetch-sims/:id.
func (h *SimHandler) FetchSims(c *gin.Context) {
	sims, err := h.facade.FetchSims(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch SIMs from the database")
		return
	}
	if len(sims) == 0 {
		respondError(c, http.StatusNotFound, "No SIMs found for the given ID")
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: "SIMs fetched successfully", Data: sims})
}

// UsageGet handles GET /sim-usage/:iccid.
func (h *SimHandler) UsageGet(c *gin.Context) {
	data, err := h.facade.SimUsageGet(c.Request.Context(), c.Param("iccid"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			respondData(c, http.StatusOK, nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondData(c, http.StatusOK, data)
}

// UsageSet handles POST /sim-usage/:iccid.
func (h *SimHandler) UsageSet(c *gin.Context) {
	var req dto.SimUsageSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request")
		return
	}

	if err := h.facade.SimUsageSet(c.Request.Context(), c.Param("iccid"), req.Data); err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondMessage(c, http.StatusOK, "Data successfully set")
}
