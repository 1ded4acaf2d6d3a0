package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encryptSIM/backend/internal/server/http/dto"
)

// OpsHandler covers health checks and client error intake.
type OpsHandler struct {
	facade OpsFacade
}

// NewOpsHandler constructs OpsHandler.
func NewOpsHandler(facade OpsFacade) *OpsHandler {
	return &OpsHandler{facade: facade}
}

// Health handles GET /health.
func (h *OpsHandler) Health(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		c.String(http.StatusServiceUnavailable, "unavailable")
		return
	}
	c.String(http.StatusOK, "OK")
}

// LogError handles POST /error, persisting errors reported by the front-end.
func (h *OpsHandler) LogError(c *gin.Context) {
	var req dto.ErrorLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request")
		return
	}

	if err := h.facade.LogClientError(c.Request.Context(), req.Message); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to process log request")
		return
	}
	c.String(http.StatusOK, "OK")
}
