package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encryptSIM/backend/internal/server/http/dto"
)

// ProfileHandler manages payment profile endpoints.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Create handles POST /create-payment-profile.
func (h *ProfileHandler) Create(c *gin.Context) {
	publicKey, err := h.facade.CreateProfile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment profile"})
		return
	}
	c.JSON(http.StatusOK, dto.CreateProfileResponse{PublicKey: publicKey})
}
