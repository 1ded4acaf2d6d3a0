package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/server/http/dto"
)

// CacheHandler exposes the generic keyed cache.
type CacheHandler struct {
	facade CacheFacade
}

// NewCacheHandler constructs CacheHandler.
func NewCacheHandler(facade CacheFacade) *CacheHandler {
	return &CacheHandler{facade: facade}
}

// Get handles GET /cache/:key.
func (h *CacheHandler) Get(c *gin.Context) {
	entry, err := h.facade.CacheGet(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Cache key not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondData(c, http.StatusOK, entry)
}

// Set handles POST /cache/:key.
func (h *CacheHandler) Set(c *gin.Context) {
	var req dto.CacheSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad request")
		return
	}

	if err := h.facade.CacheSet(c.Request.Context(), c.Param("key"), req.Value, req.TTL); err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondMessage(c, http.StatusOK, "Data successfully cached")
}

// Delete handles DELETE /cache/:key.
func (h *CacheHandler) Delete(c *gin.Context) {
	if err := h.facade.CacheDelete(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondMessage(c, http.StatusOK, "Cache key successfully deleted")
}
