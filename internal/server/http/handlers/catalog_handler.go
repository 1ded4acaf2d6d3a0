package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler proxies vendor catalog endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Packages handles GET /packages?type=&country=.
func (h *CatalogHandler) Packages(c *gin.Context) {
	packageType := c.Query("type")
	if packageType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: type"})
		return
	}

	packages, err := h.facade.Packages(c.Request.Context(), packageType, c.Query("country"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve package plans"})
		return
	}
	c.Data(http.StatusOK, "application/json", packages)
}

// SimTopups handles GET /sim/:iccid/topups.
func (h *CatalogHandler) SimTopups(c *gin.Context) {
	topups, err := h.facade.SimTopups(c.Request.Context(), c.Param("iccid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve SIM top-ups"})
		return
	}
	c.Data(http.StatusOK, "application/json", topups)
}

// SimUsage handles GET /sim/:iccid/usage.
func (h *CatalogHandler) SimUsage(c *gin.Context) {
	usage, err := h.facade.SimUsage(c.Request.Context(), c.Param("iccid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve SIM usage"})
		return
	}
	c.Data(http.StatusOK, "application/json", usage)
}
