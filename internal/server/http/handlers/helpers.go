package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/encryptSIM/backend/internal/server/http/dto"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Envelope{Success: false, Message: message})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.Envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Envelope{Success: true, Message: message})
}
