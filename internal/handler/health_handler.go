package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck GET /api/health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "SafeHelp-App",
	})
}
