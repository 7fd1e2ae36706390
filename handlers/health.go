package handlers

import (
	"net/http"

	"salonhub/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last dependency snapshot taken by the health monitor.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "dependencies": status})
}
