package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-kiosk/internal/config"
)

// HealthRoute reports liveness plus the kiosk identity for fleet monitoring.
func HealthRoute(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		kioskName := ""
		if config.Cfg != nil {
			kioskName = config.Cfg.KioskName
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"kiosk":  kioskName,
		})
	})
}
