package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-kiosk/internal/routes"
)

func securityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")

	// The display polls screen state; never let it cache
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Next()
}

// HTTPServer builds the gin engine for the kiosk facade.
func HTTPServer(sessions *routes.Sessions, qrSize int) *gin.Engine {
	r := gin.Default()

	r.Use(securityHeaders)
	r.Use(routes.ErrorHandler())

	r.GET("/ping", func(c *gin.Context) {
		msg := c.Query("ping")
		if msg == "" {
			msg = "pong"
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	})

	routes.HealthRoute(&r.RouterGroup)

	rg := r.Group("/screens")
	routes.ScreenRoutes(rg, sessions)

	bg := r.Group("/badges")
	routes.BadgeRoutes(bg, qrSize)

	return r
}
