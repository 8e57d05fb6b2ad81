package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-kiosk/internal/badge"
)

// BadgeRoutes serves scannable QR images for issued badge identifiers, used
// by the display when re-rendering a badge.
func BadgeRoutes(rg *gin.RouterGroup, qrSize int) {
	rg.GET("/:badge_id/qr.png", func(c *gin.Context) {
		badgeID := c.Param("badge_id")
		if badgeID == "" {
			AbortWithError(c, fmt.Errorf("%w: badge_id manquant", ErrInvalidRequest))
			return
		}

		png, err := badge.EncodePNG(badgeID, qrSize)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Data(http.StatusOK, "image/png", png)
	})
}
