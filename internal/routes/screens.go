package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-kiosk/internal/directory"
	"visitor-kiosk/internal/kiosk"
)

const sessionHeader = "X-Session-ID"

// ScreenRoutes wires the screen session lifecycle and operations under rg.
func ScreenRoutes(rg *gin.RouterGroup, sessions *Sessions) {
	rg.POST("/:screen/activate", func(c *gin.Context) {
		s, err := sessions.Activate(c.Request.Context(), c.Param("screen"))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"session_id": s.ID,
			"screen":     s.Screen,
			"staff":      s.Staff(),
			"trainings":  s.Trainings(),
			"notices":    s.Notices.Drain(),
		})
	})

	rg.DELETE("/:screen", func(c *gin.Context) {
		if err := sessions.Deactivate(c.Param("screen"), c.GetHeader(sessionHeader)); err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	rg.GET("/:screen/refdata", func(c *gin.Context) {
		s, ok := currentSession(c, sessions)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"staff":     s.Staff(),
			"trainings": s.Trainings(),
		})
	})

	rg.POST("/:screen/lookup", func(c *gin.Context) {
		s, ok := currentSession(c, sessions)
		if !ok {
			return
		}
		lookup(c, s)
	})

	rg.POST("/:screen/scan", func(c *gin.Context) {
		s, ok := currentSession(c, sessions)
		if !ok {
			return
		}
		var err error
		switch {
		case s.Entry != nil:
			err = s.Entry.StartScan()
		case s.Exit != nil:
			err = s.Exit.StartScan()
		default:
			err = fmt.Errorf("%w: cet écran ne prend pas en charge le scan", ErrInvalidRequest)
		}
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	rg.DELETE("/:screen/scan", func(c *gin.Context) {
		s, ok := currentSession(c, sessions)
		if !ok {
			return
		}
		switch {
		case s.Entry != nil:
			s.Entry.StopScan()
		case s.Exit != nil:
			s.Exit.StopScan()
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "notices": s.Notices.Drain()})
	})

	rg.POST("/entry/submit", func(c *gin.Context) {
		s, ok := namedSession(c, sessions, ScreenEntry)
		if !ok {
			return
		}
		var form kiosk.EntryForm
		if err := c.ShouldBindJSON(&form); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}
		data, err := s.Entry.Submit(c.Request.Context(), form)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"badge":   data,
			"state":   s.Entry.State().String(),
			"notices": s.Notices.Drain(),
		})
	})

	rg.POST("/exit/confirm", func(c *gin.Context) {
		s, ok := namedSession(c, sessions, ScreenExit)
		if !ok {
			return
		}
		if err := s.Exit.Confirm(c.Request.Context()); err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"state":   s.Exit.State().String(),
			"notices": s.Notices.Drain(),
		})
	})

	rg.POST("/return/confirm", func(c *gin.Context) {
		s, ok := namedSession(c, sessions, ScreenReturn)
		if !ok {
			return
		}
		var form kiosk.ReturnForm
		if err := c.ShouldBindJSON(&form); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}
		if err := s.Return.Confirm(c.Request.Context(), form); err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"state":   s.Return.State().String(),
			"notices": s.Notices.Drain(),
		})
	})
}

type lookupRequest struct {
	Email   string `json:"email"`
	BadgeID string `json:"badge_id"`
}

func lookup(c *gin.Context, s *Session) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	var (
		visitor directory.Visitor
		err     error
	)
	switch {
	case s.Entry != nil && req.BadgeID != "":
		visitor, err = s.Entry.LookupBadge(c.Request.Context(), req.BadgeID)
	case s.Entry != nil:
		visitor, err = s.Entry.LookupEmail(c.Request.Context(), req.Email)
	case s.Exit != nil && req.BadgeID != "":
		visitor, err = s.Exit.LookupBadge(c.Request.Context(), req.BadgeID)
	case s.Exit != nil:
		visitor, err = s.Exit.LookupEmail(c.Request.Context(), req.Email)
	case s.Return != nil && req.BadgeID != "":
		err = fmt.Errorf("%w: la recherche par badge n'est pas disponible sur cet écran", ErrInvalidRequest)
	case s.Return != nil:
		visitor, err = s.Return.LookupEmail(c.Request.Context(), req.Email)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := directory.ResolveStatus(visitor)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"visitor":      visitor,
		"status":       status,
		"status_label": status.Label(),
		"notices":      s.Notices.Drain(),
	})
}

// currentSession resolves the session addressed by path + header; on failure
// it writes the error response and returns false.
func currentSession(c *gin.Context, sessions *Sessions) (*Session, bool) {
	return namedSession(c, sessions, c.Param("screen"))
}

func namedSession(c *gin.Context, sessions *Sessions, screen string) (*Session, bool) {
	s, err := sessions.Get(screen, c.GetHeader(sessionHeader))
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	return s, true
}
