package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHealthRoutes registers health and scan status endpoints.
func RegisterHealthRoutes(r *gin.Engine, d Deps) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	r.GET("/api/status", func(c *gin.Context) {
		if d.Scans == nil {
			unavailable(c, "story scans")
			return
		}
		c.JSON(http.StatusOK, d.Scans.Manager().Status())
	})
	r.POST("/api/scan", func(c *gin.Context) { handleScan(c, d) })
}

// handleScan starts a checklist scan in the background and returns 202.
func handleScan(c *gin.Context, d Deps) {
	if d.Scans == nil {
		unavailable(c, "story scans")
		return
	}
	go func() {
		if _, err := d.Scans.RunOnce(context.Background()); err != nil {
			d.Logger.Warn("scan failed", zap.Error(err))
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "scan started"})
}
