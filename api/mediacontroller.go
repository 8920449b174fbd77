package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webstories/video"
)

// RegisterMediaRoutes registers media picker endpoints.
func RegisterMediaRoutes(r *gin.Engine, d Deps) {
	g := r.Group("/api/media")
	g.POST("/filter", func(c *gin.Context) { handleFilterMedia(c, d) })
	g.POST("/optimize", func(c *gin.Context) { handleOptimize(c, d) })
}

type OptimizeRequest struct {
	Item   video.MediaItem `json:"item"`
	Source string          `json:"source" binding:"required"`
}

type OptimizeResponse struct {
	Optimized bool            `json:"optimized"`
	Item      video.MediaItem `json:"item"`
	Output    string          `json:"output,omitempty"`
}

// handleFilterMedia drops the items the picker must not offer.
func handleFilterMedia(c *gin.Context, d Deps) {
	var items []video.MediaItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := make([]video.MediaItem, 0, len(items))
	for _, item := range items {
		if video.Listable(item, d.Video.OptimizationEnabled) {
			out = append(out, item)
		}
	}
	c.JSON(http.StatusOK, out)
}

// handleOptimize transcodes a local source file and uploads the result when a
// story store is configured.
func handleOptimize(c *gin.Context, d Deps) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !video.NeedsOptimization(req.Item) {
		c.JSON(http.StatusOK, OptimizeResponse{Item: req.Item})
		return
	}
	if !d.Video.OptimizationEnabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "video optimization is disabled"})
		return
	}
	if d.Optimizer == nil {
		unavailable(c, "video optimizer")
		return
	}

	ctx := c.Request.Context()
	out := filepath.Join(d.Video.WorkDir, req.Item.OptimizedName())
	item, err := d.Optimizer.Optimize(ctx, req.Item, req.Source, out)
	if err != nil {
		writeError(c, err)
		return
	}

	if d.Stories != nil {
		f, err := os.Open(out)
		if err != nil {
			writeError(c, err)
			return
		}
		defer f.Close()
		key, err := d.Stories.PutMedia(ctx, item.FileName, f, item.MimeType)
		if err != nil {
			writeError(c, err)
			return
		}
		item.URL = key
		d.Logger.Info("optimized video uploaded", zap.String("key", key))
	}

	c.JSON(http.StatusOK, OptimizeResponse{Optimized: true, Item: item, Output: out})
}
