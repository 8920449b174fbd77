package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webstories/block"
)

// RegisterBlockRoutes registers block rendering endpoints.
func RegisterBlockRoutes(r *gin.Engine, d Deps) {
	g := r.Group("/api/block")
	g.POST("/render", func(c *gin.Context) {
		var attrs map[string]any
		if err := c.ShouldBindJSON(&attrs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if d.Block == nil {
			unavailable(c, "block rendering")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(d.Block.RenderBlock(c.Request.Context(), attrs)))
	})
	g.GET("/settings", func(c *gin.Context) {
		c.JSON(http.StatusOK, block.Settings(d.Site))
	})
}
