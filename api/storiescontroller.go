package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webstories/types"
)

// RegisterStoryRoutes registers story snapshot endpoints.
func RegisterStoryRoutes(r *gin.Engine, d Deps) {
	g := r.Group("/api/stories")
	g.Use(func(c *gin.Context) {
		if d.Stories == nil {
			unavailable(c, "story store")
			c.Abort()
			return
		}
		c.Next()
	})

	g.GET("", func(c *gin.Context) {
		ids, err := d.Stories.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": ids, "count": len(ids)})
	})

	g.GET("/:id", func(c *gin.Context) {
		story, err := d.Stories.Load(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, story)
	})

	g.PUT("/:id", func(c *gin.Context) {
		var story types.Story
		if err := c.ShouldBindJSON(&story); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		story.ID = c.Param("id")
		if err := d.Stories.Save(c.Request.Context(), &story); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "saved", "id": story.ID})
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if err := d.Stories.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
