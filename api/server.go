package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webstories/block"
	"webstories/checklist"
	"webstories/common"
	"webstories/config"
	"webstories/orchestrator"
	"webstories/types"
	"webstories/video"
)

// StoryStore persists story snapshots and media.
type StoryStore interface {
	Save(ctx context.Context, story *types.Story) error
	Load(ctx context.Context, id string) (*types.Story, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	PutMedia(ctx context.Context, name string, body io.Reader, contentType string) (string, error)
}

// MediaOptimizer transcodes a video file.
type MediaOptimizer interface {
	Optimize(ctx context.Context, item video.MediaItem, in, out string) (video.MediaItem, error)
}

// Deps are the services exposed over HTTP. Optional ones may be nil, in
// which case their routes answer 503.
type Deps struct {
	Sessions  *checklist.Sessions
	Block     *block.Block
	Site      config.SiteConfig
	Video     config.VideoConfig
	Stories   StoryStore
	Optimizer MediaOptimizer
	Scans     *orchestrator.Runner
	Logger    *zap.Logger
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r, d)
	RegisterChecklistRoutes(r, d)
	RegisterBlockRoutes(r, d)
	RegisterStoryRoutes(r, d)
	RegisterMediaRoutes(r, d)
	return r
}

// writeError maps known sentinel errors to their status code.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, checklist.ErrSessionNotFound), errors.Is(err, common.ErrStoryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, checklist.ErrInvalidHighlight), errors.Is(err, video.ErrNotVideo):
		status = http.StatusBadRequest
	case errors.Is(err, orchestrator.ErrScanInProgress):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func unavailable(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": what + " not configured"})
}
