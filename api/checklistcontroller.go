package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webstories/checklist"
	"webstories/editor"
	"webstories/rssfeeds"
	"webstories/types"
)

// RegisterChecklistRoutes registers checklist session endpoints.
func RegisterChecklistRoutes(r *gin.Engine, d Deps) {
	h := &checklistHandlers{d: d}
	g := r.Group("/api/checklist")
	g.POST("/evaluate", h.evaluate)
	g.POST("/excerpts", h.suggestExcerpts)

	s := g.Group("/sessions")
	s.POST("", h.createSession)
	s.DELETE("/:id", h.closeSession)
	s.POST("/:id/evaluate", h.evaluateSession)
	s.POST("/:id/events", h.observe)
	s.GET("/:id/result", h.lastResult)
	s.GET("/:id/count", h.count)
	s.POST("/:id/highlights", h.setHighlight)
	s.GET("/:id/highlights", h.consumeHighlight)
	s.GET("/:id/header", h.header)
	s.GET("/:id/help", h.helpState)
	s.POST("/:id/help/:action", h.helpAction)
}

type checklistHandlers struct {
	d Deps
}

type CreateSessionRequest struct {
	StoryID string `json:"storyId"`
}

type CreateSessionResponse struct {
	ID      string `json:"id"`
	StoryID string `json:"storyId"`
}

// HeaderResponse is the editor header layout for the session's story.
type HeaderResponse struct {
	editor.HeaderLayout
	Labels map[editor.Button]string `json:"labels"`
}

type GoToTipRequest struct {
	Tip editor.TipKey `json:"tip"`
}

func (h *checklistHandlers) session(c *gin.Context) (*checklist.Session, bool) {
	s, err := h.d.Sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return s, true
}

// evaluate runs the checklist without a session.
func (h *checklistHandlers) evaluate(c *gin.Context) {
	var story types.Story
	if err := c.ShouldBindJSON(&story); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.d.Sessions.Checklist().Evaluate(c.Request.Context(), checklist.NewMemoryRegistry(), &story)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *checklistHandlers) suggestExcerpts(c *gin.Context) {
	var stories []*types.Story
	if err := c.ShouldBindJSON(&stories); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rssfeeds.SuggestExcerpts(c.Request.Context(), stories, h.d.Logger))
}

func (h *checklistHandlers) createSession(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	s := h.d.Sessions.Create(req.StoryID)
	c.JSON(http.StatusCreated, CreateSessionResponse{ID: s.ID, StoryID: s.StoryID})
}

func (h *checklistHandlers) closeSession(c *gin.Context) {
	if err := h.d.Sessions.Close(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *checklistHandlers) evaluateSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var story types.Story
	if err := c.ShouldBindJSON(&story); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.Evaluate(c.Request.Context(), &story)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *checklistHandlers) observe(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var ev types.StoryEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev.SessionID = s.ID
	res, err := s.Observe(c.Request.Context(), ev)
	if err != nil {
		writeError(c, err)
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *checklistHandlers) lastResult(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	res := s.Last()
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *checklistHandlers) count(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	n, err := s.Registry().Count(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *checklistHandlers) setHighlight(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var hl checklist.Highlight
	if err := c.ShouldBindJSON(&hl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Dispatch(hl); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// consumeHighlight returns and clears the pending highlight.
func (h *checklistHandlers) consumeHighlight(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	hl, ok := s.Highlighter().Consume()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, hl)
}

// header lays out the editor header for the last evaluated story. The
// saving and published query flags mirror the editor's transient state.
func (h *checklistHandlers) header(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	story := s.Story()
	if story == nil {
		c.Status(http.StatusNoContent)
		return
	}
	layout := editor.Header(editor.HeaderState{
		Status:             story.Status,
		StoryID:            story.ID,
		Link:               story.Link,
		IsSaving:           c.Query("saving") == "true",
		IsFreshlyPublished: c.Query("published") == "true",
	})
	labels := make(map[editor.Button]string, len(layout.Buttons))
	for _, b := range layout.Buttons {
		labels[b] = editor.Label(b, story.Status)
	}
	c.JSON(http.StatusOK, HeaderResponse{HeaderLayout: layout, Labels: labels})
}

func (h *checklistHandlers) helpState(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.HelpCenter().State())
}

func (h *checklistHandlers) helpAction(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	help := s.HelpCenter()
	switch c.Param("action") {
	case "toggle":
		help.Toggle()
	case "close":
		help.Close()
	case "next":
		help.GoToNext()
	case "prev":
		help.GoToPrev()
	case "menu":
		help.GoToMenu()
	case "tip":
		var req GoToTipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := help.GoToTip(req.Tip); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown help center action"})
		return
	}
	c.JSON(http.StatusOK, help.State())
}
