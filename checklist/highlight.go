package checklist

import "sync"

// Region names a part of the editor UI that can be highlighted.
type Region string

const (
	RegionPublisherLogo Region = "publisherLogo"
	RegionExcerpt       Region = "excerpt"
	RegionPoster        Region = "poster"
	RegionStoryTitle    Region = "storyTitle"
)

// Highlight asks the editor to focus an element, a page or a named region.
type Highlight struct {
	ElementID string   `json:"elementId,omitempty"`
	PageID    string   `json:"pageId,omitempty"`
	Elements  []string `json:"elements,omitempty"`
	Region    Region   `json:"highlight,omitempty"`
}

// IsZero reports whether h targets nothing.
func (h Highlight) IsZero() bool {
	return h.ElementID == "" && h.PageID == "" && len(h.Elements) == 0 && h.Region == ""
}

// Highlighter holds the pending highlight until the editor consumes it.
type Highlighter struct {
	mu      sync.Mutex
	pending *Highlight
	subs    map[int]func(Highlight)
	nextID  int
}

func NewHighlighter() *Highlighter {
	return &Highlighter{subs: make(map[int]func(Highlight))}
}

// SetHighlights replaces the pending highlight and notifies subscribers.
// Subscribers run synchronously on the caller's goroutine.
func (h *Highlighter) SetHighlights(target Highlight) {
	h.mu.Lock()
	t := target
	h.pending = &t
	subs := make([]func(Highlight), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(target)
	}
}

// Consume returns the pending highlight and clears it.
func (h *Highlighter) Consume() (Highlight, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return Highlight{}, false
	}
	out := *h.pending
	h.pending = nil
	return out, true
}

// Peek returns the pending highlight without clearing it.
func (h *Highlighter) Peek() (Highlight, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return Highlight{}, false
	}
	return *h.pending, true
}

// Subscribe registers fn for every future SetHighlights call.
func (h *Highlighter) Subscribe(fn func(Highlight)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}
