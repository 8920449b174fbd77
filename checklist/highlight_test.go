package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlighterConsumeOnce(t *testing.T) {
	h := NewHighlighter()
	_, ok := h.Consume()
	assert.False(t, ok)

	h.SetHighlights(Highlight{ElementID: "e1", PageID: "p1"})
	peeked, ok := h.Peek()
	assert.True(t, ok)
	assert.Equal(t, "e1", peeked.ElementID)

	got, ok := h.Consume()
	assert.True(t, ok)
	assert.Equal(t, Highlight{ElementID: "e1", PageID: "p1"}, got)

	_, ok = h.Consume()
	assert.False(t, ok)
}

func TestHighlighterLastWriteWins(t *testing.T) {
	h := NewHighlighter()
	h.SetHighlights(Highlight{PageID: "p1"})
	h.SetHighlights(Highlight{Region: RegionPoster})

	got, ok := h.Consume()
	assert.True(t, ok)
	assert.Equal(t, RegionPoster, got.Region)
}

func TestHighlighterSubscribe(t *testing.T) {
	h := NewHighlighter()
	var seen []Highlight
	cancel := h.Subscribe(func(hl Highlight) { seen = append(seen, hl) })

	h.SetHighlights(Highlight{PageID: "p1"})
	cancel()
	h.SetHighlights(Highlight{PageID: "p2"})

	assert.Equal(t, []Highlight{{PageID: "p1"}}, seen)
}

func TestHighlightIsZero(t *testing.T) {
	assert.True(t, Highlight{}.IsZero())
	assert.False(t, Highlight{Region: RegionExcerpt}.IsZero())
	assert.False(t, Highlight{Elements: []string{"a"}}.IsZero())
}
