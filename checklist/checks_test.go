package checklist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"webstories/types"
)

func strPtr(s string) *string { return &s }

func linked(typ types.ElementType, w, h float64) *types.Element {
	return &types.Element{ID: "el", Type: typ, Width: w, Height: h, Link: &types.Link{URL: "https://example.com"}}
}

func TestElementLinkTappableRegionTooSmall(t *testing.T) {
	tests := []struct {
		name string
		el   *types.Element
		want bool
	}{
		{"nil element", nil, false},
		{"large text link", linked(types.ElementText, 48, 48), false},
		{"narrow text link", linked(types.ElementText, 47, 100), true},
		{"short image link", linked(types.ElementImage, 100, 20), true},
		{"small shape link", linked(types.ElementShape, 10, 10), true},
		{"small gif link", linked(types.ElementGif, 10, 60), true},
		{"small video link", linked(types.ElementVideo, 60, 10), true},
		{"sticker is never checked", linked(types.ElementSticker, 1, 1), false},
		{"product is never checked", linked(types.ElementProduct, 1, 1), false},
		{"no link", &types.Element{Type: types.ElementText, Width: 1, Height: 1}, false},
		{"empty link url", &types.Element{Type: types.ElementText, Width: 1, Height: 1, Link: &types.Link{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElementLinkTappableRegionTooSmall(tt.el))
		})
	}
}

func textPage(id string, contents ...string) types.Page {
	p := types.Page{ID: id}
	for i, c := range contents {
		p.Elements = append(p.Elements, types.Element{ID: id + "-t" + string(rune('a'+i)), Type: types.ElementText, Content: c})
	}
	return p
}

func TestPageTooMuchText(t *testing.T) {
	atMax := textPage("p1", strings.Repeat("a", 200))
	overMax := textPage("p2", strings.Repeat("a", 150), "<b>"+strings.Repeat("b", 51)+"</b>")

	assert.False(t, PageTooMuchText(&atMax, 200), "equal to max is not a violation")
	assert.True(t, PageTooMuchText(&overMax, 200))
	assert.False(t, PageTooMuchText(nil, 200))
}

func TestCharacterCountForPage(t *testing.T) {
	page := types.Page{Elements: []types.Element{
		{Type: types.ElementText, Content: `<span style="color:red">Héllo</span> &amp; bye`},
		{Type: types.ElementImage, Content: "ignored"},
		{Type: types.ElementText, Content: "plain"},
	}}

	assert.Equal(t, len([]rune("Héllo & bye"))+5, CharacterCountForPage(&page))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "a < b", StripHTML("a &lt; b"))
	assert.Equal(t, "bold and italic", StripHTML("<b>bold</b> and <i>italic</i>"))
	assert.Equal(t, "no markup", StripHTML("no markup"))
}

func TestPublisherLogoSize(t *testing.T) {
	assert.False(t, PublisherLogoSize(&types.Story{}, 96), "missing logo passes")
	assert.False(t, PublisherLogoSize(&types.Story{PublisherLogo: &types.Media{Width: 96, Height: 96}}, 96))
	assert.True(t, PublisherLogoSize(&types.Story{PublisherLogo: &types.Media{Width: 95, Height: 200}}, 96))
	assert.True(t, PublisherLogoSize(&types.Story{PublisherLogo: &types.Media{Width: 200, Height: 10}}, 96))
	assert.False(t, PublisherLogoSize(nil, 96))
}

func TestStoryMissingExcerpt(t *testing.T) {
	assert.True(t, StoryMissingExcerpt(&types.Story{}))
	assert.True(t, StoryMissingExcerpt(&types.Story{Excerpt: strPtr("")}))
	assert.False(t, StoryMissingExcerpt(&types.Story{Excerpt: strPtr("a")}))
}

func TestStoryPosterAspectRatio(t *testing.T) {
	ratio := 9.0 / 16.0
	poster := func(w, h int) *types.Story {
		return &types.Story{FeaturedMedia: &types.Media{Width: w, Height: h}}
	}

	assert.False(t, StoryPosterAspectRatio(poster(900, 1600), ratio))
	assert.True(t, StoryPosterAspectRatio(poster(1000, 1600), ratio))
	assert.False(t, StoryPosterAspectRatio(poster(0, 1600), ratio), "unsized poster passes")
	assert.False(t, StoryPosterAspectRatio(&types.Story{}, ratio))
}

func TestStoryTitleLength(t *testing.T) {
	assert.False(t, StoryTitleLength(&types.Story{Title: strings.Repeat("x", 40)}, 40))
	assert.True(t, StoryTitleLength(&types.Story{Title: strings.Repeat("x", 41)}, 40))
	assert.False(t, StoryTitleLength(&types.Story{Title: strings.Repeat("é", 40)}, 40), "counts characters, not bytes")
}
