package checklist

import (
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"webstories/config"
	"webstories/types"
)

// linkableTypes are the element types whose links are checked for size.
var linkableTypes = map[types.ElementType]bool{
	types.ElementText:  true,
	types.ElementImage: true,
	types.ElementShape: true,
	types.ElementGif:   true,
	types.ElementVideo: true,
}

// ElementLinkTappableRegionTooSmall reports a linked element smaller than the
// minimum tap target in either dimension.
func ElementLinkTappableRegionTooSmall(el *types.Element) bool {
	if el == nil || !linkableTypes[el.Type] || el.LinkURL() == "" {
		return false
	}
	return el.Width < config.LinkTappableRegionMinWidth ||
		el.Height < config.LinkTappableRegionMinHeight
}

// PageTooMuchText reports a page whose visible text exceeds maxChars.
func PageTooMuchText(page *types.Page, maxChars int) bool {
	if page == nil {
		return false
	}
	return CharacterCountForPage(page) > maxChars
}

// PublisherLogoSize reports a publisher logo narrower or shorter than minDim.
// A story without a logo is not flagged.
func PublisherLogoSize(story *types.Story, minDim int) bool {
	if story == nil || story.PublisherLogo == nil {
		return false
	}
	logo := story.PublisherLogo
	return logo.Height < minDim || logo.Width < minDim
}

// StoryMissingExcerpt reports an unset or empty excerpt.
func StoryMissingExcerpt(story *types.Story) bool {
	if story == nil {
		return false
	}
	return story.ExcerptText() == ""
}

// StoryPosterAspectRatio reports a poster whose width/height ratio is off the
// target by more than the tolerance. Stories without a sized poster pass.
func StoryPosterAspectRatio(story *types.Story, ratio float64) bool {
	if story == nil || story.FeaturedMedia == nil {
		return false
	}
	w, h := story.FeaturedMedia.Width, story.FeaturedMedia.Height
	if w == 0 || h == 0 {
		return false
	}
	return math.Abs(float64(w)/float64(h)-ratio) > config.AspectRatioTolerance
}

// StoryTitleLength reports a title longer than maxChars characters.
func StoryTitleLength(story *types.Story, maxChars int) bool {
	if story == nil {
		return false
	}
	return utf8.RuneCountInString(story.Title) > maxChars
}

// CharacterCountForPage sums the visible characters of every text element on
// the page, ignoring markup.
func CharacterCountForPage(page *types.Page) int {
	if page == nil {
		return 0
	}
	count := 0
	for i := range page.Elements {
		el := &page.Elements[i]
		if el.Type != types.ElementText {
			continue
		}
		count += utf8.RuneCountInString(StripHTML(el.Content))
	}
	return count
}

// StripHTML returns the text content of an HTML fragment with entities decoded.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; keep what was read either way
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
