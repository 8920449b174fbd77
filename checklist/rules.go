package checklist

import (
	"webstories/config"
	"webstories/types"
)

// Check names, as reported to the registry.
const (
	CheckElementLinkTappableRegionTooSmall = "ElementLinkTappableRegionTooSmall"
	CheckPageTooMuchText                   = "PageTooMuchText"
	CheckPublisherLogoSize                 = "PublisherLogoSize"
	CheckStoryMissingExcerpt               = "StoryMissingExcerpt"
	CheckStoryPosterAspectRatio            = "StoryPosterAspectRatio"
	CheckStoryTitleLength                  = "StoryTitleLength"
)

// Rule is one checklist entry: a predicate applied to the story plus the card
// it renders when the predicate holds.
type Rule interface {
	Name() string
	Category() Category
	// Evaluate returns the card to show, or nil when the story passes.
	Evaluate(story *types.Story) *Card
}

// DefaultRules builds the six checklist rules from cfg.
func DefaultRules(cfg config.ChecksConfig) []Rule {
	return []Rule{
		publisherLogoRule{min: cfg.PublisherLogoDimension},
		excerptRule{},
		posterRule{ratioW: cfg.PosterRatioWidth, ratioH: cfg.PosterRatioHeight, ratio: cfg.PosterAspectRatio()},
		titleLengthRule{max: cfg.MaxStoryTitleLength},
		pageTextRule{max: cfg.MaxPageCharacterCount, thumbs: cfg.MaxThumbnails},
		linkRegionRule{thumbs: cfg.MaxThumbnails},
	}
}

type linkRegionRule struct{ thumbs int }

func (linkRegionRule) Name() string       { return CheckElementLinkTappableRegionTooSmall }
func (linkRegionRule) Category() Category { return CategoryAccessibility }

func (r linkRegionRule) Evaluate(story *types.Story) *Card {
	elements := FilterStoryElements(story, ElementLinkTappableRegionTooSmall)
	if len(elements) == 0 {
		return nil
	}
	cp := linkTappableRegionCopy()
	card := &Card{
		Check:          r.Name(),
		Category:       r.Category(),
		Title:          cp.Title,
		Type:           cardTypeFor(len(elements)),
		Footer:         cp.Footer,
		ThumbnailCount: len(elements),
	}
	for _, pe := range VisibleThumbnails(elements, r.thumbs) {
		card.Thumbnails = append(card.Thumbnails, Thumbnail{
			Kind:   ThumbnailElement,
			ID:     pe.Element.ID,
			PageID: pe.PageID,
			Label:  "Go to offending link",
			Action: Highlight{ElementID: pe.Element.ID, PageID: pe.PageID},
		})
	}
	return card
}

type pageTextRule struct {
	max    int
	thumbs int
}

func (pageTextRule) Name() string       { return CheckPageTooMuchText }
func (pageTextRule) Category() Category { return CategoryDesign }

func (r pageTextRule) Evaluate(story *types.Story) *Card {
	pages := FilterStoryPages(story, func(p *types.Page) bool {
		return PageTooMuchText(p, r.max)
	})
	if len(pages) == 0 {
		return nil
	}
	cp := tooMuchPageTextCopy(r.max)
	card := &Card{
		Check:          r.Name(),
		Category:       r.Category(),
		Title:          cp.Title,
		Type:           cardTypeFor(len(pages)),
		Footer:         cp.Footer,
		ThumbnailCount: len(pages),
	}
	for _, page := range VisibleThumbnails(pages, r.thumbs) {
		var textIDs []string
		for _, el := range page.Elements {
			if el.Type == types.ElementText {
				textIDs = append(textIDs, el.ID)
			}
		}
		card.Thumbnails = append(card.Thumbnails, Thumbnail{
			Kind:   ThumbnailPage,
			ID:     page.ID,
			PageID: page.ID,
			Label:  "Go to offending page",
			Action: Highlight{PageID: page.ID, Elements: textIDs},
		})
	}
	return card
}

type publisherLogoRule struct{ min int }

func (publisherLogoRule) Name() string       { return CheckPublisherLogoSize }
func (publisherLogoRule) Category() Category { return CategoryPriority }

func (r publisherLogoRule) Evaluate(story *types.Story) *Card {
	if !PublisherLogoSize(story, r.min) {
		return nil
	}
	return storyCard(r, logoTooSmallCopy(r.min), RegionPublisherLogo)
}

type excerptRule struct{}

func (excerptRule) Name() string       { return CheckStoryMissingExcerpt }
func (excerptRule) Category() Category { return CategoryPriority }

func (r excerptRule) Evaluate(story *types.Story) *Card {
	if !StoryMissingExcerpt(story) {
		return nil
	}
	return storyCard(r, storyMissingDescriptionCopy(), RegionExcerpt)
}

type posterRule struct {
	ratioW, ratioH int
	ratio          float64
}

func (posterRule) Name() string       { return CheckStoryPosterAspectRatio }
func (posterRule) Category() Category { return CategoryPriority }

func (r posterRule) Evaluate(story *types.Story) *Card {
	if !StoryPosterAspectRatio(story, r.ratio) {
		return nil
	}
	return storyCard(r, storyPosterWrongRatioCopy(r.ratioW, r.ratioH), RegionPoster)
}

type titleLengthRule struct{ max int }

func (titleLengthRule) Name() string       { return CheckStoryTitleLength }
func (titleLengthRule) Category() Category { return CategoryPriority }

func (r titleLengthRule) Evaluate(story *types.Story) *Card {
	if !StoryTitleLength(story, r.max) {
		return nil
	}
	return storyCard(r, storyTitleTooLongCopy(r.max), RegionStoryTitle)
}

// storyCard renders a story-level card whose title focuses region.
func storyCard(r Rule, cp Copy, region Region) *Card {
	return &Card{
		Check:       r.Name(),
		Category:    r.Category(),
		Title:       cp.Title,
		Type:        CardSingleIssue,
		Footer:      cp.Footer,
		TitleAction: &Highlight{Region: region},
	}
}
