package checklist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webstories/config"
	"webstories/types"
)

func cleanStory() *types.Story {
	return &types.Story{
		ID:            "42",
		Title:         "A short title",
		Excerpt:       strPtr("An excerpt"),
		PublisherLogo: &types.Media{Width: 96, Height: 96},
		FeaturedMedia: &types.Media{Width: 900, Height: 1600},
		Pages:         []types.Page{textPage("p1", "hello")},
	}
}

func smallLink(id string) types.Element {
	return types.Element{ID: id, Type: types.ElementImage, Width: 10, Height: 10, Link: &types.Link{URL: "https://example.com"}}
}

func TestEvaluateCleanStory(t *testing.T) {
	cl := New(config.Default().Checks)
	reg := NewMemoryRegistry()

	res, err := cl.Evaluate(context.Background(), reg, cleanStory())
	require.NoError(t, err)
	assert.Equal(t, "42", res.StoryID)
	assert.Empty(t, res.Cards)
	assert.Equal(t, 0, res.Count)

	snap, err := reg.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap, len(cl.Rules()), "every rule registers every pass")
}

func TestEvaluateOrdersCardsByCategory(t *testing.T) {
	story := cleanStory()
	story.Excerpt = nil
	story.Title = strings.Repeat("t", 50)
	story.Pages = []types.Page{
		{ID: "p1", Elements: []types.Element{smallLink("l1"), smallLink("l2")}},
		textPage("p2", strings.Repeat("x", 201)),
	}

	cl := New(config.Default().Checks)
	res, err := cl.Evaluate(context.Background(), NewMemoryRegistry(), story)
	require.NoError(t, err)

	var categories []Category
	for _, c := range res.Cards {
		categories = append(categories, c.Category)
	}
	assert.Equal(t, []Category{CategoryPriority, CategoryPriority, CategoryDesign, CategoryAccessibility}, categories)
	assert.Equal(t, 4, res.Count)
	assert.ElementsMatch(t, []string{
		CheckStoryMissingExcerpt, CheckStoryTitleLength, CheckPageTooMuchText, CheckElementLinkTappableRegionTooSmall,
	}, res.Violations)
}

func TestLinkCardThumbnails(t *testing.T) {
	story := cleanStory()
	var elements []types.Element
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		elements = append(elements, smallLink(id))
	}
	story.Pages = []types.Page{{ID: "p1", Elements: elements}}

	card := linkRegionRule{thumbs: 4}.Evaluate(story)
	require.NotNil(t, card)
	assert.Equal(t, CardMultipleIssue, card.Type)
	assert.Equal(t, 5, card.ThumbnailCount)
	require.Len(t, card.Thumbnails, 4)
	assert.Equal(t, Highlight{ElementID: "a", PageID: "p1"}, card.Thumbnails[0].Action)
	assert.Equal(t, ThumbnailElement, card.Thumbnails[0].Kind)
}

func TestPageCardHighlightsTextElements(t *testing.T) {
	story := cleanStory()
	page := textPage("p1", strings.Repeat("x", 300))
	page.Elements = append(page.Elements, types.Element{ID: "img", Type: types.ElementImage})
	story.Pages = []types.Page{page}

	card := pageTextRule{max: 200, thumbs: 4}.Evaluate(story)
	require.NotNil(t, card)
	assert.Equal(t, CardSingleIssue, card.Type)
	assert.Equal(t, Highlight{PageID: "p1", Elements: []string{"p1-ta"}}, card.Thumbnails[0].Action)
}

func TestStoryCardTitleAction(t *testing.T) {
	story := cleanStory()
	story.PublisherLogo = &types.Media{Width: 10, Height: 10}

	card := publisherLogoRule{min: 96}.Evaluate(story)
	require.NotNil(t, card)
	assert.Equal(t, CardSingleIssue, card.Type)
	require.NotNil(t, card.TitleAction)
	assert.Equal(t, RegionPublisherLogo, card.TitleAction.Region)
	assert.Equal(t, []Highlight{{Region: RegionPublisherLogo}}, card.Actions())
}

func TestDisabledChecksAreUnregistered(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	story := cleanStory()
	story.Excerpt = nil

	res, err := New(config.Default().Checks).Evaluate(ctx, reg, story)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	cfg := config.Default().Checks
	cfg.Disabled = []string{"storymissingexcerpt"}
	res, err = New(cfg).Evaluate(ctx, reg, story)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Cards)

	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotContains(t, snap, CheckStoryMissingExcerpt)
}

func TestDisabledChecksIgnoreSpacing(t *testing.T) {
	story := cleanStory()
	story.Excerpt = nil

	cfg := config.Default().Checks
	cfg.Disabled = []string{"  StoryMissingExcerpt "}
	require.True(t, cfg.IsDisabled(CheckStoryMissingExcerpt))

	res, err := New(cfg).Evaluate(context.Background(), NewMemoryRegistry(), story)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)

	res, err = NewWithRules(DefaultRules(cfg), " storyMissingExcerpt").Evaluate(context.Background(), NewMemoryRegistry(), story)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
}

type failingRegistry struct{ *MemoryRegistry }

func (failingRegistry) Register(context.Context, string, bool) error {
	return errors.New("registry down")
}

func TestEvaluateRegistryError(t *testing.T) {
	_, err := New(config.Default().Checks).Evaluate(context.Background(), failingRegistry{NewMemoryRegistry()}, cleanStory())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry down")
}

func TestEvaluateNilStory(t *testing.T) {
	res, err := New(config.Default().Checks).Evaluate(context.Background(), NewMemoryRegistry(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
}
