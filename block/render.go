package block

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"webstories/types"
)

// EmbedClass is added to single-story embeds rendered by the block.
const EmbedClass = "wp-block-web-stories-embed"

var listTemplate = template.Must(template.New("list").Parse(
	`<div class="web-stories-list align{{.Attrs.Align}} is-view-type-{{.Attrs.ViewType}}{{if .Attrs.SharpCorners}} is-style-squared{{end}}" data-columns="{{.Attrs.NumberOfColumns}}">` +
		`<div class="web-stories-list__inner-wrapper">` +
		`{{range .Stories}}<div class="web-stories-list__story" data-story-id="{{.ID}}">` +
		`<a class="web-stories-list__story-link" href="{{.URL}}">` +
		`{{if .PosterURL}}<img class="web-stories-list__story-poster" src="{{.PosterURL}}" alt="{{.Title}}">{{end}}` +
		`<div class="story-content-overlay">` +
		`{{if $.Attrs.ShowTitle}}<div class="story-content-overlay__title">{{.Title}}</div>{{end}}` +
		`{{if $.Attrs.ShowExcerpt}}<div class="story-content-overlay__excerpt">{{.Excerpt}}</div>{{end}}` +
		`{{if or $.Attrs.ShowAuthor $.Attrs.ShowDate}}<div class="story-content-overlay__author-date">` +
		`{{if $.Attrs.ShowAuthor}}<div class="story-content-overlay__author">By {{.Author}}</div>{{end}}` +
		`{{if $.Attrs.ShowDate}}<time class="story-content-overlay__date" datetime="{{.PublishedAt.Format "2006-01-02T15:04:05Z07:00"}}">On {{.PublishedAt.Format "January 2, 2006"}}</time>{{end}}` +
		`</div>{{end}}` +
		`</div></a></div>{{end}}` +
		`</div>` +
		`{{if and .Attrs.ShowArchiveLink .ArchiveURL}}<div class="web-stories-list__archive-link"><a href="{{.ArchiveURL}}">{{.Attrs.ArchiveLinkLabel}}</a></div>{{end}}` +
		`</div>`))

var embedTemplate = template.Must(template.New("embed").Parse(
	`<div class="web-stories-embed align{{.Align}} {{.Class}}">` +
		`<div class="wp-block-embed__wrapper">` +
		`<amp-story-player style="width: {{.Width}}px; height: {{.Height}}px">` +
		`<a href="{{.URL}}">` +
		`{{if .Poster}}<img src="{{.Poster}}" width="{{.Width}}" height="{{.Height}}" alt="{{.Title}}" data-amp-story-player-poster-img>{{end}}` +
		`{{.Title}}</a>` +
		`</amp-story-player></div></div>`))

// StoryQuery renders the listing of stories matched by its query arguments.
type StoryQuery struct {
	Attrs      StoryAttributes
	Args       QueryArgs
	ArchiveURL string
	runner     QueryRunner
}

func NewStoryQuery(attrs StoryAttributes, args QueryArgs, archiveURL string, runner QueryRunner) *StoryQuery {
	return &StoryQuery{Attrs: attrs, Args: args, ArchiveURL: archiveURL, runner: runner}
}

// Render runs the query and returns the listing markup. No stories render "".
func (q *StoryQuery) Render(ctx context.Context) (string, error) {
	stories, err := q.runner.RunQuery(ctx, q.Args)
	if err != nil {
		return "", fmt.Errorf("story query failed: %w", err)
	}
	if len(stories) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	err = listTemplate.Execute(&buf, struct {
		Attrs      StoryAttributes
		Stories    []types.StorySummary
		ArchiveURL string
	}{q.Attrs, stories, q.ArchiveURL})
	if err != nil {
		return "", fmt.Errorf("failed to render story list: %w", err)
	}
	return buf.String(), nil
}

// EmbedAttributes are the attributes of a single-story embed.
type EmbedAttributes struct {
	URL    string
	Title  string
	Poster string
	Width  int
	Height int
	Align  string
	Class  string
}

// DefaultEmbedAttributes are merged under the block's own attributes.
func DefaultEmbedAttributes() EmbedAttributes {
	return EmbedAttributes{Width: 360, Height: 600, Align: "none"}
}

// RenderEmbed returns the player markup of one story, or "" without a URL.
func RenderEmbed(a EmbedAttributes) (string, error) {
	if a.URL == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := embedTemplate.Execute(&buf, a); err != nil {
		return "", fmt.Errorf("failed to render embed: %w", err)
	}
	return buf.String(), nil
}
