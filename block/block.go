package block

import (
	"context"

	"go.uber.org/zap"
)

// Block renders Web Stories blocks. Rendering never fails towards the page:
// any error is logged and the block renders as "".
type Block struct {
	runner     QueryRunner
	archiveURL string
	logger     *zap.Logger
}

func New(runner QueryRunner, archiveURL string, logger *zap.Logger) *Block {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Block{runner: runner, archiveURL: archiveURL, logger: logger}
}

// RenderBlock renders the block for its raw saved attributes.
func (b *Block) RenderBlock(ctx context.Context, raw map[string]any) string {
	attrs, ok, err := ParseAttributes(raw)
	if err != nil {
		b.logger.Warn("invalid block attributes", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return b.Render(ctx, attrs)
}

// Render renders parsed attributes: a story listing for the latest and
// selected stories block types, otherwise a single embedded story.
func (b *Block) Render(ctx context.Context, attrs Attributes) string {
	if attrs.IsListing() {
		q := NewStoryQuery(storyAttributes(attrs), BuildQueryArgs(attrs), b.archiveURL, b.runner)
		out, err := q.Render(ctx)
		if err != nil {
			b.logger.Error("failed to render story listing",
				zap.String("block_type", attrs.BlockType),
				zap.Error(err))
			return ""
		}
		return out
	}

	embed := DefaultEmbedAttributes()
	embed.URL = attrs.URL
	embed.Title = attrs.Title
	embed.Poster = attrs.Poster
	if attrs.Width > 0 {
		embed.Width = attrs.Width
	}
	if attrs.Height > 0 {
		embed.Height = attrs.Height
	}
	if attrs.Align != "" {
		embed.Align = attrs.Align
	}
	embed.Class = EmbedClass

	out, err := RenderEmbed(embed)
	if err != nil {
		b.logger.Error("failed to render story embed", zap.String("url", attrs.URL), zap.Error(err))
		return ""
	}
	return out
}
