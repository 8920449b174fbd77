package migrations

import (
	"context"
	"fmt"

	"webstories/config"
)

// Media source terms tag how an attachment was produced.
const (
	MediaSourceEditor            = "editor"
	MediaSourcePosterGeneration  = "poster-generation"
	MediaSourceSourceVideo       = "source-video"
	MediaSourceSourceImage       = "source-image"
	MediaSourceVideoOptimization = "video-optimization"
	MediaSourceGIFConversion     = "gif-conversion"
)

// AddMediaSource registers one term in the media source taxonomy.
type AddMediaSource struct {
	Term string
	Ver  int
}

func (m AddMediaSource) Name() string { return "add_media_source_" + m.Term }
func (m AddMediaSource) Version() int { return m.Ver }

func (m AddMediaSource) Migrate(ctx context.Context, store TermStore) error {
	if _, err := store.AddTerm(ctx, config.MediaSourceTaxonomy, m.Term); err != nil {
		return fmt.Errorf("failed to add media source %q: %w", m.Term, err)
	}
	return nil
}

// MediaSourceMigrations lists the media source terms in the order they were
// introduced.
func MediaSourceMigrations() []Migration {
	terms := []string{
		MediaSourceEditor,
		MediaSourcePosterGeneration,
		MediaSourceSourceVideo,
		MediaSourceSourceImage,
		MediaSourceVideoOptimization,
		MediaSourceGIFConversion,
	}
	out := make([]Migration, len(terms))
	for i, term := range terms {
		out[i] = AddMediaSource{Term: term, Ver: i + 1}
	}
	return out
}
