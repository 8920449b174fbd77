package rssfeeds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"webstories/checklist"
	"webstories/types"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
	maxExcerptLength = 160
)

// Suggestion is an excerpt proposed for a story missing one.
type Suggestion struct {
	StoryID string `json:"storyId"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuggestExcerpts reads the published page of every story flagged for a
// missing excerpt and proposes one, using a pool of WorkerCount workers.
// Results keep the order of the flagged stories.
func SuggestExcerpts(ctx context.Context, stories []*types.Story, logger *zap.Logger) []Suggestion {
	if logger == nil {
		logger = zap.NewNop()
	}

	var flagged []*types.Story
	for _, s := range stories {
		if checklist.StoryMissingExcerpt(s) {
			flagged = append(flagged, s)
		}
	}
	out := make([]Suggestion, len(flagged))

	var wg sync.WaitGroup
	jobs := make(chan int, len(flagged))

	for w := 0; w < WorkerCount; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				story := flagged[i]
				out[i] = Suggestion{StoryID: story.ID, URL: story.Link}
				excerpt, err := suggestExcerpt(ctx, story.Link)
				if err != nil {
					out[i].Error = err.Error()
					logger.Warn("excerpt extraction failed",
						zap.Int("worker", workerID),
						zap.String("url", story.Link),
						zap.Error(err))
					continue
				}
				out[i].Excerpt = excerpt
				logger.Debug("excerpt suggested", zap.String("story", story.ID))
			}
		}(w)
	}

	for i := range flagged {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

func suggestExcerpt(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", errors.New("story link is empty")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	article, err := readability.FromURL(pageURL, extractorTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	excerpt := strings.TrimSpace(article.Excerpt)
	if excerpt == "" {
		excerpt = strings.TrimSpace(article.TextContent)
	}
	return truncate(strings.Join(strings.Fields(excerpt), " "), maxExcerptLength), nil
}

// truncate cuts s to at most n runes, on a word boundary when possible.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	cut := string(r[:n])
	if i := strings.LastIndex(cut, " "); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
