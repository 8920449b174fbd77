package types

import "time"

// StorySummary is one row of a story listing returned by a query.
type StorySummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Author      string    `json:"author,omitempty"`
	AuthorID    int       `json:"author_id,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	PosterURL   string    `json:"poster_url,omitempty"`
}

// StoryFeed is the wrapper written when a feed is dumped as JSON.
type StoryFeed struct {
	FeedURL    string          `json:"feed_url"`
	FetchedAt  time.Time       `json:"fetched_at"`
	StoryCount int             `json:"story_count"`
	Stories    []*StorySummary `json:"stories"`
}
