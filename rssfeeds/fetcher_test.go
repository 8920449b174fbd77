package rssfeeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storyFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
  <title>Stories</title>
  <link>https://example.com/web-stories/</link>
  <item>
    <title>Beach day</title>
    <link>https://example.com/web-stories/beach-day/</link>
    <guid isPermaLink="false">https://example.com/?post_type=web-story&amp;p=12</guid>
    <pubDate>Tue, 05 Mar 2024 10:00:00 +0000</pubDate>
    <dc:creator>Ann</dc:creator>
    <author_id>3</author_id>
    <description><![CDATA[<p>Sun &amp; sand</p>]]></description>
    <enclosure url="https://example.com/beach.jpg" length="100" type="image/jpeg"/>
  </item>
  <item>
    <title>City walk</title>
    <link>https://example.com/web-stories/city-walk/</link>
    <pubDate>Wed, 06 Mar 2024 10:00:00 +0000</pubDate>
    <dc:creator>Bob</dc:creator>
  </item>
</channel>
</rss>`

func TestParseStories(t *testing.T) {
	stories, err := ParseStories(strings.NewReader(storyFeed), 10)
	require.NoError(t, err)
	require.Len(t, stories, 2)

	first := stories[0]
	assert.Equal(t, "12", first.ID)
	assert.Equal(t, "Beach day", first.Title)
	assert.Equal(t, "https://example.com/web-stories/beach-day/", first.URL)
	assert.Equal(t, "Sun & sand", first.Excerpt)
	assert.Equal(t, "Ann", first.Author)
	assert.Equal(t, 3, first.AuthorID)
	assert.Equal(t, "https://example.com/beach.jpg", first.PosterURL)
	assert.True(t, first.PublishedAt.Equal(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))

	assert.Len(t, stories[1].ID, 16, "no guid falls back to a link hash")
}

func TestParseStoriesLimit(t *testing.T) {
	stories, err := ParseStories(strings.NewReader(storyFeed), 1)
	require.NoError(t, err)
	assert.Len(t, stories, 1)
}

func TestFetchStories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(storyFeed))
	}))
	defer srv.Close()

	stories, err := FetchStories(context.Background(), srv.URL, 5)
	require.NoError(t, err)
	assert.Len(t, stories, 2)

	feed := StoryFeed(srv.URL, stories)
	assert.Equal(t, 2, feed.StoryCount)
}

func TestFetchStoriesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchStories(context.Background(), srv.URL, 5)
	assert.Error(t, err)
}

func TestResolveFeedURL(t *testing.T) {
	assert.Equal(t, FeedPresets["wp"], ResolveFeedURL("wp"))
	assert.Equal(t, "https://example.org/feed", ResolveFeedURL("https://example.org/feed"))
}
