package rssfeeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"webstories/types"
)

const storyPage = `<!DOCTYPE html>
<html><head>
<title>Beach day</title>
<meta name="description" content="A sunny day at the beach with friends.">
</head><body>
<article>
<h1>Beach day</h1>
<p>We spent the whole day at the beach, swimming, building sand castles and eating ice cream until sunset.</p>
<p>The water was warm and the waves were gentle, which made it a perfect day for the little ones to paddle about.</p>
<p>In the evening we walked along the shore and watched the sun go down over the water before heading home.</p>
</article>
</body></html>`

func TestSuggestExcerpts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(storyPage))
	}))
	defer srv.Close()

	excerpt := "already set"
	stories := []*types.Story{
		{ID: "ok", Excerpt: &excerpt, Link: srv.URL},
		{ID: "missing", Link: srv.URL},
		{ID: "nolink"},
	}

	got := SuggestExcerpts(context.Background(), stories, zap.NewNop())
	require.Len(t, got, 2, "only stories missing an excerpt are read")

	assert.Equal(t, "missing", got[0].StoryID)
	assert.Empty(t, got[0].Error)
	assert.Equal(t, "A sunny day at the beach with friends.", got[0].Excerpt)

	assert.Equal(t, "nolink", got[1].StoryID)
	assert.NotEmpty(t, got[1].Error)
}

func TestSuggestExcerptsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := SuggestExcerpts(ctx, []*types.Story{{ID: "a", Link: "http://127.0.0.1:1/"}}, nil)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Error, "canceled")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "one two…", truncate("one two three four", 10))
	assert.Equal(t, strings.Repeat("a", 5)+"…", truncate(strings.Repeat("a", 20), 5))
}
