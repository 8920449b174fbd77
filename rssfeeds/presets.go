package rssfeeds

// DefaultFeedPreset is used when no feed is configured.
const DefaultFeedPreset = "local"

// FeedPresets maps friendly names to web story feeds.
var FeedPresets = map[string]string{
	"local": "http://localhost/web-stories/feed/",
	"wp":    "https://wp.stories.google/web-stories/feed/",
	"demo":  "https://stories.google/web-stories/feed/",
}

// ResolveFeedURL resolves a preset name to its feed URL. Anything else is
// returned as-is and treated as a URL.
func ResolveFeedURL(feedInput string) string {
	if u, ok := FeedPresets[feedInput]; ok {
		return u
	}
	return feedInput
}
