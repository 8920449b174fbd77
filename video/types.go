package video

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrNotVideo is returned when a media item is not a video.
var ErrNotVideo = errors.New("media item is not a video")

// MediaItem is an uploaded attachment as seen by the media picker.
type MediaItem struct {
	ID          int    `json:"id"`
	FileName    string `json:"file_name"`
	MimeType    string `json:"mime_type"`
	MediaSource string `json:"media_source,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	URL         string `json:"url,omitempty"`
}

// IsVideo reports whether the item has a video mime type.
func (m MediaItem) IsVideo() bool {
	return strings.HasPrefix(m.MimeType, "video/")
}

// OptimizedName is the file name of the transcoded copy.
func (m MediaItem) OptimizedName() string {
	base := filepath.Base(m.FileName)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-optimized.mp4"
}
