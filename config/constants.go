package config

import "time"

// Checklist constants
const (
	// LinkTappableRegionMinWidth is the smallest width of a linked element, in pixels
	LinkTappableRegionMinWidth = 48

	// LinkTappableRegionMinHeight is the smallest height of a linked element, in pixels
	LinkTappableRegionMinHeight = 48

	// AspectRatioTolerance is how far a poster ratio may drift from the target
	AspectRatioTolerance = 0.001

	// DefaultMaxPageCharacterCount is the most visible text characters a page should hold
	DefaultMaxPageCharacterCount = 200

	// DefaultPublisherLogoDimension is the minimum publisher logo width and height
	DefaultPublisherLogoDimension = 96

	// DefaultPosterAspectRatioWidth and DefaultPosterAspectRatioHeight give the 9:16 poster ratio
	DefaultPosterAspectRatioWidth  = 9
	DefaultPosterAspectRatioHeight = 16

	// DefaultMaxStoryTitleLength is the longest recommended title, in characters
	DefaultMaxStoryTitleLength = 40

	// DefaultMaxThumbnails is how many thumbnails a card shows before collapsing
	DefaultMaxThumbnails = 4

	// DefaultChecksTTL keeps a session's registry alive after its last write
	DefaultChecksTTL = 24 * time.Hour
)

// Block constants
const (
	// MaxNumOfStories is the most stories a block may list
	MaxNumOfStories = 20

	// StoryPostType is the post type slug queried by the block
	StoryPostType = "web-story"

	// StoryRestBase is the REST base of the story post type
	StoryRestBase = "web-story"

	// MediaSourceTaxonomy holds the media source terms
	MediaSourceTaxonomy = "web_story_media_source"
)

// Kafka constants
const (
	StoryEventsTopic      = "web-stories.story-events"
	ChecklistResultsTopic = "web-stories.checklist-results"
	ConsumerGroupID       = "web-stories-checklist"
)

// Video optimization constants
const (
	// VideoMaxWidth and VideoMaxHeight bound optimized output (720p)
	VideoMaxWidth  = 1280
	VideoMaxHeight = 720

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "128k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// VideoCRF is the constant rate factor used for optimized output
	VideoCRF = "23"
)

// Scan constants
const (
	// DefaultScanSchedule runs a checklist scan every 15 minutes
	DefaultScanSchedule = "*/15 * * * *"

	// ScanUploadTimeout bounds each per-story publish during a scan
	ScanUploadTimeout = 30 * time.Second

	// DefaultScanFingerprintTTL is how long an unchanged story stays skipped
	DefaultScanFingerprintTTL = 24 * time.Hour
)
