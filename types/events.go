package types

import "time"

// EventType names a story state change.
type EventType string

const (
	EventStoryUpdated           EventType = "story.updated"
	EventStorySaved             EventType = "story.saved"
	EventStoryPublished         EventType = "story.published"
	EventReplaceBackgroundMedia EventType = "story.replaceBackgroundMedia"
	EventReplaceForegroundMedia EventType = "story.replaceForegroundMedia"
)

// StoryEvent is a story change observed on the event bus.
type StoryEvent struct {
	StoryID   string    `json:"story_id"`
	SessionID string    `json:"session_id,omitempty"`
	Type      EventType `json:"type"`
	Story     *Story    `json:"story,omitempty"`
	EmittedAt time.Time `json:"emitted_at"`
}
