package tui

import (
	"time"

	"webstories/checklist"
	"webstories/editor"
)

// Messages for the tea program (polling-based)

// SessionCreatedMsg is sent once the checklist session exists.
type SessionCreatedMsg struct {
	ID  string
	Err error
}

// ResultMsg carries a checklist result from an evaluation or a poll.
type ResultMsg struct {
	Result *checklist.Result
	Err    error
}

// HighlightSentMsg is sent after a card action was dispatched.
type HighlightSentMsg struct {
	Highlight checklist.Highlight
	Err       error
}

// HighlightMsg carries the highlight the editor side consumed, if any.
type HighlightMsg struct {
	Highlight *checklist.Highlight
	Err       error
}

// HelpMsg carries the help center state after an action.
type HelpMsg struct {
	State *editor.HelpCenterState
	Err   error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
