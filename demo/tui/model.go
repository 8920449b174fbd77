package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"webstories/checklist"
	"webstories/editor"
	"webstories/types"
)

// Model is the checklist viewer state. The server owns the checklist; the
// model only mirrors the last result it saw.
type Model struct {
	Client *ChecklistClient

	SessionID string
	StoryID   string
	Story     *types.Story

	Result   *checklist.Result
	Selected int

	// LastHighlight is the most recent highlight consumed from the session.
	LastHighlight *checklist.Highlight
	Help          *editor.HelpCenterState

	Err       error
	Connected bool
}

// NewModel creates a viewer for story. A nil story attaches to whatever the
// session evaluates next.
func NewModel(baseURL string, storyID string, story *types.Story) Model {
	if story != nil && storyID == "" {
		storyID = story.ID
	}
	return Model{
		Client:  NewChecklistClient(baseURL),
		StoryID: storyID,
		Story:   story,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return createSession(m.Client, m.StoryID)
}

// Cards returns the cards of the last result.
func (m Model) Cards() []*checklist.Card {
	if m.Result == nil {
		return nil
	}
	return m.Result.Cards
}

// SelectedCard returns the card under the cursor.
func (m Model) SelectedCard() *checklist.Card {
	cards := m.Cards()
	if m.Selected < 0 || m.Selected >= len(cards) {
		return nil
	}
	return cards[m.Selected]
}

func (m Model) clampSelection() Model {
	n := len(m.Cards())
	switch {
	case n == 0:
		m.Selected = 0
	case m.Selected >= n:
		m.Selected = n - 1
	case m.Selected < 0:
		m.Selected = 0
	}
	return m
}
