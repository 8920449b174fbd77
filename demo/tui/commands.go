package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"webstories/checklist"
	"webstories/types"
)

const pollInterval = 500 * time.Millisecond

func createSession(client *ChecklistClient, storyID string) tea.Cmd {
	return func() tea.Msg {
		id, err := client.CreateSession(storyID)
		return SessionCreatedMsg{ID: id, Err: err}
	}
}

func evaluate(client *ChecklistClient, sessionID string, story *types.Story) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Evaluate(sessionID, story)
		return ResultMsg{Result: res, Err: err}
	}
}

// pollResult picks up evaluations triggered by other clients or the event bus.
func pollResult(client *ChecklistClient, sessionID string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Result(sessionID)
		return ResultMsg{Result: res, Err: err}
	}
}

func pollHighlight(client *ChecklistClient, sessionID string) tea.Cmd {
	return func() tea.Msg {
		h, err := client.ConsumeHighlight(sessionID)
		return HighlightMsg{Highlight: h, Err: err}
	}
}

func sendHighlight(client *ChecklistClient, sessionID string, h checklist.Highlight) tea.Cmd {
	return func() tea.Msg {
		return HighlightSentMsg{Highlight: h, Err: client.SetHighlight(sessionID, h)}
	}
}

func helpAction(client *ChecklistClient, sessionID, action string) tea.Cmd {
	return func() tea.Msg {
		st, err := client.Help(sessionID, action)
		return HelpMsg{State: st, Err: err}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
