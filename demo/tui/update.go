package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case SessionCreatedMsg:
		return m.handleSessionCreated(msg)
	case ResultMsg:
		return m.handleResult(msg)
	case HighlightSentMsg:
		return m.handleHighlightSent(msg)
	case HighlightMsg:
		return m.handleHighlight(msg)
	case HelpMsg:
		return m.handleHelp(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.Selected--
		return m.clampSelection(), nil
	case "down", "j":
		m.Selected++
		return m.clampSelection(), nil
	}

	if m.SessionID == "" {
		return m, nil
	}

	switch msg.String() {
	case "enter":
		card := m.SelectedCard()
		if card == nil {
			return m, nil
		}
		actions := card.Actions()
		if len(actions) == 0 {
			return m, nil
		}
		return m, sendHighlight(m.Client, m.SessionID, actions[0])
	case "r":
		if m.Story != nil {
			return m, evaluate(m.Client, m.SessionID, m.Story)
		}
	case "?":
		return m, helpAction(m.Client, m.SessionID, "toggle")
	case "left", "h":
		if m.Help != nil && m.Help.IsOpen {
			return m, helpAction(m.Client, m.SessionID, "prev")
		}
	case "right", "l":
		if m.Help != nil && m.Help.IsOpen {
			return m, helpAction(m.Client, m.SessionID, "next")
		}
	}
	return m, nil
}

func (m Model) handleSessionCreated(msg SessionCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.SessionID = msg.ID
	m.Connected = true
	m.Err = nil
	if m.Story == nil {
		return m, tickCmd()
	}
	return m, tea.Batch(evaluate(m.Client, m.SessionID, m.Story), tickCmd())
}

func (m Model) handleResult(msg ResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	// A poll before the first evaluation returns nothing.
	if msg.Result == nil {
		return m, nil
	}
	m.Result = msg.Result
	m.Err = nil
	return m.clampSelection(), nil
}

func (m Model) handleHighlightSent(msg HighlightSentMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
	}
	return m, nil
}

func (m Model) handleHighlight(msg HighlightMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	if msg.Highlight != nil {
		m.LastHighlight = msg.Highlight
	}
	return m, nil
}

func (m Model) handleHelp(msg HelpMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Help = msg.State
	return m, nil
}

// handleTick polls the session and schedules the next tick
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.SessionID == "" {
		return m, nil
	}
	return m, tea.Batch(
		pollResult(m.Client, m.SessionID),
		pollHighlight(m.Client, m.SessionID),
		tickCmd(),
	)
}
