package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"webstories/checklist"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	title := TextTitle
	if m.StoryID != "" {
		title += " · " + m.StoryID
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	switch {
	case !m.Connected && m.Err == nil:
		b.WriteString(InfoStyle.Render(TextConnecting))
	case m.Result == nil && m.Err == nil:
		b.WriteString(InfoStyle.Render(TextEvaluating))
	case m.Result != nil:
		b.WriteString(m.renderCards())
	}
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\n")
	}

	if m.Help != nil && m.Help.IsOpen {
		b.WriteString(BoxStyle.Render(m.renderHelp()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	footer := TextFooter
	if m.Help != nil && m.Help.IsOpen {
		footer += " | " + TextFooterHelpNav
	}
	b.WriteString(InfoStyle.Render(footer))
	return b.String()
}

func (m Model) renderCards() string {
	cards := m.Cards()
	if len(cards) == 0 {
		return StatusStyle.Render(TextNoIssues)
	}

	var b strings.Builder
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d issue(s)", m.Result.Count)))
	b.WriteString("\n")
	for i, card := range cards {
		b.WriteString("\n")
		b.WriteString(m.renderCard(card, i == m.Selected))
	}
	return b.String()
}

func (m Model) renderCard(card *checklist.Card, selected bool) string {
	style, ok := categoryStyles[string(card.Category)]
	if !ok {
		style = InfoStyle
	}
	head := fmt.Sprintf("[%s] %s", style.Render(string(card.Category)), card.Title)
	if card.Type == checklist.CardMultipleIssue {
		head += InfoStyle.Render(fmt.Sprintf(" (%d)", card.ThumbnailCount))
	}
	if selected {
		head = SelectedStyle.Render("> ") + head
	} else {
		head = "  " + head
	}

	lines := []string{head}
	if selected {
		for _, f := range card.Footer {
			lines = append(lines, InfoStyle.Render("    "+f))
		}
		for _, t := range card.Thumbnails {
			lines = append(lines, InfoStyle.Render(fmt.Sprintf("    %s %s: %s", t.Kind, t.ID, t.Label)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHelp() string {
	st := m.Help
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Help center: %s", st.CurrentTip))
	b.WriteString("\n")
	if st.Tip != nil {
		b.WriteString(st.Tip.Title + "\n")
		b.WriteString(InfoStyle.Render(st.Tip.Description) + "\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("tip %d of %d, %d unread", st.NavigationIndex, len(st.NavigationFlow)-1, st.UnreadTipsCount)))
	return b.String()
}

// statusLine shows the last consumed highlight.
func (m Model) statusLine() string {
	return StatusStyle.Render("Last highlight: " + describeHighlight(m.LastHighlight))
}

func describeHighlight(h *checklist.Highlight) string {
	if h == nil || h.IsZero() {
		return TextNoHighlight
	}
	var parts []string
	if h.Region != "" {
		parts = append(parts, "region "+string(h.Region))
	}
	if h.PageID != "" {
		parts = append(parts, "page "+h.PageID)
	}
	if h.ElementID != "" {
		parts = append(parts, "element "+h.ElementID)
	}
	if len(h.Elements) > 0 {
		parts = append(parts, "elements "+strings.Join(h.Elements, ","))
	}
	return strings.Join(parts, " ")
}
