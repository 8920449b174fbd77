package tui

// UI Text Constants
const (
	TextTitle         = "Story checklist"
	TextConnecting    = "Connecting to checklist server..."
	TextEvaluating    = "Evaluating story..."
	TextNoIssues      = "No issues found. Ready to publish."
	TextNoHighlight   = "none"
	TextFooter        = "↑/↓ select | enter highlight | r re-check | ? help | q quit"
	TextFooterHelpNav = "←/→ help tips"
)
