package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"webstories/demo/tui"
	"webstories/types"
)

var (
	tuiURL     string
	tuiStoryID string
)

var tuiCmd = &cobra.Command{
	Use:   "tui [story.json]",
	Short: "Browse a story's checklist in the terminal",
	Long: `Opens a checklist session on a running server and shows its cards.
With a story file the story is evaluated right away; without one the viewer
follows whatever the session is sent next, e.g. from the event bus.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiURL, "url", "", "Server URL (defaults to http://localhost:<port>)")
	tuiCmd.Flags().StringVar(&tuiStoryID, "story-id", "", "Story ID to attach to")
}

func runTUI(cmd *cobra.Command, args []string) error {
	url := tuiURL
	if url == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		url = "http://localhost:" + cfg.Port
	}

	var story *types.Story
	if len(args) == 1 {
		story = &types.Story{}
		if err := readJSONFile(args[0], story); err != nil {
			return err
		}
	}
	if story == nil && tuiStoryID == "" {
		return fmt.Errorf("a story file or --story-id is required")
	}

	program := tea.NewProgram(tui.NewModel(url, tuiStoryID, story), tea.WithContext(cmd.Context()))
	_, err := program.Run()
	return err
}
