package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"webstories/checklist"
	"webstories/types"
)

var failOnIssues bool

var checkCmd = &cobra.Command{
	Use:   "check [story.json]",
	Short: "Evaluate a story file against the checklist",
	Long: `Reads a story snapshot and prints the checklist result as JSON.

Example:
  webstories check story.json --fail-on-issues`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "Exit non-zero when any check fails")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var story types.Story
	if err := readJSONFile(args[0], &story); err != nil {
		return err
	}

	res, err := checklist.New(cfg.Checks).Evaluate(cmd.Context(), checklist.NewMemoryRegistry(), &story)
	if err != nil {
		return err
	}
	logger.Debug("story evaluated", zap.String("story", res.StoryID), zap.Int("count", res.Count))

	if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if failOnIssues && res.Count > 0 {
		return fmt.Errorf("%d checklist issue(s): %v", res.Count, res.Violations)
	}
	return nil
}
