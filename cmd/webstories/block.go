package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webstories/block"
	"webstories/config"
	"webstories/rssfeeds"
)

var (
	blockFeed  string
	feedMax    int
	blockSetup bool
)

var renderBlockCmd = &cobra.Command{
	Use:   "render-block [attributes.json]",
	Short: "Render the stories block for a set of block attributes",
	Long: `Renders block markup the way the site would for the given attributes.
Listing blocks query the stories feed; embeds render an amp-story-player.

Examples:
  webstories render-block latest.json --feed https://example.com/web-stories/feed/
  webstories render-block --settings`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRenderBlock,
}

var feedCmd = &cobra.Command{
	Use:   "feed [preset-or-url]",
	Short: "Fetch a stories feed and print it as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFeed,
}

func init() {
	renderBlockCmd.Flags().StringVar(&blockFeed, "feed", "", "Feed preset or URL used for listing blocks")
	renderBlockCmd.Flags().BoolVar(&blockSetup, "settings", false, "Print the block editor settings instead of rendering")
	feedCmd.Flags().IntVarP(&feedMax, "max", "n", config.MaxNumOfStories, "Maximum number of stories")
}

func runRenderBlock(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if blockSetup {
		return writeJSON(cmd.OutOrStdout(), block.Settings(cfg.Site))
	}
	if len(args) == 0 {
		return fmt.Errorf("attributes file required")
	}

	var raw map[string]any
	if err := readJSONFile(args[0], &raw); err != nil {
		return err
	}
	b := block.New(rssfeeds.NewFeedQueryRunner(feedURL(cfg, blockFeed)), block.ArchiveURL(cfg.Site), logger)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), b.RenderBlock(cmd.Context(), raw))
	return err
}

func runFeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var explicit string
	if len(args) == 1 {
		explicit = args[0]
	}
	url := feedURL(cfg, explicit)
	stories, err := rssfeeds.FetchStories(cmd.Context(), url, feedMax)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), rssfeeds.StoryFeed(url, stories))
}
