package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webstories/checklist"
	"webstories/common"
	"webstories/orchestrator"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Evaluate every story stored in S3 once",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.S3.Bucket == "" {
		return fmt.Errorf("scan requires S3_BUCKET")
	}
	store, err := newStoryStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	runner := orchestrator.NewRunner(store, checklist.New(cfg.Checks), nil, orchestrator.NewManager(), logger)
	if cfg.Scan.SkipUnchanged && cfg.Redis.Addr != "" {
		rdb, err := common.NewRedis(cmd.Context(), cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		withFingerprints(runner, cfg, rdb)
	}
	summary, err := runner.RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), summary)
}
