package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webstories/common"
	"webstories/migrations"
)

var migrateOnly string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending data migrations to Redis",
	Long: `Registers the media source terms in Redis and records the schema version.
Already applied migrations are skipped.

Examples:
  webstories migrate
  webstories migrate --only add_media_source_video-optimization`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateOnly, "only", "", "Run a single migration by name, ignoring the recorded version")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Redis.Addr == "" {
		return fmt.Errorf("migrate requires REDIS_ADDR")
	}
	rdb, err := common.NewRedis(cmd.Context(), cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	runner := migrations.NewRunner(migrations.NewRedisTermStore(rdb), logger, migrations.MediaSourceMigrations()...)
	if migrateOnly != "" {
		if err := runner.RunOne(cmd.Context(), migrateOnly); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", migrateOnly)
		return nil
	}

	applied, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to migrate")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
	}
	return nil
}
