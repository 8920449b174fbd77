package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"webstories/api"
	"webstories/block"
	"webstories/checklist"
	"webstories/common"
	"webstories/config"
	"webstories/orchestrator"
	"webstories/rssfeeds"
	"webstories/shared/kafka"
	"webstories/video"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the checklist HTTP API",
	Long: `Starts the HTTP API. Optional backends are enabled by configuration:

  REDIS_ADDR               session registries live in Redis instead of memory
  S3_BUCKET                story snapshots and optimized media go to S3
  KAFKA_BOOTSTRAP_SERVERS  story events are consumed and results published
  SCAN_CRON                stored stories are scanned on a schedule`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := checklist.RegistryFactory(checklist.MemoryRegistries)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		if rdb, err = common.NewRedis(ctx, cfg.Redis); err != nil {
			return err
		}
		defer rdb.Close()
		ttl := cfg.Checks.TTL
		factory = func(sessionID string) checklist.Registry {
			return checklist.NewRedisRegistry(rdb, sessionID, ttl)
		}
		logger.Info("session registries backed by redis", zap.String("addr", cfg.Redis.Addr))
	}
	sessions := checklist.NewSessions(checklist.New(cfg.Checks), factory, logger)

	deps := api.Deps{
		Sessions:  sessions,
		Block:     newBlock(cfg),
		Site:      cfg.Site,
		Video:     cfg.Video,
		Optimizer: video.NewOptimizer(logger),
		Logger:    logger,
	}

	var store *common.StoryStore
	if cfg.S3.Bucket != "" {
		if store, err = newStoryStore(ctx, cfg); err != nil {
			return err
		}
		deps.Stories = store
	}

	var publisher orchestrator.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ResultsTopic, logger)
		if err != nil {
			return err
		}
		defer producer.Close()
		publisher = producer

		consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
			GroupID: cfg.Kafka.GroupID,
			Handler: kafka.NewStoryEventHandler(sessions, producer, logger),
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start kafka consumer: %w", err)
		}
	}

	if store != nil {
		runner := orchestrator.NewRunner(store, sessions.Checklist(), publisher, orchestrator.NewManager(), logger)
		withFingerprints(runner, cfg, rdb)
		deps.Scans = runner
		if cfg.Scan.Enabled {
			scheduler := orchestrator.NewScheduler(runner, logger)
			if err := scheduler.Start(cfg.Scan.Schedule); err != nil {
				return err
			}
			defer scheduler.Stop()
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	if err := sessions.CloseAll(shutdownCtx); err != nil {
		logger.Warn("failed to clear session registries", zap.Error(err))
	}
	return nil
}

func newBlock(cfg *config.Config) *block.Block {
	return block.New(rssfeeds.NewFeedQueryRunner(feedURL(cfg, "")), block.ArchiveURL(cfg.Site), logger)
}

// feedURL prefers an explicit feed, then the configured one, then the default preset.
func feedURL(cfg *config.Config, explicit string) string {
	switch {
	case explicit != "":
		return rssfeeds.ResolveFeedURL(explicit)
	case cfg.Site.StoriesFeed != "":
		return rssfeeds.ResolveFeedURL(cfg.Site.StoriesFeed)
	default:
		return rssfeeds.ResolveFeedURL(rssfeeds.DefaultFeedPreset)
	}
}

func newStoryStore(ctx context.Context, cfg *config.Config) (*common.StoryStore, error) {
	client, err := common.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}
	return common.NewStoryStore(client, cfg.S3.Bucket, cfg.S3.Prefix), nil
}

// withFingerprints enables skipping unchanged stories when configured and
// Redis is available.
func withFingerprints(runner *orchestrator.Runner, cfg *config.Config, rdb *redis.Client) {
	if !cfg.Scan.SkipUnchanged {
		return
	}
	if rdb == nil {
		logger.Warn("scan.skip_unchanged needs redis; scanning every story")
		return
	}
	runner.WithFingerprints(orchestrator.NewRedisFingerprints(rdb, cfg.Scan.FingerprintTTL))
}
