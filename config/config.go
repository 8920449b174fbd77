package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Values come from an optional YAML
// file and are then overridden by environment variables.
type Config struct {
	Port   string       `yaml:"port"`
	Site   SiteConfig   `yaml:"site"`
	Checks ChecksConfig `yaml:"checks"`
	Redis  RedisConfig  `yaml:"redis"`
	Kafka  KafkaConfig  `yaml:"kafka"`
	S3     S3Config     `yaml:"s3"`
	Scan   ScanConfig   `yaml:"scan"`
	Video  VideoConfig  `yaml:"video"`
}

// SiteConfig describes the WordPress site the block renders for.
type SiteConfig struct {
	URL         string `yaml:"url"`
	StoriesFeed string `yaml:"stories_feed"`
	PublicPath  string `yaml:"public_path"`
}

// ChecksConfig holds the checklist thresholds.
type ChecksConfig struct {
	MaxPageCharacterCount  int           `yaml:"max_page_character_count"`
	PublisherLogoDimension int           `yaml:"publisher_logo_dimension"`
	PosterRatioWidth       int           `yaml:"poster_ratio_width"`
	PosterRatioHeight      int           `yaml:"poster_ratio_height"`
	MaxStoryTitleLength    int           `yaml:"max_story_title_length"`
	MaxThumbnails          int           `yaml:"max_thumbnails"`
	Disabled               []string      `yaml:"disabled"`
	TTL                    time.Duration `yaml:"ttl"`
}

// RedisConfig selects the Redis instance backing session registries and migrations.
// An empty Addr keeps registries in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig enables the story event consumer when Brokers is non-empty.
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	EventsTopic  string   `yaml:"events_topic"`
	ResultsTopic string   `yaml:"results_topic"`
	GroupID      string   `yaml:"group_id"`
}

// S3Config enables the story snapshot store when Bucket is non-empty.
type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	Profile      string `yaml:"profile"`
	Prefix       string `yaml:"prefix"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// ScanConfig configures scheduled checklist scans.
type ScanConfig struct {
	Schedule string `yaml:"schedule"`
	Enabled  bool   `yaml:"enabled"`
	// SkipUnchanged skips stories whose snapshot is unchanged since the last
	// scan. It needs Redis.
	SkipUnchanged  bool          `yaml:"skip_unchanged"`
	FingerprintTTL time.Duration `yaml:"fingerprint_ttl"`
}

// VideoConfig toggles media picker video optimization.
type VideoConfig struct {
	OptimizationEnabled bool   `yaml:"optimization_enabled"`
	WorkDir             string `yaml:"work_dir"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Port: "8080",
		Site: SiteConfig{
			URL:        "http://localhost",
			PublicPath: "/wp-content/plugins/web-stories/assets/js/",
		},
		Checks: ChecksConfig{
			MaxPageCharacterCount:  DefaultMaxPageCharacterCount,
			PublisherLogoDimension: DefaultPublisherLogoDimension,
			PosterRatioWidth:       DefaultPosterAspectRatioWidth,
			PosterRatioHeight:      DefaultPosterAspectRatioHeight,
			MaxStoryTitleLength:    DefaultMaxStoryTitleLength,
			MaxThumbnails:          DefaultMaxThumbnails,
			TTL:                    DefaultChecksTTL,
		},
		Kafka: KafkaConfig{
			EventsTopic:  StoryEventsTopic,
			ResultsTopic: ChecklistResultsTopic,
			GroupID:      ConsumerGroupID,
		},
		Scan: ScanConfig{Schedule: DefaultScanSchedule, FingerprintTTL: DefaultScanFingerprintTTL},
		Video: VideoConfig{
			OptimizationEnabled: true,
			WorkDir:             os.TempDir(),
		},
	}
}

// Load reads .env (if present), the YAML file at path (if non-empty) and the
// environment, in that order of increasing precedence.
func Load(path string) (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// PosterAspectRatio returns the configured poster width/height ratio.
func (c ChecksConfig) PosterAspectRatio() float64 {
	if c.PosterRatioHeight == 0 {
		return float64(DefaultPosterAspectRatioWidth) / float64(DefaultPosterAspectRatioHeight)
	}
	return float64(c.PosterRatioWidth) / float64(c.PosterRatioHeight)
}

// IsDisabled reports whether the named check is switched off.
func (c ChecksConfig) IsDisabled(name string) bool {
	for _, d := range c.Disabled {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("SITE_URL")); v != "" {
		c.Site.URL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("STORIES_FEED")); v != "" {
		c.Site.StoriesFeed = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_ADDR")); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASS"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("CHECKS_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Checks.TTL = time.Duration(secs) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("S3_BUCKET")); v != "" {
		c.S3.Bucket = v
	}
	if v := strings.TrimSpace(os.Getenv("S3_REGION")); v != "" {
		c.S3.Region = v
	}
	if v := strings.TrimSpace(os.Getenv("S3_PROFILE")); v != "" {
		c.S3.Profile = v
	}
	if v := strings.TrimSpace(os.Getenv("S3_PREFIX")); v != "" {
		c.S3.Prefix = v
	}
	if v := strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")); v != "" {
		c.S3.UsePathStyle = strings.EqualFold(v, "true")
	}
	if v := strings.TrimSpace(os.Getenv("SCAN_CRON")); v != "" {
		c.Scan.Schedule = v
		c.Scan.Enabled = true
	}
	if v := strings.TrimSpace(os.Getenv("SCAN_SKIP_UNCHANGED")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Scan.SkipUnchanged = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("VIDEO_OPTIMIZATION")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Video.OptimizationEnabled = b
		}
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.Checks.MaxPageCharacterCount <= 0 {
		c.Checks.MaxPageCharacterCount = d.Checks.MaxPageCharacterCount
	}
	if c.Checks.PublisherLogoDimension <= 0 {
		c.Checks.PublisherLogoDimension = d.Checks.PublisherLogoDimension
	}
	if c.Checks.PosterRatioWidth <= 0 || c.Checks.PosterRatioHeight <= 0 {
		c.Checks.PosterRatioWidth = d.Checks.PosterRatioWidth
		c.Checks.PosterRatioHeight = d.Checks.PosterRatioHeight
	}
	if c.Checks.MaxStoryTitleLength <= 0 {
		c.Checks.MaxStoryTitleLength = d.Checks.MaxStoryTitleLength
	}
	if c.Checks.MaxThumbnails <= 0 {
		c.Checks.MaxThumbnails = d.Checks.MaxThumbnails
	}
	if c.Checks.TTL <= 0 {
		c.Checks.TTL = d.Checks.TTL
	}
	if c.Kafka.EventsTopic == "" {
		c.Kafka.EventsTopic = d.Kafka.EventsTopic
	}
	if c.Kafka.ResultsTopic == "" {
		c.Kafka.ResultsTopic = d.Kafka.ResultsTopic
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = d.Kafka.GroupID
	}
	if c.Scan.Schedule == "" {
		c.Scan.Schedule = d.Scan.Schedule
	}
	if c.Scan.FingerprintTTL <= 0 {
		c.Scan.FingerprintTTL = d.Scan.FingerprintTTL
	}
	if c.S3.Prefix != "" {
		c.S3.Prefix = strings.Trim(c.S3.Prefix, "/") + "/"
	}
	if c.Site.StoriesFeed == "" && c.Site.URL != "" {
		c.Site.StoriesFeed = strings.TrimRight(c.Site.URL, "/") + "/web-stories/feed/"
	}
	if c.Video.WorkDir == "" {
		c.Video.WorkDir = d.Video.WorkDir
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
