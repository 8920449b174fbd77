package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"webstories/video"
)

var (
	optimizeMime   string
	optimizeUpload bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [input] [output]",
	Short: "Transcode a video to the optimized MP4 profile",
	Long: `Runs ffmpeg to produce an H.264/AAC MP4 capped at 720p. The output
defaults to "<name>-optimized.mp4" next to the input.

Examples:
  webstories optimize clip.mov
  webstories optimize clip.mov out.mp4 --upload`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeMime, "mime", "", "Input mime type (guessed from the extension when empty)")
	optimizeCmd.Flags().BoolVar(&optimizeUpload, "upload", false, "Upload the optimized file to the configured S3 bucket")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	in := args[0]
	mimeType := optimizeMime
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(in))
	}
	item := video.MediaItem{FileName: filepath.Base(in), MimeType: mimeType}

	out := filepath.Join(filepath.Dir(in), item.OptimizedName())
	if len(args) == 2 {
		out = args[1]
	}

	optimized, err := video.NewOptimizer(logger).Optimize(cmd.Context(), item, in, out)
	if err != nil {
		return err
	}
	optimized.URL = out

	if optimizeUpload {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("upload requires S3_BUCKET")
		}
		store, err := newStoryStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		f, err := os.Open(out)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", out, err)
		}
		defer f.Close()
		key, err := store.PutMedia(cmd.Context(), optimized.FileName, f, optimized.MimeType)
		if err != nil {
			return err
		}
		logger.Info("optimized video uploaded", zap.String("key", key))
		optimized.URL = key
	}
	return writeJSON(cmd.OutOrStdout(), optimized)
}
