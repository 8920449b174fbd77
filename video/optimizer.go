package video

import (
	"context"
	"fmt"
	"os/exec"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"webstories/config"
	"webstories/migrations"
)

// playableTypes are the video types every story player handles natively.
var playableTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
}

// NeedsOptimization reports whether a video must be transcoded before it can
// be used in a story: unsupported containers and anything larger than 720p.
func NeedsOptimization(item MediaItem) bool {
	if !item.IsVideo() {
		return false
	}
	if !playableTypes[item.MimeType] {
		return true
	}
	return min(item.Width, item.Height) > config.VideoMaxHeight
}

// Listable reports whether the media picker may offer item. Videos that need
// transcoding are hidden unless optimization is enabled.
func Listable(item MediaItem, optimizationEnabled bool) bool {
	if !item.IsVideo() {
		return true
	}
	return optimizationEnabled || playableTypes[item.MimeType]
}

// Optimizer transcodes videos to H.264/AAC MP4.
type Optimizer struct {
	logger *zap.Logger
	run    func(ctx context.Context, stream *ffmpeg.Stream) error
}

func NewOptimizer(logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{logger: logger, run: runStream}
}

// Optimize transcodes the file at in to out and returns the optimized item.
func (o *Optimizer) Optimize(ctx context.Context, item MediaItem, in, out string) (MediaItem, error) {
	if !item.IsVideo() {
		return MediaItem{}, fmt.Errorf("%w: %s", ErrNotVideo, item.MimeType)
	}

	stream := ffmpeg.Input(in).
		Output(out, ffmpeg.KwArgs{
			"c:v":      config.VideoCodec,
			"preset":   config.VideoPreset,
			"crf":      config.VideoCRF,
			"pix_fmt":  "yuv420p",
			"vf":       scaleFilter(),
			"c:a":      config.AudioCodec,
			"b:a":      config.AudioBitrate,
			"movflags": "+faststart",
		}).
		OverWriteOutput()

	o.logger.Info("optimizing video", zap.String("file", item.FileName), zap.String("mime", item.MimeType))
	if err := o.run(ctx, stream); err != nil {
		return MediaItem{}, fmt.Errorf("ffmpeg failed: %w", err)
	}

	optimized := item
	optimized.ID = 0
	optimized.FileName = item.OptimizedName()
	optimized.MimeType = "video/mp4"
	optimized.MediaSource = migrations.MediaSourceVideoOptimization
	optimized.Width, optimized.Height = fitDimensions(item.Width, item.Height)
	return optimized, nil
}

// scaleFilter caps the long side at the maximum width, keeping the aspect
// ratio and even dimensions.
func scaleFilter() string {
	long := config.VideoMaxWidth
	return fmt.Sprintf("scale='if(gt(iw,ih),min(%d,iw),-2)':'if(gt(iw,ih),-2,min(%d,ih))'", long, long)
}

// fitDimensions mirrors scaleFilter for known input dimensions.
func fitDimensions(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	long := config.VideoMaxWidth
	if w > h {
		if w <= long {
			return w, h
		}
		return long, even(h * long / w)
	}
	if h <= long {
		return w, h
	}
	return even(w * long / h), long
}

func even(n int) int { return n - n%2 }

// runStream runs ffmpeg and kills it when ctx is cancelled.
func runStream(ctx context.Context, stream *ffmpeg.Stream) error {
	cmd := stream.Compile()
	if err := cmd.Start(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		killProcess(cmd)
		<-done
		return ctx.Err()
	}
}

func killProcess(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
