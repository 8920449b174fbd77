package video

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"webstories/migrations"
)

func TestNeedsOptimization(t *testing.T) {
	tests := []struct {
		name string
		item MediaItem
		want bool
	}{
		{"mov", MediaItem{MimeType: "video/quicktime"}, true},
		{"small mp4", MediaItem{MimeType: "video/mp4", Width: 720, Height: 1280}, false},
		{"4k mp4", MediaItem{MimeType: "video/mp4", Width: 2160, Height: 3840}, true},
		{"webm", MediaItem{MimeType: "video/webm"}, false},
		{"image", MediaItem{MimeType: "image/jpeg", Width: 4000, Height: 4000}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsOptimization(tt.item))
		})
	}
}

func TestListable(t *testing.T) {
	mov := MediaItem{FileName: "small-video.mov", MimeType: "video/quicktime"}

	assert.False(t, Listable(mov, false), ".mov is hidden without optimization")
	assert.True(t, Listable(mov, true))
	assert.True(t, Listable(MediaItem{MimeType: "video/mp4"}, false))
	assert.True(t, Listable(MediaItem{MimeType: "image/png"}, false))
}

func TestOptimize(t *testing.T) {
	var args []string
	o := NewOptimizer(zap.NewNop())
	o.run = func(_ context.Context, s *ffmpeg.Stream) error {
		args = s.GetArgs()
		return nil
	}

	item := MediaItem{ID: 7, FileName: "uploads/small-video.mov", MimeType: "video/quicktime", Width: 1080, Height: 1920}
	got, err := o.Optimize(context.Background(), item, "/tmp/in.mov", "/tmp/out.mp4")
	require.NoError(t, err)

	assert.Equal(t, "small-video-optimized.mp4", got.FileName)
	assert.Equal(t, "video/mp4", got.MimeType)
	assert.Equal(t, migrations.MediaSourceVideoOptimization, got.MediaSource)
	assert.Equal(t, 720, got.Width)
	assert.Equal(t, 1280, got.Height)

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-i /tmp/in.mov")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-movflags +faststart")
	assert.Contains(t, joined, "/tmp/out.mp4")
}

func TestOptimizeRejectsImages(t *testing.T) {
	_, err := NewOptimizer(nil).Optimize(context.Background(), MediaItem{MimeType: "image/png"}, "a", "b")
	assert.ErrorIs(t, err, ErrNotVideo)
}

func TestOptimizeFailure(t *testing.T) {
	o := NewOptimizer(nil)
	o.run = func(context.Context, *ffmpeg.Stream) error { return errors.New("exit status 1") }

	_, err := o.Optimize(context.Background(), MediaItem{MimeType: "video/quicktime"}, "a", "b")
	assert.ErrorContains(t, err, "ffmpeg failed")
}

func TestFitDimensions(t *testing.T) {
	w, h := fitDimensions(3840, 2160)
	assert.Equal(t, []int{1280, 720}, []int{w, h})

	w, h = fitDimensions(640, 360)
	assert.Equal(t, []int{640, 360}, []int{w, h})

	w, h = fitDimensions(0, 0)
	assert.Equal(t, []int{0, 0}, []int{w, h})
}
