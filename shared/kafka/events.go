package kafka

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"webstories/checklist"
	"webstories/types"
)

// EventObserver routes a story event to its checklist session.
type EventObserver interface {
	Observe(ctx context.Context, ev types.StoryEvent) (*checklist.Result, error)
}

// ResultPublisher receives every recomputed checklist.
type ResultPublisher interface {
	PublishResult(ctx context.Context, res *checklist.Result) error
}

// NewStoryEventHandler recomputes the checklist of every story event and
// publishes the result. Events without a story id are skipped.
func NewStoryEventHandler(obs EventObserver, pub ResultPublisher, logger *zap.Logger) *TypedMessageHandler[types.StoryEvent] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypedMessageHandler[types.StoryEvent]{
		Validate: func(ev *types.StoryEvent) bool {
			return ev.StoryID != "" || ev.SessionID != ""
		},
		Process: func(ctx context.Context, ev *types.StoryEvent) error {
			res, err := obs.Observe(ctx, *ev)
			if err != nil {
				return fmt.Errorf("failed to observe %s for story %s: %w", ev.Type, ev.StoryID, err)
			}
			if res == nil || pub == nil {
				return nil
			}
			if err := pub.PublishResult(ctx, res); err != nil {
				return err
			}
			logger.Info("story checklist updated",
				zap.String("story", res.StoryID),
				zap.String("event", string(ev.Type)),
				zap.Int("count", res.Count))
			return nil
		},
		AlwaysMark: true,
		MarkFailed: true,
		Logger:     logger,
	}
}
