package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"webstories/checklist"
	"webstories/config"
	"webstories/types"
)

// ErrScanInProgress is returned when a scan is requested while one runs.
var ErrScanInProgress = errors.New("scan already in progress")

// StoryLister reads stored story snapshots.
type StoryLister interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, id string) (*types.Story, error)
}

// Publisher receives the checklist result of every scanned story.
type Publisher interface {
	PublishResult(ctx context.Context, res *checklist.Result) error
}

// Runner evaluates every stored story against the checklist.
type Runner struct {
	store     StoryLister
	checklist *checklist.Checklist
	publisher Publisher
	manager   *Manager
	logger    *zap.Logger

	fingerprints Fingerprints
}

// NewRunner builds a runner. publisher may be nil.
func NewRunner(store StoryLister, cl *checklist.Checklist, publisher Publisher, manager *Manager, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if manager == nil {
		manager = NewManager()
	}
	return &Runner{store: store, checklist: cl, publisher: publisher, manager: manager, logger: logger}
}

func (r *Runner) Manager() *Manager { return r.manager }

// WithFingerprints makes the runner skip stories whose snapshot has not
// changed since it last scanned them.
func (r *Runner) WithFingerprints(f Fingerprints) *Runner {
	r.fingerprints = f
	return r
}

// RunOnce scans every stored story once. Stories that fail to load or
// publish are counted and skipped.
func (r *Runner) RunOnce(ctx context.Context) (*ScanSummary, error) {
	if !r.manager.TryStart() {
		return nil, ErrScanInProgress
	}

	ids, err := r.store.List(ctx)
	if err != nil {
		err = fmt.Errorf("failed to list stories: %w", err)
		r.manager.SetError(err)
		return nil, err
	}
	r.manager.AddLog("Found %d stories", len(ids))

	summary := &ScanSummary{
		StartedAt:  r.manager.now(),
		Stories:    len(ids),
		Violations: make(map[string]int),
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			r.manager.SetError(err)
			return nil, err
		}
		res, err := r.scanStory(ctx, id)
		if err != nil {
			summary.Failed++
			r.logger.Warn("story scan failed", zap.String("story", id), zap.Error(err))
			r.manager.AddLog("[%d/%d] %s failed: %v", i+1, len(ids), id, err)
			continue
		}
		if res == nil {
			summary.Skipped++
			r.manager.AddLog("[%d/%d] %s unchanged", i+1, len(ids), id)
			continue
		}
		if res.Count > 0 {
			summary.Flagged++
		}
		for _, v := range res.Violations {
			summary.Violations[v]++
		}
		r.manager.AddLog("[%d/%d] %s: %d issue(s)", i+1, len(ids), id, res.Count)
	}

	summary.FinishedAt = r.manager.now()
	r.manager.Complete(summary)
	r.logger.Info("checklist scan complete",
		zap.Int("stories", summary.Stories),
		zap.Int("flagged", summary.Flagged),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// scanStory evaluates one story. It returns a nil result for stories skipped
// as unchanged.
func (r *Runner) scanStory(ctx context.Context, id string) (*checklist.Result, error) {
	sctx, cancel := context.WithTimeout(ctx, config.ScanUploadTimeout)
	defer cancel()

	story, err := r.store.Load(sctx, id)
	if err != nil {
		return nil, err
	}

	var hash string
	if r.fingerprints != nil {
		if hash, err = StoryHash(story); err != nil {
			return nil, err
		}
		unchanged, err := r.fingerprints.Unchanged(sctx, id, hash)
		if err != nil {
			return nil, err
		}
		if unchanged {
			return nil, nil
		}
	}

	res, err := r.checklist.Evaluate(sctx, checklist.NewMemoryRegistry(), story)
	if err != nil {
		return nil, err
	}
	if r.publisher != nil {
		if err := r.publisher.PublishResult(sctx, res); err != nil {
			return nil, err
		}
	}
	if r.fingerprints != nil {
		if err := r.fingerprints.Remember(sctx, id, hash); err != nil {
			return nil, err
		}
	}
	return res, nil
}
