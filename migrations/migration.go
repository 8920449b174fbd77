package migrations

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// ErrUnknownMigration is returned when a migration name is not registered.
var ErrUnknownMigration = errors.New("unknown migration")

// TermStore persists taxonomy terms and the applied schema version.
type TermStore interface {
	AddTerm(ctx context.Context, taxonomy, term string) (bool, error)
	HasTerm(ctx context.Context, taxonomy, term string) (bool, error)
	Terms(ctx context.Context, taxonomy string) ([]string, error)
	Version(ctx context.Context) (int, error)
	SetVersion(ctx context.Context, version int) error
}

// Migration is one idempotent, versioned data change.
type Migration interface {
	Name() string
	Version() int
	Migrate(ctx context.Context, store TermStore) error
}

// Runner applies migrations newer than the stored version, in order.
type Runner struct {
	migrations []Migration
	store      TermStore
	logger     *zap.Logger
}

func NewRunner(store TermStore, logger *zap.Logger, migrations ...Migration) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	sorted := append([]Migration(nil), migrations...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Version() < sorted[j].Version() })
	return &Runner{migrations: sorted, store: store, logger: logger}
}

// Migrations returns the registered migrations in version order.
func (r *Runner) Migrations() []Migration { return r.migrations }

// Run applies every pending migration and records the version after each,
// so a failed run resumes where it stopped. It returns the names applied.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	current, err := r.store.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read db version: %w", err)
	}

	var applied []string
	for _, m := range r.migrations {
		if m.Version() <= current {
			continue
		}
		if err := m.Migrate(ctx, r.store); err != nil {
			return applied, fmt.Errorf("migration %s failed: %w", m.Name(), err)
		}
		if err := r.store.SetVersion(ctx, m.Version()); err != nil {
			return applied, fmt.Errorf("failed to record version %d: %w", m.Version(), err)
		}
		current = m.Version()
		applied = append(applied, m.Name())
		r.logger.Info("migration applied", zap.String("name", m.Name()), zap.Int("version", m.Version()))
	}
	return applied, nil
}

// RunOne applies a single migration by name regardless of the stored version.
func (r *Runner) RunOne(ctx context.Context, name string) error {
	for _, m := range r.migrations {
		if m.Name() == name {
			if err := m.Migrate(ctx, r.store); err != nil {
				return fmt.Errorf("migration %s failed: %w", name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownMigration, name)
}
