package repair

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/Jacoboon/GameWatcher/internal/catalog"
	"github.com/Jacoboon/GameWatcher/internal/config"
	"github.com/Jacoboon/GameWatcher/internal/fault"
	"github.com/Jacoboon/GameWatcher/internal/fileutil"
	"github.com/Jacoboon/GameWatcher/internal/inventory"
	"github.com/Jacoboon/GameWatcher/internal/logging"
)

// RunOptions adjusts a single run.
type RunOptions struct {
	// DryRun computes the report without writing the catalog.
	DryRun bool
}

// Runner performs complete repair runs against one configured repository.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner builds a runner. A nil logger discards output.
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("repair runner requires config")
	}
	return &Runner{cfg: cfg, logger: logging.NewComponentLogger(logger, "repair")}, nil
}

// LockPath returns the advisory lock file guarding the catalog.
func (r *Runner) LockPath() string {
	return r.cfg.Paths.Catalog + ".lock"
}

// Run loads, repairs, and (unless dry) saves the catalog. Another run holding
// the lock makes Run fail with fault.ErrLocked before the catalog is read.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldCorrelationID, runID))
	catalogPath := r.cfg.Paths.Catalog
	voicesRoot := r.cfg.Paths.Voices

	if _, err := os.Stat(catalogPath); err != nil {
		marker := fault.ErrConfiguration
		if errors.Is(err, fs.ErrNotExist) {
			marker = fault.ErrNotFound
		}
		return nil, fault.Wrap(marker, "repair", "locate catalog", catalogPath, err)
	}

	unlock, err := r.lock(opts.DryRun)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release catalog lock", "lock_release_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "a stale lock file may remain next to the catalog"))
		}
	}()

	logger.Info("repair starting",
		logging.String("repo_root", r.cfg.Root),
		logging.String("catalog", catalogPath),
		logging.String("voices", voicesRoot),
		logging.Bool("dry_run", opts.DryRun))

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded dialogue catalog", logging.Int("entry_count", len(cat.Entries)))

	inv, err := inventory.Scan(ctx, voicesRoot, inventory.Options{
		Extension:    r.cfg.Inventory.Extension,
		ExcludedDirs: r.cfg.Inventory.ExcludedDirs,
		Workers:      r.cfg.Inventory.ScanWorkers,
	})
	if err != nil {
		return nil, err
	}
	for _, speaker := range inv.Speakers() {
		logger.Info("found audio files",
			logging.String(logging.FieldSpeaker, speaker.Name),
			logging.Int("file_count", speaker.Available))
	}

	report, err := Apply(ctx, cat.Entries, inv, Options{
		ReadyStatus: r.cfg.Repair.ReadyStatus,
		ReadyColor:  r.cfg.Repair.ReadyColor,
		Exists:      r.audioExists,
		FormatPath:  r.formatPath,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	report.RunID = runID
	report.CatalogPath = catalogPath
	report.VoicesRoot = voicesRoot
	report.DryRun = opts.DryRun

	if !opts.DryRun {
		// Last chance to abort without touching the catalog.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := cat.Save(); err != nil {
			return nil, err
		}
		report.Saved = true
	}

	logger.Info("repair finished",
		logging.Int("examined", report.Examined),
		logging.Int("kept", report.Kept),
		logging.Int("updated", report.Updated()),
		logging.Int("unresolved", len(report.Unresolved)),
		logging.Bool("saved", report.Saved))
	return report, nil
}

// Inventory scans the voices tree without touching the catalog.
func (r *Runner) Inventory(ctx context.Context) (*inventory.Inventory, error) {
	return inventory.Scan(ctx, r.cfg.Paths.Voices, inventory.Options{
		Extension:    r.cfg.Inventory.Extension,
		ExcludedDirs: r.cfg.Inventory.ExcludedDirs,
		Workers:      r.cfg.Inventory.ScanWorkers,
	})
}

// lock takes an exclusive lock for writing runs and a shared one for dry runs.
func (r *Runner) lock(shared bool) (func() error, error) {
	lock := flock.New(r.LockPath())
	var (
		ok  bool
		err error
	)
	if shared {
		ok, err = lock.TryRLock()
	} else {
		ok, err = lock.TryLock()
	}
	if err != nil {
		return nil, fault.Wrap(fault.ErrLocked, "repair", "acquire lock", r.LockPath(), err)
	}
	if !ok {
		return nil, fault.Wrap(fault.ErrLocked, "repair", "acquire lock", "another audiofix run is using "+r.cfg.Paths.Catalog, nil)
	}
	return lock.Unlock, nil
}

// audioExists checks a stored path; relative paths are taken from the
// repository root.
func (r *Runner) audioExists(audioPath string) bool {
	if !filepath.IsAbs(audioPath) && r.cfg.Root != "" {
		audioPath = filepath.Join(r.cfg.Root, filepath.FromSlash(audioPath))
	}
	return fileutil.Exists(audioPath)
}

func (r *Runner) formatPath(file string) string {
	if r.cfg.Repair.PathStyle != config.PathStyleRelative || r.cfg.Root == "" {
		return file
	}
	rel, err := filepath.Rel(r.cfg.Root, file)
	if err != nil {
		r.logger.Debug("keeping absolute path", logging.String("file", file), logging.Error(err))
		return file
	}
	return filepath.ToSlash(rel)
}

