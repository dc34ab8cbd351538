package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"filesort/internal/config"
	"filesort/internal/logging"
	"filesort/internal/organizer"
)

// ErrAlreadyRunning is returned by Start when another watcher holds the lock.
var ErrAlreadyRunning = errors.New("another filesort watcher is already running for this state directory")

// ErrBusy is returned by RunOnce when a pass is already in progress.
var ErrBusy = errors.New("organize pass already in progress")

// Runner performs one organize pass. *organizer.Engine satisfies it.
type Runner interface {
	Organize(ctx context.Context, req organizer.Request) (organizer.Result, error)
}

// Recorder persists finished passes. *history.Store satisfies it.
type Recorder interface {
	RecordRun(ctx context.Context, res organizer.Result) error
}

// Watcher schedules organize passes over a single directory.
type Watcher struct {
	runner   Runner
	recorder Recorder
	logger   *slog.Logger
	request  organizer.Request
	schedule string
	runFirst bool
	onResult func(organizer.Result, error)

	lockPath string
	lock     *flock.Flock

	cron    *cron.Cron
	running atomic.Bool
	busy    atomic.Bool
	passes  sync.WaitGroup

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// Option customizes a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger; the watcher tags it with component=watch.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logging.NewComponentLogger(logger, "watch") }
}

// WithRecorder stores every finished pass.
func WithRecorder(r Recorder) Option {
	return func(w *Watcher) { w.recorder = r }
}

// WithSchedule overrides the configured cron schedule.
func WithSchedule(schedule string) Option {
	return func(w *Watcher) {
		if s := strings.TrimSpace(schedule); s != "" {
			w.schedule = s
		}
	}
}

// WithRunOnStart runs one pass immediately after Start instead of waiting for
// the first tick.
func WithRunOnStart() Option {
	return func(w *Watcher) { w.runFirst = true }
}

// WithResultHook is called after every pass, including failed ones.
func WithResultHook(fn func(organizer.Result, error)) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// New constructs a watcher for req using cfg's schedule and lock path.
func New(cfg *config.Config, runner Runner, req organizer.Request, opts ...Option) (*Watcher, error) {
	if cfg == nil || runner == nil {
		return nil, errors.New("watcher requires config and runner")
	}
	if strings.TrimSpace(req.Root) == "" {
		return nil, errors.New("watcher requires a directory")
	}
	lockPath := cfg.WatchLockPath()
	w := &Watcher{
		runner:   runner,
		logger:   logging.NewComponentLogger(nil, "watch"),
		request:  req,
		schedule: cfg.Watch.Schedule,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	for _, opt := range opts {
		opt(w)
	}
	if _, err := cron.ParseStandard(w.schedule); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", w.schedule, err)
	}
	return w, nil
}

// Schedule returns the cron expression in effect.
func (w *Watcher) Schedule() string {
	return w.schedule
}

// LockPath returns the lock file guarding this watcher.
func (w *Watcher) LockPath() string {
	return w.lockPath
}

// Start acquires the lock and begins scheduling passes.
func (w *Watcher) Start(ctx context.Context) error {
	if w.running.Load() {
		return errors.New("watcher already running")
	}

	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	cl := cronLogger{logger: w.logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))
	if _, err := c.AddFunc(w.schedule, w.tick); err != nil {
		_ = w.lock.Unlock()
		return fmt.Errorf("schedule organize pass: %w", err)
	}

	w.mu.Lock()
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.cron = c
	w.mu.Unlock()

	w.running.Store(true)
	c.Start()
	w.logger.Info("watcher started",
		logging.String("root", w.request.Root),
		logging.String("schedule", w.schedule),
		logging.Bool("recursive", w.request.Recursive),
		logging.String("lock", w.lockPath),
	)

	if w.runFirst {
		w.passes.Go(w.tick)
	}
	return nil
}

// Stop halts scheduling, waits for a running pass to finish and releases the lock.
func (w *Watcher) Stop() {
	if !w.running.Load() {
		return
	}
	w.mu.Lock()
	c := w.cron
	cancel := w.cancel
	w.cron = nil
	w.cancel = nil
	w.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	w.passes.Wait()
	if cancel != nil {
		cancel()
	}
	if err := w.lock.Unlock(); err != nil {
		logging.WarnWithContext(w.logger, "failed to release watch lock", "watch_lock_release_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the next watcher may report a stale lock"),
			logging.String(logging.FieldErrorHint, "remove "+w.lockPath+" if no watcher is running"),
		)
	}
	w.running.Store(false)
	w.logger.Info("watcher stopped")
}

// Run starts the watcher and blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

// RunOnce performs a single pass now. It returns ErrBusy when another pass
// is still running.
func (w *Watcher) RunOnce(ctx context.Context) (organizer.Result, error) {
	if !w.busy.CompareAndSwap(false, true) {
		return organizer.Result{}, ErrBusy
	}
	defer w.busy.Store(false)

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, w.logger)

	res, err := w.runner.Organize(ctx, w.request)
	if res.RunID == "" {
		res.RunID = runID
	}
	if err != nil {
		logging.WarnWithContext(logger, "scheduled organize pass failed", "watch_pass_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "no files were organized this tick"),
			logging.String(logging.FieldErrorHint, "check that the watched directory still exists"),
		)
	}
	if w.recorder != nil {
		if recErr := w.recorder.RecordRun(ctx, res); recErr != nil {
			logging.WarnWithContext(logger, "failed to record run history", "history_write_failed",
				logging.Error(recErr),
				logging.String(logging.FieldImpact, "this pass is missing from filesort history"),
				logging.String(logging.FieldErrorHint, "check permissions on the history database"),
			)
		}
	}
	if w.onResult != nil {
		w.onResult(res, err)
	}
	return res, err
}

func (w *Watcher) tick() {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	if _, err := w.RunOnce(ctx); errors.Is(err, ErrBusy) {
		w.logger.Info("skipping scheduled pass; previous pass still running",
			logging.String(logging.FieldEventType, "watch_tick_skipped"),
		)
	}
}
