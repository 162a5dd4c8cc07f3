// Package watch rebuilds the gallery when content files change.
//
// Filesystem events and the optional periodic schedule both only request a
// rebuild. Requests are debounced and coalesced so at most one batch runs at
// a time, with at most one more queued behind it.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/gallerygen/internal/logfields"
	"git.home.luguber.info/inful/gallerygen/internal/retry"
)

// RebuildFunc runs one batch.
type RebuildFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// Dir is the content directory; changes to *.json files below it
	// trigger a rebuild.
	Dir string
	// Debounce is the quiet period before a rebuild starts.
	Debounce time.Duration
	// Every schedules a periodic rebuild when positive.
	Every time.Duration
	// SkipInitial disables the rebuild at startup.
	SkipInitial bool
	// Retry is applied to failed rebuilds. The zero policy never retries.
	Retry retry.Policy
	// Retryable limits retries to transient failures; nil retries all.
	Retryable func(error) bool
}

// Watcher drives rebuilds from content changes.
type Watcher struct {
	opts    Options
	rebuild RebuildFunc

	rebuildReq chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Watcher that calls rebuild.
func New(opts Options, rebuild RebuildFunc) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	return &Watcher{
		opts:       opts,
		rebuild:    rebuild,
		rebuildReq: make(chan struct{}, 1),
	}
}

// Run watches until ctx is done. It returns after every goroutine it started
// has stopped.
func (w *Watcher) Run(ctx context.Context) error {
	absDir, err := filepath.Abs(w.opts.Dir)
	if err != nil {
		return fmt.Errorf("resolve content dir: %w", err)
	}
	if st, statErr := os.Stat(absDir); statErr != nil || !st.IsDir() {
		return fmt.Errorf("content dir not found or not a directory: %s", absDir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()
	addDirsRecursive(fsw, absDir)

	var sched gocron.Scheduler
	if w.opts.Every > 0 {
		sched, err = w.startScheduler()
		if err != nil {
			return err
		}
	}

	var wg sync.WaitGroup
	workerCtx, stopWorker := context.WithCancel(ctx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(workerCtx)
	}()

	if !w.opts.SkipInitial {
		w.request()
	}
	slog.Info("Watching content for changes",
		logfields.Path(absDir),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("every", w.opts.Every))

	w.loop(ctx, fsw)

	slog.Info("Stopping watcher")
	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			slog.Warn("Scheduler shutdown error", logfields.Error(err))
		}
	}
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	stopWorker()
	wg.Wait()
	return nil
}

func (w *Watcher) startScheduler() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if _, err := s.NewJob(
		gocron.DurationJob(w.opts.Every),
		gocron.NewTask(w.scheduledRebuild),
		gocron.WithName("periodic-rebuild"),
	); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	s.Start()
	return s, nil
}

func (w *Watcher) scheduledRebuild() {
	slog.Info("Scheduled rebuild requested")
	w.request()
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fsw, ev.Name)
			return
		}
	}
	if !isContentEvent(ev) {
		return
	}
	slog.Debug("Content change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger()
}

// trigger restarts the debounce timer.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.request)
}

// request queues a rebuild unless one is already queued.
func (w *Watcher) request() {
	select {
	case w.rebuildReq <- struct{}{}:
	default:
	}
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.rebuildReq:
			start := time.Now()
			if err := w.opts.Retry.Do(ctx, w.rebuild, w.opts.Retryable, logRetry); err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
				continue
			}
			slog.Info("Rebuild finished", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		}
	}
}

func logRetry(attempt int, delay time.Duration, err error) {
	slog.Warn("Rebuild failed, retrying",
		slog.Int("attempt", attempt),
		slog.Duration("delay", delay),
		logfields.Error(err))
}

func isContentEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") || strings.HasSuffix(base, "~") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".json")
}

func addDirsRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}
