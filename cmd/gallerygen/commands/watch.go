package commands

import (
	"context"
	"time"

	gerrors "git.home.luguber.info/inful/gallerygen/internal/errors"
	"git.home.luguber.info/inful/gallerygen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags `embed:""`

	Every    time.Duration `help:"Also rebuild on this interval (e.g. 15m)"`
	Debounce time.Duration `help:"Quiet period before a rebuild (default from config)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if err := w.Apply(cfg); err != nil {
		return err
	}

	every := cfg.EveryDuration()
	if w.Every > 0 {
		every = w.Every
	}
	debounce := cfg.DebounceDuration()
	if w.Debounce > 0 {
		debounce = w.Debounce
	}

	ctx, cancel := signalContext()
	defer cancel()

	opts := w.options()
	watcher := watch.New(watch.Options{
		Dir:       cfg.Input.Dir,
		Debounce:  debounce,
		Every:     every,
		Retry:     cfg.RetryPolicy(),
		Retryable: transient,
	}, func(ctx context.Context) error {
		_, err := RunBuild(ctx, cfg, opts)
		return err
	})
	return watcher.Run(ctx)
}

// transient reports failures worth retrying: the document or output being
// replaced mid-save. Configuration and structure errors are not.
func transient(err error) bool {
	return gerrors.IsCategory(err, gerrors.CategoryNotFound) ||
		gerrors.IsCategory(err, gerrors.CategoryFileSystem)
}
