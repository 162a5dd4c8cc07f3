package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"git.home.luguber.info/inful/gallerygen/internal/retry"
)

func TestIsContentEvent(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/c/ordine-dei-maghi.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/c/ORDINE.JSON", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/c/ordine.json", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/c/ordine.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/c/.ordine.json", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/c/ordine.json~", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/c/aria.jpg", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isContentEvent(tt.ev), tt.ev.String())
	}
}

func TestWatcher_DebouncesBurstIntoOneRebuild(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var builds atomic.Int32
	w := New(Options{Dir: dir, Debounce: 100 * time.Millisecond}, func(context.Context) error {
		builds.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond, "initial build")

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ordine-dei-maghi.json"), []byte(`{"name":"x"}`), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(2), builds.Load(), "burst must coalesce into one rebuild")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_RebuildErrorsDoNotStopWatching(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var builds atomic.Int32
	w := New(Options{Dir: dir, Debounce: 20 * time.Millisecond}, func(context.Context) error {
		builds.Add(1)
		return errors.New("input HTML not found")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terre-barbariche.json"), []byte(`{}`), 0o600))
	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_RetriesTransientFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	transient := errors.New("index.html locked")
	var builds atomic.Int32
	w := New(Options{
		Dir:       dir,
		Retry:     retry.NewPolicy(retry.ModeFixed, 10*time.Millisecond, 10*time.Millisecond, 3),
		Retryable: func(err error) bool { return errors.Is(err, transient) },
	}, func(context.Context) error {
		if builds.Add(1) < 3 {
			return transient
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 3 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(3), builds.Load(), "no retries after success")

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_PeriodicRebuild(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	w := New(Options{Dir: dir, Every: 50 * time.Millisecond, SkipInitial: true}, func(context.Context) error {
		builds.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_MissingDir(t *testing.T) {
	w := New(Options{Dir: filepath.Join(t.TempDir(), "missing")}, func(context.Context) error { return nil })
	require.Error(t, w.Run(context.Background()))
}
