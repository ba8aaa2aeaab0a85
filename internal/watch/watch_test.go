package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func startWatch(t *testing.T, dir string, reload ReloadFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dir, 30*time.Millisecond, quietLogger(), reload) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch: %v", err)
		}
	})
	// Let the watcher register the directory.
	time.Sleep(50 * time.Millisecond)
}

func TestIsContentFile(t *testing.T) {
	tests := map[string]bool{
		"landing.yaml":        true,
		"data/whitepaper.yml": true,
		"LANDING.YAML":        true,
		".landing.yaml.swp":   false,
		".#landing.yaml":      false,
		"notes.md":            false,
		"images/catenary.png": false,
	}
	for path, want := range tests {
		if got := IsContentFile(path); got != want {
			t.Errorf("IsContentFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatch(t, dir, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	p := filepath.Join(dir, "landing.yaml")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(p, []byte("title: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool { return calls.Load() >= 1 },
		"reload not called after write")
	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("reload calls = %d, want 1", n)
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatch(t, dir, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("reload calls = %d, want 0", n)
	}
}

func TestWatchSurvivesReloadError(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatch(t, dir, func(context.Context) error {
		calls.Add(1)
		return errors.New("bad yaml")
	})

	p := filepath.Join(dir, "whitepaper.yaml")
	_ = os.WriteFile(p, []byte("a"), 0o644)
	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool { return calls.Load() == 1 }, "first reload missing")
	_ = os.WriteFile(p, []byte("b"), 0o644)
	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool { return calls.Load() == 2 }, "watcher stopped after error")
}

func TestWatchNewSubdir(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatch(t, dir, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	sub := filepath.Join(dir, "pages")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool { return calls.Load() >= 1 }, "new dir not noticed")
	before := calls.Load()
	time.Sleep(50 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(sub, "extra.yaml"), []byte("x"), 0o644)
	eventually(t, 2*time.Second, 10*time.Millisecond, func() bool { return calls.Load() > before }, "file in new dir not noticed")
}
