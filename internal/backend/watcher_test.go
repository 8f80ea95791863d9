package backend

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.yaml")
	if err := os.WriteFile(path, []byte("one"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var loads atomic.Int32
	w, err := NewWatcher(path, 50*time.Millisecond, func(context.Context) (interface{}, error) {
		loads.Add(1)
		data, err := os.ReadFile(path)
		return string(data), err
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	// mtime granularity on some filesystems is coarse
	time.Sleep(20 * time.Millisecond)
	future := time.Now().Add(2 * time.Second)
	if err := os.WriteFile(path, []byte("two"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	select {
	case evt := <-w.Events():
		if evt.Kind != KindDataset {
			t.Fatalf("expected dataset event, got %v", evt.Kind)
		}
		if evt.Err != nil {
			t.Fatalf("unexpected error: %v", evt.Err)
		}
		if got, _ := evt.Data.(string); got != "two" {
			t.Fatalf("expected reloaded content, got %q", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}
	if loads.Load() == 0 {
		t.Fatal("expected loader to run")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(path, time.Second, func(context.Context) (interface{}, error) { return nil, nil })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Stop()
	w.Wait()

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatal("expected events channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("events channel not closed after Stop")
	}
}

func TestNewWatcherRejectsNilLoader(t *testing.T) {
	if _, err := NewWatcher("fleet.yaml", time.Second, nil); err == nil {
		t.Fatal("expected error for nil loader")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if !th.wait(ctx) {
			t.Fatal("expected wait to succeed")
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("expected at least 60ms between three calls, got %v", elapsed)
	}
}

func TestThrottleHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatal("first wait should pass immediately")
	}
	cancel()
	if th.wait(ctx) {
		t.Fatal("expected cancelled wait to return false")
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(context.Background()) {
		t.Fatal("nil throttle should never block")
	}
}
