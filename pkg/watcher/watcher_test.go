package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.stl")
	if err := os.WriteFile(file, []byte("solid a\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	fw, err := NewFileWatcher(100*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	var calls atomic.Int32
	changed := make(chan string, 4)
	if err := fw.Watch([]string{file}, func(path string) {
		calls.Add(1)
		changed <- path
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Run(ctx)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(file, []byte("solid b\n"), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	select {
	case path := <-changed:
		if filepath.Base(path) != "model.stl" {
			t.Errorf("unexpected path %s", path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not called")
	}

	time.Sleep(300 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 debounced callback, got %d", n)
	}
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{filepath.Join(t.TempDir(), "missing.stl")}, func(string) {}); err == nil {
		t.Error("expected an error watching a missing file")
	}
}
