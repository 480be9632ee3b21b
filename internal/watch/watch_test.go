package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFile_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.yaml")
	if err := os.WriteFile(path, []byte("answers: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	fired := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 100*time.Millisecond, nil, func(context.Context) {
			calls.Add(1)
			fired <- struct{}{}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("answers: {projectType: cli-tool}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// A sibling file must not trigger.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("callback never fired")
	}
	time.Sleep(300 * time.Millisecond)
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("File returned %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 debounced call, got %d", got)
	}
}

func TestFile_MissingDirectory(t *testing.T) {
	err := File(context.Background(), filepath.Join(t.TempDir(), "nope", "answers.yaml"), 0, nil, func(context.Context) {})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
