package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{
		Paths:    []string{filepath.Join(dir, "a.csv")},
		Debounce: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	if w == nil {
		t.Fatal("expected non-nil watcher")
	}
	w.watcher.Close()
}

func TestDefaultDebounce(t *testing.T) {
	w, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer w.watcher.Close()

	if w.Config.Debounce != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", w.Config.Debounce)
	}
}

func TestWatcherTriggersOnSourceChange(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(source, []byte("id\n1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{
		Paths:    []string{source},
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := make(chan string, 1)
	w.Handler = func(path string) error {
		select {
		case handlerCalled <- path:
		default:
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		w.Start(ctx)
	}()

	// Give the watcher time to start
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(source, []byte("id\n1\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-handlerCalled:
		abs, _ := filepath.Abs(source)
		if path != abs {
			t.Errorf("expected %q, got %q", abs, path)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for handler call")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(source, []byte("id\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(Config{
		Paths:    []string{source},
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := false
	w.Handler = func(path string) error {
		handlerCalled = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	// A sibling file in the same directory must not trigger a rebuild.
	os.WriteFile(filepath.Join(dir, "unrelated.csv"), []byte("x\n"), 0644)
	time.Sleep(200 * time.Millisecond)

	if handlerCalled {
		t.Error("handler should not be called for unwatched files")
	}
}
