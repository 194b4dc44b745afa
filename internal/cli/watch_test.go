package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.toml")
	if err := os.WriteFile(path, []byte(formTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel)))
	defer cancel()

	calls := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func(context.Context) error {
			calls <- struct{}{}
			return nil
		})
	}()

	// Give the watcher time to register before writing. Unrelated files in
	// the same directory must not trigger.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := os.WriteFile(path, []byte(formTOML+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("fn was not called after the snapshot changed")
	}

	// The burst of writes is debounced into one call.
	select {
	case <-calls:
		t.Error("expected a single call for one burst of writes")
	case <-time.After(2 * watchDebounce):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchFile returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}
