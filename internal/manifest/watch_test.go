package manifest

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ggoodman/discord-interactions-go/command"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.yaml")
	if err := os.WriteFile(path, []byte("commands: []\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	type result struct {
		cmds []command.Command
		err  error
	}
	results := make(chan result, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 50*time.Millisecond, func(ctx context.Context, cmds []command.Command, err error) {
			results <- result{cmds, err}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(path, []byte(colorDoc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// A write can surface as several events and an early reload may see a
	// truncated file; wait for the one that saw all of it.
	for reloaded := false; !reloaded; {
		select {
		case r := <-results:
			reloaded = r.err == nil && len(r.cmds) == 2
		case <-ctx.Done():
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(t.Context(), filepath.Join(t.TempDir(), "nope", "commands.yaml"), 0, func(context.Context, []command.Command, error) {})
	if err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestWatch_SerializesReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.yaml")
	if err := os.WriteFile(path, []byte("commands: []\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	var inFlight, maxInFlight atomic.Int32
	started := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 10*time.Millisecond, func(context.Context, []command.Command, error) {
			n := inFlight.Add(1)
			for {
				m := maxInFlight.Load()
				if n <= m || maxInFlight.CompareAndSwap(m, n) {
					break
				}
			}
			started <- struct{}{}
			time.Sleep(150 * time.Millisecond)
			inFlight.Add(-1)
		})
	}()

	time.Sleep(200 * time.Millisecond)
	for range 3 {
		if err := os.WriteFile(path, []byte(colorDoc), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	select {
	case <-started:
	case <-ctx.Done():
		t.Fatal("timed out waiting for reload")
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}

	if n := inFlight.Load(); n != 0 {
		t.Errorf("%d reload(s) still running after Watch returned", n)
	}
	if m := maxInFlight.Load(); m > 1 {
		t.Errorf("reloads overlapped: %d ran at once", m)
	}
}
