package conf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/regolith-linux/i3xrocks/internal/sys"
)

func TestSource_Watch(t *testing.T) {
	tests := []struct {
		name   string
		action func(t *testing.T, dir string)
	}{
		{
			name: "write main file",
			action: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "config"), []byte("[cpu]\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "remove main file",
			action: func(t *testing.T, dir string) {
				if err := os.Remove(filepath.Join(dir, "config")); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "new drop-in file",
			action: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "conf.d", "10-time"), []byte("[time]\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config"), []byte("[time]\n"), 0o600); err != nil {
				t.Fatal(err)
			}
			if err := os.Mkdir(filepath.Join(dir, "conf.d"), 0o755); err != nil {
				t.Fatal(err)
			}

			src := &Source{
				Path:      filepath.Join(dir, "config"),
				DropInDir: filepath.Join(dir, "conf.d"),
				Loader:    &Loader{System: &sys.OS{EnvFunc: sys.Env(nil)}},
			}

			ctx, cancel := context.WithCancel(context.Background())
			changed := make(chan struct{}, 16)
			done := make(chan error, 1)
			go func() {
				done <- src.Watch(ctx, func() { changed <- struct{}{} })
			}()
			time.Sleep(200 * time.Millisecond) // wait for the watcher to start

			tt.action(t, dir)
			select {
			case <-changed:
			case <-time.After(5 * time.Second):
				t.Error("expected a change notification")
			}

			cancel()
			if err := <-done; err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSource_WatchNothing(t *testing.T) {
	src := &Source{
		Path:   filepath.Join(t.TempDir(), "missing", "config"),
		Loader: &Loader{System: &sys.OS{EnvFunc: sys.Env(nil)}},
	}
	if err := src.Watch(context.Background(), func() {}); err == nil {
		t.Error("expected an error when no directory can be watched")
	}
}
