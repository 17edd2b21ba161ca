package conf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange each time a file Read could resolve from is
// created, written, removed or renamed, until ctx is done. It watches the
// directories of the main file candidates and DropInDir on the host
// filesystem, whatever Loader.System is.
//
// Directories that do not exist yet are not watched. Watch fails when
// none of them can be watched.
func (s *Source) Watch(ctx context.Context, onChange func()) error {
	l := s.Loader
	if l == nil {
		l = &Loader{}
	}
	logger := l.logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create file watcher: %w", err)
	}
	defer func() {
		if e := watcher.Close(); e != nil {
			logger.Warn("failed to close file watcher", "error", e)
		}
	}()

	files := make(map[string]bool)
	dirs := make(map[string]struct{})
	for _, candidate := range l.Candidates(s.Path) {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return fmt.Errorf("cannot resolve %s: %w", candidate, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	dropInDir := ""
	if s.DropInDir != "" {
		if dropInDir, err = filepath.Abs(s.DropInDir); err != nil {
			return fmt.Errorf("cannot resolve %s: %w", s.DropInDir, err)
		}
		dirs[dropInDir] = struct{}{}
	}

	// fsnotify watches directories so that editors replacing a file are
	// seen too.
	watched := 0
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Debug("cannot watch config directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		return errors.New("cannot watch any config directory")
	}

	var (
		lastEvent     string
		lastEventTime time.Time
	)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Some platforms fire the same event several times.
			if event.String() == lastEvent && time.Since(lastEventTime) < 5*time.Millisecond {
				continue
			}
			lastEvent = event.String()
			lastEventTime = time.Now()

			name := filepath.Clean(event.Name)
			if !files[name] && (dropInDir == "" || filepath.Dir(name) != dropInDir) {
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("config file changed", "path", name, "op", event.Op.String())
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("error when watching config files", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
