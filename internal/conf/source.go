package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Source layers a main configuration file and a drop-in directory.
// See the Read method.
type Source struct {
	// Path is the main configuration file. Empty means the first existing
	// candidate of Loader.Candidates.
	Path string
	// DropInDir, when set, is read after the main file.
	DropInDir string
	// Quiet tolerates an unreadable DropInDir.
	Quiet bool
	// Loader performs the loads. Nil means a zero Loader.
	Loader *Loader
}

// Read calls fn for every section of:
// 1. The main file, resolved by Loader.Load
// 2. The drop-in files, read by Loader.LoadDir
//
// The two loads do not share global defaults. Without an explicit Path, a
// missing main file is tolerated when DropInDir is set.
func (s *Source) Read(fn SectionFunc) error {
	l := s.Loader
	if l == nil {
		l = &Loader{}
	}

	// Loading the main file changes the working directory.
	dropInDir := s.DropInDir
	if dropInDir != "" {
		abs, err := filepath.Abs(dropInDir)
		if err != nil {
			return fmt.Errorf("cannot resolve %s: %w", dropInDir, err)
		}
		dropInDir = abs
	}

	if err := l.Load(s.Path, fn); err != nil {
		// Existing but broken files are not hidden from the user.
		if s.Path != "" || dropInDir == "" || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		l.logger().Debug("no main config file, using drop-in files only", "dir", dropInDir)
	}

	if dropInDir == "" {
		return nil
	}

	err := l.LoadDir(dropInDir, fn, s.Quiet)
	if err != nil && s.Quiet && errors.Is(err, ErrDirectory) {
		return nil
	}
	return err
}
