package conf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/regolith-linux/i3xrocks/internal/ini"
	"github.com/regolith-linux/i3xrocks/internal/sys"
)

// SysConfDir is the system configuration directory. Packagers may set it
// at link time:
//
//	-ldflags "-X github.com/regolith-linux/i3xrocks/internal/conf.SysConfDir=/usr/local/etc"
var SysConfDir = "/etc"

const appName = "i3xrocks"

// ErrDirectory is returned, wrapped, when a configuration directory
// cannot be listed.
var ErrDirectory = errors.New("cannot read config directory")

// Loader resolves configuration files and feeds their sections to a
// SectionFunc. The zero value uses the host system, SysConfDir and
// slog.Default().
//
// Loading changes the process working directory to the directory of each
// file read.
type Loader struct {
	System     sys.System
	SysConfDir string
	Logger     *slog.Logger
}

func (l *Loader) system() sys.System {
	if l.System == nil {
		return sys.Default()
	}
	return l.System
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l *Loader) sysConfDir() string {
	if l.SysConfDir == "" {
		return SysConfDir
	}
	return l.SysConfDir
}

// getenv returns the value of a set, non-empty environment variable.
func (l *Loader) getenv(name string) (string, bool) {
	v, ok := l.system().LookupEnv(name)
	return v, ok && v != ""
}

// Candidates returns the files Load tries, in order. An explicit path is
// the only candidate.
//
// Environment variables set to an empty string count as unset: an empty
// HOME skips the user files. XDG_CONFIG_DIRS is a colon separated list,
// each of its directories yielding one candidate.
func (l *Loader) Candidates(path string) []string {
	if path != "" {
		return []string{path}
	}

	var paths []string

	// user config file
	if home, ok := l.getenv("HOME"); ok {
		if xdgHome, ok := l.getenv("XDG_CONFIG_HOME"); ok {
			paths = append(paths, filepath.Join(xdgHome, appName, "config"))
		} else {
			paths = append(paths, filepath.Join(home, ".config", appName, "config"))
		}
		paths = append(paths, filepath.Join(home, "."+appName+".conf"))
	}

	// system config file
	var xdgDirs []string
	if v, ok := l.getenv("XDG_CONFIG_DIRS"); ok {
		for _, dir := range strings.Split(v, ":") {
			if dir != "" {
				xdgDirs = append(xdgDirs, dir)
			}
		}
	}
	if len(xdgDirs) == 0 {
		xdgDirs = []string{filepath.Join(l.sysConfDir(), "xdg")}
	}
	for _, dir := range xdgDirs {
		paths = append(paths, filepath.Join(dir, appName, "config"))
	}

	return append(paths, filepath.Join(l.sysConfDir(), appName+".conf"))
}

// Load reads the first existing candidate file (see Candidates) and calls
// fn for each of its sections. A missing candidate moves on to the next
// one; any other failure stops the resolution. When no candidate exists,
// the error of the last one is returned and matches fs.ErrNotExist.
//
// fn may be nil to only check the syntax.
func (l *Loader) Load(path string, fn SectionFunc) error {
	r := newResolver(fn)
	defer r.release()

	var err error
	for _, candidate := range l.Candidates(path) {
		var f io.ReadCloser
		f, err = l.open(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			l.logger().Debug("no config file", "path", candidate)
			continue
		}
		if err != nil {
			return err
		}
		return l.read(r, candidate, f)
	}
	return err
}

// LoadDir reads every entry of dir, in lexicographic order, and calls fn
// for each section. Global defaults carry over from one file to the next.
// The first file failing to load stops the scan.
//
// An unreadable dir yields an error wrapping ErrDirectory. It is logged
// as an error, or only at debug level when quiet is set.
func (l *Loader) LoadDir(dir string, fn SectionFunc, quiet bool) error {
	// Every file read changes the working directory.
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrDirectory, dir, err)
	}
	dir = abs

	names, err := l.system().ReadDir(dir)
	if err != nil {
		if quiet {
			l.logger().Debug("skipping config directory", "dir", dir, "error", err)
		} else {
			l.logger().Error("failed to read config directory", "dir", dir, "error", err)
		}
		return fmt.Errorf("%w %s: %v", ErrDirectory, dir, err)
	}
	sort.Strings(names)

	r := newResolver(fn)
	defer r.release()

	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}

		path := filepath.Join(dir, name)
		l.logger().Debug("reading config file", "path", path)
		if err := l.loadFile(r, path); err != nil {
			l.logger().Error("failed to load config file", "file", name, "error", err)
			return err
		}
	}
	return nil
}

func (l *Loader) loadFile(r *resolver, path string) error {
	f, err := l.open(path)
	if err != nil {
		return err
	}
	return l.read(r, path, f)
}

func (l *Loader) open(path string) (io.ReadCloser, error) {
	l.logger().Debug("try file", "path", path)
	return l.system().Open(path)
}

// read changes to the directory of path, then parses f into r. f is
// closed on return.
func (l *Loader) read(r *resolver, path string, f io.ReadCloser) error {
	defer f.Close()

	dir := filepath.Dir(path)
	if err := l.system().Chdir(dir); err != nil {
		l.logger().Error("failed to change directory", "dir", dir, "error", err)
		return fmt.Errorf("cannot change directory to %s: %w", dir, err)
	}
	l.logger().Debug("changed directory", "dir", dir)

	if err := r.parse(f); err != nil {
		var perr *ini.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return err
	}
	return nil
}
