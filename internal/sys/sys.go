// Package sys wraps the operating system facilities needed to locate and
// read configuration files, so they can be substituted in tests.
package sys

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// System is the set of OS operations the configuration loader depends on.
type System interface {
	// Open opens the named file for reading. A missing file yields an error
	// matching fs.ErrNotExist.
	Open(path string) (io.ReadCloser, error)
	// Chdir changes the current working directory.
	Chdir(dir string) error
	// LookupEnv returns the value of an environment variable and whether
	// it is set.
	LookupEnv(name string) (string, bool)
	// ReadDir returns the names of the entries of dir, sorted.
	ReadDir(dir string) ([]string, error)
}

// OS implements System on top of an afero filesystem. Nil fields fall
// back to the host: the OS filesystem, os.Chdir and os.LookupEnv.
type OS struct {
	Fs        afero.Fs
	ChdirFunc func(dir string) error
	EnvFunc   func(name string) (string, bool)
}

// Default returns a System backed by the host operating system.
func Default() *OS {
	return &OS{Fs: afero.NewOsFs()}
}

func (s *OS) fs() afero.Fs {
	if s.Fs == nil {
		return afero.NewOsFs()
	}
	return s.Fs
}

func (s *OS) Open(path string) (io.ReadCloser, error) {
	return s.fs().Open(path)
}

func (s *OS) Chdir(dir string) error {
	if s.ChdirFunc != nil {
		return s.ChdirFunc(dir)
	}
	return os.Chdir(dir)
}

func (s *OS) LookupEnv(name string) (string, bool) {
	if s.EnvFunc != nil {
		return s.EnvFunc(name)
	}
	return os.LookupEnv(name)
}

func (s *OS) ReadDir(dir string) ([]string, error) {
	infos, err := afero.ReadDir(s.fs(), dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

// Env returns a LookupEnv function serving the given variables only.
func Env(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}
