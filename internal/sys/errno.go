package sys

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// Errno returns the errno carried by err, negated, the way the status bar
// reports failures. Errors without an OS cause map to ok == false.
func Errno(err error) (code int, ok bool) {
	var errno unix.Errno
	switch {
	case err == nil:
		return 0, true
	case errors.As(err, &errno):
		return -int(errno), true
	case errors.Is(err, fs.ErrNotExist):
		return -int(unix.ENOENT), true
	case errors.Is(err, fs.ErrPermission):
		return -int(unix.EACCES), true
	case errors.Is(err, fs.ErrExist):
		return -int(unix.EEXIST), true
	}
	return 0, false
}
