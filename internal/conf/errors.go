package conf

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/regolith-linux/i3xrocks/internal/ini"
	"github.com/regolith-linux/i3xrocks/internal/sys"
)

// Code returns the status reported for err: 0 for nil, the negated errno
// of OS failures, -EINVAL for malformed files and -1 for an unreadable
// directory or a failure without errno, such as one from a SectionFunc.
func Code(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrDirectory) {
		return -1
	}
	var perr *ini.ParseError
	if errors.As(err, &perr) {
		return -int(unix.EINVAL)
	}
	if code, ok := sys.Errno(err); ok {
		return code
	}
	return -1
}
