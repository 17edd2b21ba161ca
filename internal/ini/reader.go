// Package ini reads and writes the INI dialect used by i3xrocks
// configuration files.
//
// Reading is event driven: Read reports every section header and every
// key/value pair to a Handler in file order, leaving it to the caller to
// decide where the pairs belong.
package ini

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Handler receives the events produced by Read. Returning an error from
// either method stops the read and makes Read return that error.
type Handler interface {
	// Section is called for every "[name]" header.
	Section(name string) error
	// Property is called for every "key=value" line.
	Property(key, value string) error
}

// HandlerFuncs adapts a pair of functions to the Handler interface.
// A nil function ignores its events.
type HandlerFuncs struct {
	OnSection  func(name string) error
	OnProperty func(key, value string) error
}

func (h HandlerFuncs) Section(name string) error {
	if h.OnSection == nil {
		return nil
	}
	return h.OnSection(name)
}

func (h HandlerFuncs) Property(key, value string) error {
	if h.OnProperty == nil {
		return nil
	}
	return h.OnProperty(key, value)
}

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ini: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errSectionName = errors.New("empty section name")
	errSection     = errors.New("unterminated section header")
	errDelimiter   = errors.New("key-value delimiter not found")
	errKey         = errors.New("empty key")
)

// Read consumes r line by line and reports each section header and
// key/value pair to h as soon as it is read.
//
// Blank lines and lines starting with '#' or ';' are skipped. Keys and
// values are trimmed of surrounding blanks and otherwise kept verbatim,
// '=' being the only delimiter.
//
// A negative limit reads until the end of the stream. Otherwise at most
// limit bytes are consumed, stopping before the first line that does not
// fit entirely.
//
// Read returns io.EOF once the whole stream has been consumed, and nil
// when it stopped at the limit with more input pending. Any other error
// comes from reading r, from a malformed line (*ParseError), or from h.
// Events for the lines before the failing one have been delivered.
func Read(r io.Reader, limit int64, h Handler) error {
	br := bufio.NewReader(r)
	var consumed int64
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line == "" && err != nil {
			return io.EOF
		}
		if limit >= 0 && consumed+int64(len(line)) > limit {
			return nil
		}
		consumed += int64(len(line))

		if perr := parseLine(n, line, h); perr != nil {
			return perr
		}
		if err != nil {
			return io.EOF
		}
	}
}

func parseLine(n int, line string, h Handler) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "", line[0] == '#', line[0] == ';':
		return nil
	case line[0] == '[':
		if line[len(line)-1] != ']' {
			return &ParseError{Line: n, Err: errSection}
		}
		name := line[1 : len(line)-1]
		if strings.TrimSpace(name) == "" {
			return &ParseError{Line: n, Err: errSectionName}
		}
		return h.Section(name)
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return &ParseError{Line: n, Err: errDelimiter}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return &ParseError{Line: n, Err: errKey}
	}
	return h.Property(key, strings.TrimSpace(value))
}
