package conf

import (
	"errors"
	"io"

	"github.com/regolith-linux/i3xrocks/internal/ini"
	"github.com/regolith-linux/i3xrocks/internal/kv"
)

// SectionFunc receives each completed section. The section holds the
// global defaults, the "name" key and the section's own keys. Returning
// an error aborts the load and is returned to the caller as is.
//
// The section belongs to the callee: the loader drops its reference once
// the callback returns and never modifies or releases it afterwards.
type SectionFunc func(section *kv.Map) error

// resolver turns the flat event stream of a configuration file into
// sections. The zero state has no open section; a header opens one,
// and the next header or the end of the file finalizes it.
type resolver struct {
	global  *kv.Map
	section *kv.Map
	fn      SectionFunc
	// aborted is set when fn failed, so that an io.EOF it returned is
	// not taken for the end of the stream.
	aborted bool
}

func newResolver(fn SectionFunc) *resolver {
	return &resolver{fn: fn}
}

// Section implements ini.Handler.
func (r *resolver) Section(name string) error {
	if err := r.finalize(); err != nil {
		return err
	}
	r.reset()
	r.set("name", name)
	return nil
}

// Property implements ini.Handler.
func (r *resolver) Property(key, value string) error {
	r.set(key, value)
	return nil
}

// reset opens a new section initialized with the global defaults.
func (r *resolver) reset() {
	r.section = kv.New()
	r.section.Copy(r.global)
}

// set writes to the open section, or to the global defaults when no
// section is open.
func (r *resolver) set(key, value string) {
	m := r.section
	if m == nil {
		if r.global == nil {
			r.global = kv.New()
		}
		m = r.global
	}
	m.Set(key, value)
}

// finalize hands the open section, if any, over to the callback.
func (r *resolver) finalize() error {
	section := r.section
	if section == nil {
		return nil
	}
	r.section = nil

	if r.fn == nil {
		return nil
	}
	if err := r.fn(section); err != nil {
		r.aborted = true
		return err
	}
	return nil
}

// parse reads one file. io.EOF from the reader marks the end of the
// stream, after which the last section is finalized. On error the open
// section is dropped without reaching the callback.
func (r *resolver) parse(rd io.Reader) error {
	defer func() {
		r.section = nil
	}()

	r.aborted = false
	err := ini.Read(rd, -1, r)
	if err != nil && (r.aborted || !errors.Is(err, io.EOF)) {
		return err
	}
	return r.finalize()
}

// release drops the global defaults at the end of a top-level call.
func (r *resolver) release() {
	r.section = nil
	if r.global != nil {
		r.global.Release()
		r.global = nil
	}
}
