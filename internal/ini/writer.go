package ini

import (
	"fmt"
	"io"

	goini "gopkg.in/ini.v1"
)

// Property is a single key/value pair.
type Property struct {
	Key   string
	Value string
}

// Section is a named, ordered list of properties.
type Section struct {
	Name       string
	Properties []Property
}

// loadOptions keep values verbatim: status bar commands routinely carry
// '#' colors and ';' separated shell statements.
var loadOptions = goini.LoadOptions{
	AllowNonUniqueSections:  true,
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	KeyValueDelimiters:      "=",
}

// Write encodes sections to w, one "[name]" block each, in order.
// Values holding a backtick are wrapped in """ by the encoder; Read keeps
// such quotes as part of the value.
func Write(w io.Writer, sections []Section) error {
	f := goini.Empty(loadOptions)
	for _, s := range sections {
		sec, err := f.NewSection(s.Name)
		if err != nil {
			return fmt.Errorf("cannot write section %q: %w", s.Name, err)
		}
		for _, p := range s.Properties {
			if _, err := sec.NewKey(p.Key, p.Value); err != nil {
				return fmt.Errorf("cannot write key %q of section %q: %w", p.Key, s.Name, err)
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}
