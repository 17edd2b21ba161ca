// Package l10n translates the user-facing strings of i3xrocks.
package l10n

import (
	"fmt"

	"github.com/snapcore/go-gettext"
)

var domain = gettext.TextDomain{Name: "i3xrocks"}

var locale gettext.Catalog

func init() {
	locale = domain.UserLocale()
}

// T localizes str, formatting it with vars when any are given.
func T(str string, vars ...interface{}) string {
	translation := locale.Gettext(str)
	if len(vars) > 0 {
		translation = fmt.Sprintf(translation, vars...)
	}
	return translation
}

// TN localizes a string with plural forms chosen by n.
func TN(singular, plural string, n uint32, vars ...interface{}) string {
	translation := locale.NGettext(singular, plural, n)
	if len(vars) > 0 {
		translation = fmt.Sprintf(translation, vars...)
	}
	return translation
}
