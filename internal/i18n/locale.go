// Package i18n validates and canonicalizes locale identifiers.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locales is the set of locale identifiers accepted on user records.
// Identifiers are kept in canonical underscore form, e.g. "en" or "pt_BR".
type Locales struct {
	supported map[string]struct{}
}

// NewLocales builds a validator over the given identifiers. Entries that do
// not parse as BCP 47 tags are ignored.
func NewLocales(codes []string) *Locales {
	l := &Locales{supported: make(map[string]struct{}, len(codes))}
	for _, code := range codes {
		if canonical, ok := canonicalize(code); ok {
			l.supported[canonical] = struct{}{}
		}
	}
	return l
}

// IsRecognizedLocale reports whether code names a supported locale.
// "pt-br", "PT_BR" and "pt_BR" are all the same locale.
func (l *Locales) IsRecognizedLocale(code string) bool {
	canonical, ok := canonicalize(code)
	if !ok {
		return false
	}
	_, ok = l.supported[canonical]
	return ok
}

// Canonicalize returns the underscore form of code ("pt-br" becomes "pt_BR").
// Unparseable input is returned trimmed but otherwise unchanged.
func (l *Locales) Canonicalize(code string) string {
	if canonical, ok := canonicalize(code); ok {
		return canonical
	}
	return strings.TrimSpace(code)
}

// Supported returns the number of recognized locales.
func (l *Locales) Supported() int {
	return len(l.supported)
}

func canonicalize(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", false
	}
	return strings.ReplaceAll(tag.String(), "-", "_"), true
}
