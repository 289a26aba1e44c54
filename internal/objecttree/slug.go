package objecttree

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// defaultSlug replaces names that reduce to nothing.
const defaultSlug = "screen"

// RouteSlug derives a screen route from an object name: diacritics are
// stripped, letters lower-cased, runs of anything else collapsed to one
// hyphen, and the result prefixed with "/".
//
//	RouteSlug("Sala Principal #1") == "/sala-principal-1"
//	RouteSlug("Climatización")     == "/climatizacion"
func RouteSlug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(plain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if slug == "" {
		slug = defaultSlug
	}
	return "/" + slug
}
