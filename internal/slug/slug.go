// Package slug derives URL slugs and display names for catalog entities.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases s, folds accented letters to their base form and joins the remaining
// letter and digit runs with single hyphens.
func Make(s string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder

	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingHyphen = false

			b.WriteRune(r)

			continue
		}

		pendingHyphen = true
	}

	return b.String()
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(first)) + cases.Lower(language.Und).String(s[size:])
}

// ProductName prefixes name with the singular form of the category name unless it already
// starts with it.
func ProductName(name, category string) string {
	name = strings.TrimSpace(name)

	category = strings.TrimSpace(category)
	if category == "" {
		return name
	}

	prefix := cases.Title(language.Und).String(inflection.Singular(category))

	if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
		return name
	}

	return prefix + " " + name
}
