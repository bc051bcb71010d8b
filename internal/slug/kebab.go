// Package slug derives URL path segments and canonical page paths.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deburr = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Kebab converts s to lowercase, hyphen-separated words.
//
// Words break at any non-alphanumeric rune, at lower→upper transitions
// ("fooBar"), before the last capital of an acronym followed by lowercase
// ("XMLHttp" → "xml-http"), and between letters and digits unless the letters
// are an ordinal suffix ("1st"). Apostrophes are dropped and accents folded.
// An input with no alphanumerics yields "".
func Kebab(s string) string {
	return strings.Join(Words(s), "-")
}

// Words splits s into lowercase words using the rules documented on Kebab.
func Words(s string) []string {
	if folded, _, err := transform.String(deburr, s); err == nil {
		s = folded
	}
	s = strings.NewReplacer("'", "", "’", "").Replace(s)

	rs := []rune(s)
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	for i, r := range rs {
		if !isAlnum(r) {
			flush()
			continue
		}
		if len(cur) == 0 {
			cur = append(cur, r)
			continue
		}
		prev := cur[len(cur)-1]
		switch {
		case unicode.IsDigit(r) && !unicode.IsDigit(prev):
			flush()
		case !unicode.IsDigit(r) && unicode.IsDigit(prev):
			if !ordinalSuffix(rs[i:]) {
				flush()
			}
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
		case unicode.IsLower(r) && unicode.IsUpper(prev) && len(cur) > 1 && unicode.IsUpper(cur[len(cur)-2]):
			// Acronym followed by a capitalised word: move the last capital over.
			last := cur[len(cur)-1]
			cur = cur[:len(cur)-1]
			flush()
			cur = append(cur, last)
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ordinalSuffix reports whether rs starts with st, nd, rd or th that is not
// followed by another lowercase letter.
func ordinalSuffix(rs []rune) bool {
	if len(rs) < 2 {
		return false
	}
	switch strings.ToLower(string(rs[:2])) {
	case "st", "nd", "rd", "th":
	default:
		return false
	}
	return len(rs) == 2 || !unicode.IsLower(rs[2])
}
