package transform

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	xtransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugSpace is Unicode whitespace. RE2's \s alone is ASCII-only and skips \v.
const slugSpace = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9` + slugSpace + `-]`)
	whitespaceRun = regexp.MustCompile(`[` + slugSpace + `]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug: lowercase ASCII letters, digits and single
// hyphens, never starting or ending with a hyphen. Accented letters are folded
// to their base letter before anything else is stripped.
func Slugify(text string) string {
	s := foldDiacritics(strings.ToLower(text))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func foldDiacritics(s string) string {
	t := xtransform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := xtransform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
