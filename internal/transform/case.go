// Package transform implements the pure text and data conversions behind the
// /text and /dev endpoints. Every function is deterministic and side-effect free.
package transform

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Aidin1998/apihub/common/errors"
)

// Case is a target letter case for ConvertCase.
type Case int

const (
	Uppercase Case = iota
	Lowercase
	Titlecase
	Camelcase
	Snakecase
	Kebabcase
)

var caseNames = [...]string{
	Uppercase: "uppercase",
	Lowercase: "lowercase",
	Titlecase: "titlecase",
	Camelcase: "camelcase",
	Snakecase: "snakecase",
	Kebabcase: "kebabcase",
}

func (c Case) String() string {
	if c < 0 || int(c) >= len(caseNames) {
		return "unknown"
	}
	return caseNames[c]
}

// ParseCase maps a case tag to a Case. Unknown tags are validation errors.
func ParseCase(tag string) (Case, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, name := range caseNames {
		if name == tag {
			return Case(i), nil
		}
	}
	return 0, errors.Invalid.Explain(
		"Invalid 'to_case' parameter. Supported: %s", strings.Join(caseNames[:], ", "))
}

var wordSeparators = regexp.MustCompile(`[\s_-]+`)

// ConvertCase converts text to the requested case.
func ConvertCase(text string, c Case) string {
	switch c {
	case Uppercase:
		return cases.Upper(language.Und).String(text)
	case Lowercase:
		return cases.Lower(language.Und).String(text)
	case Titlecase:
		return cases.Title(language.Und).String(text)
	case Camelcase:
		return camelCase(text)
	case Snakecase:
		return strings.ReplaceAll(Slugify(text), "-", "_")
	case Kebabcase:
		return Slugify(text)
	default:
		return text
	}
}

func camelCase(text string) string {
	var b strings.Builder
	first := true
	for _, word := range wordSeparators.Split(text, -1) {
		if word == "" {
			continue
		}
		if first {
			b.WriteString(strings.ToLower(word))
			first = false
			continue
		}
		b.WriteString(capitalize(word))
	}
	return b.String()
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToTitle(r)) + strings.ToLower(word[size:])
}
