package transform

import (
	"strings"
	"unicode/utf8"
)

// Reverse reverses text by code point.
func Reverse(text string) string {
	r := []rune(text)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// WordStats is the result of CountWords.
type WordStats struct {
	Words                int
	CharactersWithSpaces int
	CharactersNoSpaces   int
	Lines                int
}

// CountWords counts whitespace separated words, code points (with and
// without ASCII spaces) and lines.
func CountWords(text string) WordStats {
	return WordStats{
		Words:                len(strings.Fields(text)),
		CharactersWithSpaces: utf8.RuneCountInString(text),
		CharactersNoSpaces:   utf8.RuneCountInString(strings.ReplaceAll(text, " ", "")),
		Lines:                countLines(text),
	}
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// countLines counts lines the way a line splitter would: a trailing break
// does not open a new line and \r\n is one break.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	rs := []rune(text)
	lines := 0
	for i := 0; i < len(rs); i++ {
		if !isLineBreak(rs[i]) {
			continue
		}
		lines++
		if rs[i] == '\r' && i+1 < len(rs) && rs[i+1] == '\n' {
			i++
		}
	}
	if !isLineBreak(rs[len(rs)-1]) {
		lines++
	}
	return lines
}
