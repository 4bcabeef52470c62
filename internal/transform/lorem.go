package transform

import (
	"strings"

	"github.com/Aidin1998/apihub/common/errors"
)

const loremBase = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

// Lorem count bounds
const (
	LoremMinCount = 1
	LoremMaxCount = 100
)

var (
	loremWords     = strings.Fields(loremBase)
	loremSentences = splitSentences(loremBase)
)

func splitSentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s+".")
		}
	}
	return out
}

type LoremKind int

const (
	LoremParagraphs LoremKind = iota
	LoremSentences
	LoremWords
)

var loremKindNames = [...]string{
	LoremParagraphs: "paragraphs",
	LoremSentences:  "sentences",
	LoremWords:      "words",
}

func (k LoremKind) String() string {
	if k < 0 || int(k) >= len(loremKindNames) {
		return "unknown"
	}
	return loremKindNames[k]
}

func ParseLoremKind(tag string) (LoremKind, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, name := range loremKindNames {
		if name == tag {
			return LoremKind(i), nil
		}
	}
	return 0, errors.Invalid.Explain("Invalid 'type'. Supported: paragraphs, sentences, words")
}

// Lorem produces exactly count words, sentences or paragraphs of placeholder
// text. Word and sentence lists wrap around when count exceeds them.
func Lorem(kind LoremKind, count int) (string, error) {
	if count < LoremMinCount || count > LoremMaxCount {
		return "", errors.Invalid.Explain("'count' must be between %d and %d", LoremMinCount, LoremMaxCount)
	}

	switch kind {
	case LoremWords:
		return strings.Join(cycle(loremWords, count), " "), nil
	case LoremSentences:
		return strings.Join(cycle(loremSentences, count), " "), nil
	case LoremParagraphs:
		para := strings.Join(loremSentences, " ")
		paras := make([]string, count)
		for i := range paras {
			paras[i] = para
		}
		return strings.Join(paras, "\n\n"), nil
	default:
		return "", errors.Invalid.Explain("unsupported lorem kind %d", int(kind))
	}
}

func cycle(items []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = items[i%len(items)]
	}
	return out
}
