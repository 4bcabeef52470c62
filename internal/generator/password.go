package generator

import (
	"strings"

	"github.com/Aidin1998/apihub/common/errors"
)

// Password length bounds
const (
	MinPasswordLength     = 4
	MaxPasswordLength     = 128
	DefaultPasswordLength = 12
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?/"
)

type PasswordCriteria struct {
	IncludeUppercase bool `json:"include_uppercase"`
	IncludeLowercase bool `json:"include_lowercase"`
	IncludeDigits    bool `json:"include_digits"`
	IncludeSymbols   bool `json:"include_symbols"`
}

// DefaultPasswordCriteria enables every character class.
func DefaultPasswordCriteria() PasswordCriteria {
	return PasswordCriteria{true, true, true, true}
}

func (c PasswordCriteria) classes() []string {
	var out []string
	if c.IncludeUppercase {
		out = append(out, upperChars)
	}
	if c.IncludeLowercase {
		out = append(out, lowerChars)
	}
	if c.IncludeDigits {
		out = append(out, digitChars)
	}
	if c.IncludeSymbols {
		out = append(out, symbolChars)
	}
	return out
}

type Password struct {
	Length   int              `json:"length"`
	Password string           `json:"password"`
	Criteria PasswordCriteria `json:"criteria"`
}

// Password builds a password holding at least one character of every
// selected class, drawn from the secure source.
func (g *Generator) Password(length int, criteria PasswordCriteria) (Password, error) {
	if length < MinPasswordLength || length > MaxPasswordLength {
		return Password{}, errors.Invalid.Explain(
			"'length' must be between %d and %d", MinPasswordLength, MaxPasswordLength)
	}
	classes := criteria.classes()
	if len(classes) == 0 {
		return Password{}, errors.Invalid.Explain("At least one character type must be selected.")
	}

	all := strings.Join(classes, "")
	buf := make([]byte, 0, length)
	for _, class := range classes {
		buf = append(buf, class[intN(g.secure, len(class))])
	}
	for len(buf) < length {
		buf = append(buf, all[intN(g.secure, len(all))])
	}
	for i := len(buf) - 1; i > 0; i-- {
		j := intN(g.secure, i+1)
		buf[i], buf[j] = buf[j], buf[i]
	}

	return Password{Length: length, Password: string(buf), Criteria: criteria}, nil
}
