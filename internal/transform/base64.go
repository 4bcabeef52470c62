package transform

import (
	"encoding/base64"
	"unicode/utf8"

	"github.com/Aidin1998/apihub/common/errors"
)

func base64Encoding(urlSafe bool) *base64.Encoding {
	if urlSafe {
		return base64.URLEncoding.Strict()
	}
	return base64.StdEncoding.Strict()
}

// Base64Encode encodes the UTF-8 bytes of text with padding.
func Base64Encode(text string, urlSafe bool) string {
	return base64Encoding(urlSafe).EncodeToString([]byte(text))
}

// Base64Decode decodes padded base64 and requires the result to be UTF-8 text.
func Base64Decode(encoded string, urlSafe bool) (string, error) {
	raw, err := base64Encoding(urlSafe).DecodeString(encoded)
	if err != nil {
		return "", errors.Invalid.Explain("Invalid base64 input: %s", err.Error())
	}
	if !utf8.Valid(raw) {
		return "", errors.Invalid.Explain("Decoded data is not valid UTF-8 text")
	}
	return string(raw), nil
}
