package transform

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/Aidin1998/apihub/common/errors"
)

// decodeJSON decodes exactly one JSON value, keeping numbers verbatim.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Invalid.Explain("unexpected data after JSON value")
	}
	return v, nil
}

// PrettyJSON re-indents a JSON document with four spaces and sorted keys.
func PrettyJSON(s string) (string, error) {
	v, err := decodeJSON(s)
	if err != nil {
		return "", errors.Invalid.Explain("Invalid JSON string provided.").Wrap(err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", errors.Invalid.Explain("Invalid JSON string provided.").Wrap(err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
