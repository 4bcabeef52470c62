package transform

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Aidin1998/apihub/common/errors"
)

// YAMLToJSON converts a YAML document to indented JSON.
func YAMLToJSON(data string) (string, error) {
	var v any
	if err := yaml.Unmarshal([]byte(data), &v); err != nil {
		return "", errors.Invalid.Explain("Invalid YAML: %s", err.Error())
	}
	out, err := json.MarshalIndent(stringKeys(v), "", "  ")
	if err != nil {
		return "", errors.Invalid.Explain("YAML cannot be represented as JSON: %s", err.Error())
	}
	return string(out), nil
}

// JSONToYAML converts a JSON document to YAML.
func JSONToYAML(data string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return "", errors.Invalid.Explain("Invalid JSON string provided.").Wrap(err)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", errors.Invalid.Explain("JSON cannot be represented as YAML: %s", err.Error())
	}
	return string(out), nil
}

// stringKeys rewrites non-string mapping keys so the value can be encoded as JSON.
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = stringKeys(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringKeys(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = stringKeys(item)
		}
		return val
	default:
		return v
	}
}
