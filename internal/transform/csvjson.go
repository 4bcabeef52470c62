package transform

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Aidin1998/apihub/common/errors"
)

// Field is one column of a CSV row.
type Field struct {
	Key   string
	Value string
}

// Record is a CSV row that marshals as a JSON object in column order.
type Record []Field

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CSVToJSON parses CSV whose first row is the header into records. Rows must
// have as many fields as the header.
func CSVToJSON(data string) ([]Record, error) {
	r := csv.NewReader(strings.NewReader(data))

	header, err := r.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, errors.Invalid.Explain("Error converting CSV: %s", err.Error())
	}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			return nil, errors.Invalid.Explain("Error converting CSV: duplicate column %q", h)
		}
		seen[h] = true
	}

	records := []Record{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Invalid.Explain("Error converting CSV: %s", err.Error())
		}
		rec := make(Record, len(header))
		for i, h := range header {
			rec[i] = Field{Key: h, Value: row[i]}
		}
		records = append(records, rec)
	}
	return records, nil
}

// JSONToCSV writes a JSON array of flat objects as CSV. Columns are the union
// of keys in first-seen order. Nested objects or arrays are rejected.
func JSONToCSV(data string) (string, error) {
	invalid := func(format string, args ...any) error {
		return errors.Invalid.Explain("Error converting JSON: "+format, args...)
	}

	trimmed := strings.TrimSpace(data)
	if !strings.HasPrefix(trimmed, "[") {
		return "", invalid("expected an array of objects")
	}
	var rawRows []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &rawRows); err != nil {
		return "", invalid("%s", err.Error())
	}

	var columns []string
	index := map[string]int{}
	rows := make([]map[string]string, 0, len(rawRows))
	for i, raw := range rawRows {
		keys, values, err := orderedObject(raw)
		if err != nil {
			return "", invalid("row %d: %s", i, err.Error())
		}
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
		}
		rows = append(rows, values)
	}
	if len(columns) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return "", err
	}
	for _, row := range rows {
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i] = row[col]
		}
		if err := w.Write(line); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// orderedObject decodes a JSON object keeping key order and rendering every
// value as a CSV cell.
func orderedObject(raw json.RawMessage) ([]string, map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object")
	}

	var keys []string
	values := map[string]string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		cell, err := cellValue(v)
		if err != nil {
			return nil, nil, err
		}
		values[key] = cell
	}
	return keys, values, nil
}

func cellValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("nested value %T cannot be a CSV cell", val)
	}
}
