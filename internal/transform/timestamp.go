package transform

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/Aidin1998/apihub/common/errors"
)

// TimestampLayout is the primary human readable format, always UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// Parsed in order after TimestampLayout.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type TimestampOp int

const (
	FromUnix TimestampOp = iota
	ToUnix
)

func (op TimestampOp) String() string {
	if op == ToUnix {
		return "to_unix"
	}
	return "from_unix"
}

func ParseTimestampOp(name string) (TimestampOp, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "from_unix":
		return FromUnix, nil
	case "to_unix":
		return ToUnix, nil
	}
	return 0, errors.Invalid.Explain("Invalid operation. Supported: from_unix, to_unix")
}

// Timestamp is a moment rendered in the formats the converter returns.
type Timestamp struct {
	Unix     int64  `json:"unix"`
	Datetime string `json:"datetime"`
	ISO8601  string `json:"iso8601"`
	Timezone string `json:"timezone"`
}

func newTimestamp(t time.Time) Timestamp {
	t = t.UTC()
	return Timestamp{
		Unix:     t.Unix(),
		Datetime: t.Format(TimestampLayout),
		ISO8601:  t.Format(time.RFC3339),
		Timezone: "UTC",
	}
}

// FromUnixSeconds renders epoch seconds in UTC.
func FromUnixSeconds(sec int64) Timestamp {
	return newTimestamp(time.Unix(sec, 0))
}

// ToUnixSeconds parses s with TimestampLayout, then ISO-8601 forms. Inputs
// without a zone are taken as UTC.
func ToUnixSeconds(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range append([]string{TimestampLayout}, isoLayouts...) {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return newTimestamp(t), nil
		}
	}
	return Timestamp{}, errors.Invalid.Explain(
		"Invalid datetime %q. Use YYYY-MM-DD HH:MM:SS or ISO-8601", s)
}

// ConvertTimestamp applies op to a decoded JSON value: from_unix needs an
// integer, to_unix needs a string.
func ConvertTimestamp(op TimestampOp, value any) (Timestamp, error) {
	switch op {
	case FromUnix:
		sec, ok := asInteger(value)
		if !ok {
			return Timestamp{}, errors.Invalid.Explain("from_unix requires an integer value")
		}
		return FromUnixSeconds(sec), nil
	case ToUnix:
		s, ok := value.(string)
		if !ok {
			return Timestamp{}, errors.Invalid.Explain("to_unix requires a string value")
		}
		return ToUnixSeconds(s)
	default:
		return Timestamp{}, errors.Invalid.Explain("Invalid operation")
	}
}

// Epoch seconds beyond this are past year 9999.
const maxUnixSeconds = 253402300799

func asInteger(value any) (int64, bool) {
	var n int64
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxUnixSeconds {
			return 0, false
		}
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	case int:
		n = int64(v)
	case int64:
		n = v
	default:
		return 0, false
	}
	if n > maxUnixSeconds || n < -maxUnixSeconds {
		return 0, false
	}
	return n, true
}
