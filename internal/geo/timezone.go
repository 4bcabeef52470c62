package geo

import (
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/tidwall/btree"

	"github.com/Aidin1998/apihub/common/errors"
)

// DateTimeLayout is the accepted input format for ConvertTime.
const DateTimeLayout = "2006-01-02 15:04:05"

// zonedLayout renders a time with its abbreviation and numeric offset.
const zonedLayout = "2006-01-02 15:04:05 MST-0700"

var commonTimezones = []string{
	"Africa/Cairo", "Africa/Casablanca", "Africa/Johannesburg", "Africa/Lagos", "Africa/Nairobi",
	"America/Anchorage", "America/Argentina/Buenos_Aires", "America/Bogota", "America/Caracas",
	"America/Chicago", "America/Denver", "America/Halifax", "America/Lima", "America/Los_Angeles",
	"America/Mexico_City", "America/New_York", "America/Phoenix", "America/Santiago",
	"America/Sao_Paulo", "America/St_Johns", "America/Toronto", "America/Vancouver",
	"Asia/Bangkok", "Asia/Dhaka", "Asia/Dubai", "Asia/Ho_Chi_Minh", "Asia/Hong_Kong",
	"Asia/Jakarta", "Asia/Jerusalem", "Asia/Karachi", "Asia/Kathmandu", "Asia/Kolkata",
	"Asia/Manila", "Asia/Riyadh", "Asia/Seoul", "Asia/Shanghai", "Asia/Singapore",
	"Asia/Taipei", "Asia/Tehran", "Asia/Tokyo",
	"Atlantic/Azores", "Atlantic/Reykjavik",
	"Australia/Adelaide", "Australia/Brisbane", "Australia/Darwin", "Australia/Melbourne",
	"Australia/Perth", "Australia/Sydney",
	"Europe/Amsterdam", "Europe/Athens", "Europe/Berlin", "Europe/Brussels", "Europe/Dublin",
	"Europe/Helsinki", "Europe/Istanbul", "Europe/Kyiv", "Europe/Lisbon", "Europe/London",
	"Europe/Madrid", "Europe/Moscow", "Europe/Oslo", "Europe/Paris", "Europe/Prague",
	"Europe/Rome", "Europe/Stockholm", "Europe/Vienna", "Europe/Warsaw", "Europe/Zurich",
	"Pacific/Auckland", "Pacific/Fiji", "Pacific/Guam", "Pacific/Honolulu",
	"UTC",
}

// TimezoneIndex is an ordered map of common IANA zone names to their
// loaded locations.
type TimezoneIndex struct {
	zones *btree.Map[string, *time.Location]
}

// NewTimezoneIndex loads every common zone. Zones missing from the zone
// database are skipped.
func NewTimezoneIndex() *TimezoneIndex {
	idx := &TimezoneIndex{zones: btree.NewMap[string, *time.Location](32)}
	for _, name := range commonTimezones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			continue
		}
		idx.zones.Set(name, loc)
	}
	return idx
}

func (idx *TimezoneIndex) Len() int { return idx.zones.Len() }

// List returns the zones starting with prefix, in order. Matching ignores case.
func (idx *TimezoneIndex) List(prefix string) []string {
	out := []string{}
	if prefix == "" {
		idx.zones.Scan(func(name string, _ *time.Location) bool {
			out = append(out, name)
			return true
		})
		return out
	}

	lower := strings.ToLower(prefix)
	// Zone names are title-cased per segment, so scanning starts at the
	// upper-cased first letter and stops once that letter is passed.
	pivot := strings.ToUpper(prefix[:1])
	idx.zones.Ascend(pivot, func(name string, _ *time.Location) bool {
		if !strings.EqualFold(name[:1], pivot) {
			return false
		}
		if strings.HasPrefix(strings.ToLower(name), lower) {
			out = append(out, name)
		}
		return true
	})
	return out
}

// Location returns the indexed location for name, if any.
func (idx *TimezoneIndex) Location(name string) (*time.Location, bool) {
	return idx.zones.Get(name)
}

// Conversion is the outcome of ConvertTime.
type Conversion struct {
	SourceDatetime string `json:"source_datetime"`
	SourceTimezone string `json:"source_timezone"`
	TargetDatetime string `json:"target_datetime"`
	TargetTimezone string `json:"target_timezone"`
}

func (idx *TimezoneIndex) loadZone(name, side string) (*time.Location, error) {
	if loc, ok := idx.Location(name); ok {
		return loc, nil
	}
	if name == "" || name == "Local" {
		return nil, errors.Invalid.Explain("Unknown %s timezone: %s", side, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Invalid.Explain("Unknown %s timezone: %s", side, name)
	}
	return loc, nil
}

// ConvertTime interprets dt as wall time in fromTZ and renders it in toTZ.
// An empty dt means now. Any IANA zone is accepted, not only indexed ones.
func (idx *TimezoneIndex) ConvertTime(dt, fromTZ, toTZ string, now time.Time) (Conversion, error) {
	from, err := idx.loadZone(fromTZ, "source")
	if err != nil {
		return Conversion{}, err
	}
	to, err := idx.loadZone(toTZ, "target")
	if err != nil {
		return Conversion{}, err
	}

	var source time.Time
	if dt == "" {
		source = now.In(from)
	} else {
		source, err = time.ParseInLocation(DateTimeLayout, dt, from)
		if err != nil {
			return Conversion{}, errors.Invalid.Explain("Invalid datetime format. Use YYYY-MM-DD HH:MM:SS")
		}
	}

	return Conversion{
		SourceDatetime: source.Format(zonedLayout),
		SourceTimezone: fromTZ,
		TargetDatetime: source.In(to).Format(zonedLayout),
		TargetTimezone: toTZ,
	}, nil
}
