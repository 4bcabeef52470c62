package geo

import (
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/be"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/dk"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/ie"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/no"
	"github.com/rickar/cal/v2/se"
	"github.com/rickar/cal/v2/us"

	"github.com/Aidin1998/apihub/common/errors"
)

// Holiday year bounds
const (
	MinHolidayYear = 1950
	MaxHolidayYear = 2050
)

var calendars = map[string][]*cal.Holiday{
	"AT": at.Holidays,
	"BE": be.Holidays,
	"CA": ca.Holidays,
	"DE": de.Holidays,
	"DK": dk.Holidays,
	"ES": es.Holidays,
	"FR": fr.Holidays,
	"GB": gb.Holidays,
	"IE": ie.Holidays,
	"IT": it.Holidays,
	"NL": nl.Holidays,
	"NO": no.Holidays,
	"SE": se.Holidays,
	"US": us.Holidays,
}

// SupportedHolidayCountries lists the ISO2 codes with a holiday calendar.
func SupportedHolidayCountries() []string {
	codes := make([]string, 0, len(calendars))
	for code := range calendars {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Holidays returns the public holidays of a country in year, ordered by date.
// Observed days that differ from the actual date are listed separately.
func Holidays(countryCode string, year int) ([]Holiday, error) {
	if len(countryCode) != 2 {
		return nil, errors.Invalid.Explain("'country_code' must be a two-letter ISO code")
	}
	if year < MinHolidayYear || year > MaxHolidayYear {
		return nil, errors.Invalid.Explain("'year' must be between %d and %d", MinHolidayYear, MaxHolidayYear)
	}
	list, ok := calendars[strings.ToUpper(countryCode)]
	if !ok {
		return nil, errors.NotFound.Explain(
			"Holiday data not available for country code: %s. Check supported codes.", countryCode)
	}

	out := []Holiday{}
	for _, h := range list {
		actual, observed := h.Calc(year)
		if actual.IsZero() || actual.Year() != year {
			continue
		}
		out = append(out, Holiday{Date: actual.Format(time.DateOnly), Name: h.Name})
		if !observed.IsZero() && observed.Year() == year && !sameDay(actual, observed) {
			out = append(out, Holiday{Date: observed.Format(time.DateOnly), Name: h.Name + " (observed)"})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
