// Package geo answers the /data lookups: countries, timezones and public
// holidays.
package geo

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/dataset"
)

const (
	maxSuggestions      = 3
	maxSuggestDistance  = 3
	countryNotFoundText = "Country not found in our simplified dataset."
)

// FindCountry looks a country up by name, or by ISO2 code when no name is
// given. Both comparisons ignore case.
func FindCountry(countries []dataset.Country, name, iso2 string) (dataset.Country, error) {
	if len(countries) == 0 {
		return dataset.Country{}, errors.Unavailable.Explain("Country data is currently unavailable.")
	}
	name, iso2 = strings.TrimSpace(name), strings.TrimSpace(iso2)
	if name == "" && iso2 == "" {
		return dataset.Country{}, errors.Invalid.Explain("Please provide either country_name or country_code_iso2.")
	}

	for _, c := range countries {
		if name != "" && strings.EqualFold(c.Name, name) {
			return c, nil
		}
		if name == "" && strings.EqualFold(c.ISO2, iso2) {
			return c, nil
		}
	}

	if name == "" {
		return dataset.Country{}, errors.NotFound.Explain(countryNotFoundText)
	}
	if hints := suggestCountries(countries, name); len(hints) > 0 {
		return dataset.Country{}, errors.NotFound.Explain(
			"%s Did you mean: %s?", countryNotFoundText, strings.Join(hints, ", "))
	}
	return dataset.Country{}, errors.NotFound.Explain(countryNotFoundText)
}

// suggestCountries returns up to three names closest to query by edit distance.
func suggestCountries(countries []dataset.Country, query string) []string {
	type candidate struct {
		name     string
		distance int
	}
	query = strings.ToLower(query)

	var candidates []candidate
	for _, c := range countries {
		d := levenshtein.ComputeDistance(query, strings.ToLower(c.Name))
		if d <= maxSuggestDistance {
			candidates = append(candidates, candidate{c.Name, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	var out []string
	for i := 0; i < len(candidates) && i < maxSuggestions; i++ {
		out = append(out, candidates[i].name)
	}
	return out
}
