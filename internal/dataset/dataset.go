// Package dataset loads the static JSON collections bundled with the service.
// Everything here is read once at startup and treated as read-only afterwards.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/pkg/metrics"
)

// File names inside the data directory
const (
	FamousQuotesFile = "famous_quotes.json"
	BadJokesFile     = "bad_jokes.json"
	CatFactsFile     = "cat_facts.json"
	DogFactsFile     = "dog_facts.json"
	CountriesFile    = "countries_simplified.json"
)

type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type Country struct {
	Name     string `json:"name"`
	Capital  string `json:"capital"`
	Currency string `json:"currency"`
	ISO2     string `json:"iso2"`
}

// Datasets is the process-wide set of bundled collections. An empty slice
// means the data is unavailable.
type Datasets struct {
	Quotes    []Quote
	BadJokes  []string
	CatFacts  []string
	DogFacts  []string
	Countries []Country
}

// Load reads a JSON array from path. A missing or malformed file is logged
// and yields an empty slice so callers can answer "data unavailable".
func Load[T any](path string, logger *zap.Logger) []T {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Data file not readable", zap.String("path", path), zap.Error(err))
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Could not decode JSON data file", zap.String("path", path), zap.Error(err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// LoadAll loads every bundled dataset from dir and publishes record counts.
func LoadAll(dir string, logger *zap.Logger) *Datasets {
	ds := &Datasets{
		Quotes:    Load[Quote](filepath.Join(dir, FamousQuotesFile), logger),
		BadJokes:  Load[string](filepath.Join(dir, BadJokesFile), logger),
		CatFacts:  Load[string](filepath.Join(dir, CatFactsFile), logger),
		DogFacts:  Load[string](filepath.Join(dir, DogFactsFile), logger),
		Countries: Load[Country](filepath.Join(dir, CountriesFile), logger),
	}

	for name, count := range ds.Counts() {
		metrics.DatasetRecords.WithLabelValues(name).Set(float64(count))
	}
	logger.Info("Datasets loaded", zap.Any("records", ds.Counts()))
	return ds
}

// Counts reports the number of records per dataset.
func (d *Datasets) Counts() map[string]int {
	return map[string]int{
		"famous_quotes": len(d.Quotes),
		"bad_jokes":     len(d.BadJokes),
		"cat_facts":     len(d.CatFacts),
		"dog_facts":     len(d.DogFacts),
		"countries":     len(d.Countries),
	}
}
