package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidin1998/apihub/internal/dataset"
)

func TestCountryInfo(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodGet, "/data/country-info?country_name=germany", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Berlin", decode(t, w)["capital"])

	w = do(router, http.MethodGet, "/data/country-info?country_code_iso2=jp", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tokyo", decode(t, w)["capital"])

	w = do(router, http.MethodGet, "/data/country-info?country_name=Germani", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeProblem(t, w).Detail, "Did you mean: Germany?")

	w = do(router, http.MethodGet, "/data/country-info", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCountryInfoWithoutData(t *testing.T) {
	router := newServer(testConfig(), &dataset.Datasets{}).Router()

	w := do(router, http.MethodGet, "/data/country-info?country_name=Germany", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTimezones(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodGet, "/data/timezones?prefix=europe/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	zones := resp["timezones"].([]any)
	require.NotEmpty(t, zones)
	assert.Contains(t, zones, "Europe/London")
	assert.EqualValues(t, len(zones), resp["count"])

	w = do(router, http.MethodGet, "/data/timezones?prefix=Mars/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["count"])
}

func TestTimeConvert(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodGet, "/data/time/convert?dt_str=2024-01-15+12:00:00&from_tz=UTC&to_tz=Asia/Tokyo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Contains(t, resp["target_datetime"], "2024-01-15 21:00:00")
	assert.Equal(t, "Asia/Tokyo", resp["target_timezone"])

	// no dt_str converts the current time
	w = do(router, http.MethodGet, "/data/time/convert?to_tz=Europe/Berlin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["target_datetime"], "2024-03-10 13:00:00")

	w = do(router, http.MethodGet, "/data/time/convert?from_tz=Nowhere/City", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/data/time/convert?dt_str=15.01.2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHolidays(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodGet, "/data/holidays?country_code=us&year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "US", resp["country_code"])
	dates := []string{}
	for _, h := range resp["holidays"].([]any) {
		dates = append(dates, h.(map[string]any)["date"].(string))
	}
	assert.Contains(t, dates, "2024-07-04")

	// year defaults to the current year
	w = do(router, http.MethodGet, "/data/holidays?country_code=DE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2024, decode(t, w)["year"])

	w = do(router, http.MethodGet, "/data/holidays?country_code=ZZ&year=2024", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/data/holidays?country_code=US&year=1800", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/data/holidays", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
