package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidin1998/apihub/internal/config"
)

func TestUserAgent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dev/user-agent", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Chrome", resp["browser_family"])
	assert.Equal(t, true, resp["is_pc"])
	assert.Equal(t, false, resp["is_mobile"])
}

func TestIPInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dev/ip-info", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "203.0.113.7", resp["ip_address"])
	assert.NotContains(t, resp, "geolocation", "geolocation is disabled by default")
}

func TestIPInfoGeolocation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/8.8.8.8", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","country":"United States","countryCode":"US","city":"Mountain View","query":"8.8.8.8"}`))
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.Upstream.GeolocationEnabled = true
	cfg.Upstream.GeolocationURL = upstream.URL
	router := newServer(cfg, testDatasets()).Router()

	req := httptest.NewRequest(http.MethodGet, "/dev/ip-info", nil)
	req.Header.Set("X-Real-IP", "8.8.8.8")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	geo := decode(t, w)["geolocation"].(map[string]any)
	assert.Equal(t, "Mountain View", geo["city"])
}

func TestIPInfoGeolocationFailureDegrades(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	cfg := testConfig()
	cfg.Upstream.GeolocationEnabled = true
	cfg.Upstream.GeolocationURL = upstream.URL
	router := newServer(cfg, testDatasets()).Router()

	req := httptest.NewRequest(http.MethodGet, "/dev/ip-info", nil)
	req.Header.Set("X-Real-IP", "8.8.8.8")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "8.8.8.8", resp["ip_address"])
	assert.NotEmpty(t, resp["geolocation_error"])
}

func TestHTTPStatus(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodGet, "/dev/http-status?code=404", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.EqualValues(t, 404, resp["code"])
	assert.Contains(t, resp["image_url"], "404")

	w = do(router, http.MethodGet, "/dev/http-status?code=799", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/dev/http-status", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUUID(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodGet, "/dev/uuid?version=7&count=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ids := decode(t, w)["uuids"].([]any)
	require.Len(t, ids, 3)
	assert.Equal(t, "7", ids[0].(string)[14:15])

	w = do(router, http.MethodGet, "/dev/uuid?count=101", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/dev/uuid?version=1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnitConverter(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodPost, "/dev/unit-converter",
		`{"value": 100, "from_unit": "celsius", "to_unit": "fahrenheit", "category": "temperature"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 212, decode(t, w)["converted_value"])

	w = do(router, http.MethodPost, "/dev/unit-converter",
		`{"value": 1, "from_unit": "meter", "to_unit": "kilogram", "category": "length"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/dev/unit-converter", `{"from_unit": "m", "to_unit": "cm", "category": "length"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/dev/unit-converter",
		`{"value": 1e306, "from_unit": "mile", "to_unit": "millimeter", "category": "length"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "converted_value is out of range", decodeProblem(t, w).Detail)
}

func TestTimestampConverter(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodPost, "/dev/timestamp-converter", `{"value": 0, "operation": "from_unix"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1970-01-01 00:00:00", decode(t, w)["datetime"])

	w = do(router, http.MethodPost, "/dev/timestamp-converter",
		`{"value": "2024-03-10 12:00:00", "operation": "to_unix"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1710072000, decode(t, w)["unix"])

	w = do(router, http.MethodPost, "/dev/timestamp-converter", `{"operation": "to_unix"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/dev/timestamp-converter", `{"value": "yesterday", "operation": "to_unix"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculator(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodPost, "/dev/calculator", `{"a": 0.1, "b": 0.2, "operation": "add"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "0.3", resp["result_exact"])
	assert.EqualValues(t, 0.3, resp["result"])

	w = do(router, http.MethodPost, "/dev/calculator", `{"a": 1, "b": 0, "operation": "divide"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/dev/calculator", `{"a": 1, "b": 2, "operation": "sqrt"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculatorOutOfRange(t *testing.T) {
	router := setupRouter()

	for _, body := range []string{
		`{"a": 10, "b": 400, "operation": "power"}`,
		`{"a": 1e200, "b": 1e200, "operation": "multiply"}`,
		`{"a": 1e5000000, "b": 1, "operation": "add"}`,
		`{"a": "1e1000000", "b": 1, "operation": "add"}`,
	} {
		start := time.Now()
		w := do(router, http.MethodPost, "/dev/calculator", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, decodeProblem(t, w).Detail, "out of range", body)
		assert.Less(t, time.Since(start), time.Second, body)
	}
}

func TestJWTDecode(t *testing.T) {
	router := setupRouter()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": fixedNow.Add(-time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	w := do(router, http.MethodPost, "/dev/jwt/decode", map[string]string{"token": token})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "HS256", resp["algorithm"])
	assert.Equal(t, "user-1", resp["claims"].(map[string]any)["sub"])
	assert.Equal(t, true, resp["expired"])
	assert.Equal(t, false, resp["signature_verified"])

	w = do(router, http.MethodPost, "/dev/jwt/decode", map[string]string{"token": "not.a.jwt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTOTPRoundTrip(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodGet, "/dev/totp/generate?issuer=Hub&account_name=ada@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	key := decode(t, w)
	assert.True(t, strings.HasPrefix(key["otpauth_url"].(string), "otpauth://totp/"))

	w = do(router, http.MethodPost, "/dev/totp/verify", map[string]any{"secret": key["secret"], "code": key["current_code"]})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["valid"])

	w = do(router, http.MethodPost, "/dev/totp/verify", map[string]any{"secret": key["secret"], "code": "12"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["valid"])

	w = do(router, http.MethodGet, "/dev/totp/generate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBcrypt(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodPost, "/dev/bcrypt/hash", map[string]any{"password": "hunter2", "cost": 4})
	require.Equal(t, http.StatusOK, w.Code)
	hash := decode(t, w)["hash"]

	w = do(router, http.MethodPost, "/dev/bcrypt/verify", map[string]any{"password": "hunter2", "hash": hash})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["valid"])

	w = do(router, http.MethodPost, "/dev/bcrypt/verify", map[string]any{"password": "wrong", "hash": hash})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["valid"])

	w = do(router, http.MethodPost, "/dev/bcrypt/hash", map[string]any{"password": "x", "cost": 31})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestURLShortener(t *testing.T) {
	router := setupRouter()

	w := do(router, http.MethodPost, "/dev/url-shortener/create", map[string]string{"long_url": "https://example.com/a/very/long/path"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	code := resp["short_code"].(string)
	assert.Len(t, code, 6)
	assert.Equal(t, "http://example.com/dev/url-shortener/go/"+code, resp["short_url"])

	w = do(router, http.MethodGet, "/dev/url-shortener/go/"+code, nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://example.com/a/very/long/path", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/dev/url-shortener/go/zzzzzz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodPost, "/dev/url-shortener/create", map[string]string{"long_url": "ftp://example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestURLShortenerConfiguredBase(t *testing.T) {
	cfg := testConfig()
	cfg.Shortener = config.ShortenerConfig{Driver: config.DriverMemory, BaseURL: "https://sho.rt/", CodeLength: 8}
	router := newServer(cfg, testDatasets()).Router()

	w := do(router, http.MethodPost, "/dev/url-shortener/create", map[string]string{"long_url": "https://example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, strings.HasPrefix(resp["short_url"].(string), "https://sho.rt/dev/url-shortener/go/"))
	assert.NotContains(t, resp, "expires_at")
}
