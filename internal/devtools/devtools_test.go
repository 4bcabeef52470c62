package devtools

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aidin1998/apihub/common/errors"
)

const (
	chromeOnWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	safariOnIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	googlebot       = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestParseUserAgent(t *testing.T) {
	desktop := ParseUserAgent(chromeOnWindows)
	assert.Equal(t, "Chrome", desktop.BrowserFamily)
	assert.True(t, strings.HasPrefix(desktop.BrowserVersion, "120"))
	assert.True(t, desktop.IsPC)
	assert.False(t, desktop.IsMobile)
	assert.False(t, desktop.IsBot)

	phone := ParseUserAgent(safariOnIPhone)
	assert.True(t, phone.IsMobile)
	assert.False(t, phone.IsPC)
	assert.Equal(t, "Apple", phone.DeviceBrand)

	bot := ParseUserAgent(googlebot)
	assert.True(t, bot.IsBot)
	assert.False(t, bot.IsPC)

	empty := ParseUserAgent("")
	assert.Equal(t, "Unknown", empty.UserAgentString)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/dev/ip-info", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "10.0.0.9", ClientIP(req))

	req.Header.Set(HeaderRealIP, "198.51.100.4")
	assert.Equal(t, "198.51.100.4", ClientIP(req))

	req.Header.Set(HeaderForwardedFor, " 203.0.113.7 , 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(req))

	req.Header.Set(HeaderVercelForwardedFor, "192.0.2.1")
	assert.Equal(t, "192.0.2.1", ClientIP(req))
}

func TestIsPublicIP(t *testing.T) {
	assert.True(t, IsPublicIP("8.8.8.8"))
	assert.False(t, IsPublicIP("127.0.0.1"))
	assert.False(t, IsPublicIP("192.168.1.10"))
	assert.False(t, IsPublicIP("not-an-ip"))
}

func TestExplainStatus(t *testing.T) {
	s, err := ExplainStatus(404)
	require.NoError(t, err)
	assert.Equal(t, "https://http.cat/404.jpg", s.ImageURL)
	assert.True(t, strings.HasPrefix(s.Explanation, "Not Found"))

	_, err = ExplainStatus(299)
	assert.True(t, errors.Is(err, errors.NotFound))
	assert.ErrorContains(t, err, "299")
}

func TestGenerateUUIDs(t *testing.T) {
	ids, err := GenerateUUIDs(4, 3)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	}
	assert.NotEqual(t, ids[0], ids[1])

	v7, err := GenerateUUIDs(7, 2)
	require.NoError(t, err)
	parsed := uuid.MustParse(v7[0])
	assert.Equal(t, uuid.Version(7), parsed.Version())

	_, err = GenerateUUIDs(1, 1)
	assert.True(t, errors.Is(err, errors.Invalid))
	_, err = GenerateUUIDs(4, 101)
	assert.True(t, errors.Is(err, errors.Invalid))
}

func TestDecodeJWT(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": "admin",
		"iat":  now.Add(-time.Hour).Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	decoded, err := DecodeJWT(signed, now)
	require.NoError(t, err)
	assert.Equal(t, "HS256", decoded.Algorithm)
	assert.Equal(t, "HS256", decoded.Header["alg"])
	assert.Equal(t, "user-1", decoded.Claims["sub"])
	assert.False(t, decoded.Expired)
	assert.False(t, decoded.SignatureVerified)
	require.NotNil(t, decoded.ExpiresAt)

	later, err := DecodeJWT(signed, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, later.Expired)

	_, err = DecodeJWT("not.a.jwt", now)
	assert.True(t, errors.Is(err, errors.Invalid))
}

func TestTOTP(t *testing.T) {
	now := time.Now()
	key, err := GenerateTOTP("apihub", "ada@example.com", now)
	require.NoError(t, err)
	assert.Contains(t, key.URL, "otpauth://totp/")
	assert.Len(t, key.CurrentCode, 6)

	ok, err := VerifyTOTP(key.Secret, key.CurrentCode, now)
	require.NoError(t, err)
	assert.True(t, ok)

	expected, err := totp.GenerateCode(key.Secret, now.Add(10*time.Minute))
	require.NoError(t, err)
	ok, err = VerifyTOTP(key.Secret, expected, now)
	require.NoError(t, err)
	assert.Equal(t, expected == key.CurrentCode, ok)

	ok, err = VerifyTOTP(key.Secret, "12", now)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = GenerateTOTP("", "x", now)
	assert.True(t, errors.Is(err, errors.Invalid))
}

func TestBcrypt(t *testing.T) {
	hash, err := BcryptHash("hunter2", MinBcryptCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))

	ok, err := BcryptVerify("hunter2", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = BcryptVerify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = BcryptVerify("hunter2", "plain")
	assert.True(t, errors.Is(err, errors.Invalid))

	_, err = BcryptHash("x", 31)
	assert.True(t, errors.Is(err, errors.Invalid))
	_, err = BcryptHash(strings.Repeat("a", 73), MinBcryptCost)
	assert.True(t, errors.Is(err, errors.Invalid))
}
