package shortener

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/config"
	"github.com/Aidin1998/apihub/internal/generator"
	"github.com/Aidin1998/apihub/pkg/metrics"
)

const (
	base62          = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	maxURLLength    = 2048
	maxSaveAttempts = 5
	maxCodeLength   = 32

	// RedirectPath is where short codes are served, relative to the base URL.
	RedirectPath = "/dev/url-shortener/go/"
)

// ShortURL describes a created mapping.
type ShortURL struct {
	LongURL   string     `json:"long_url"`
	ShortCode string     `json:"short_code"`
	ShortURL  string     `json:"short_url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Service creates and resolves short URLs.
type Service struct {
	store      Store
	driver     string
	baseURL    string
	ttl        time.Duration
	codeLength int
	src        generator.Source
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(store Store, cfg config.ShortenerConfig, logger *zap.Logger) *Service {
	length := cfg.CodeLength
	if length <= 0 {
		length = 6
	}
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverMemory
	}
	return &Service{
		store:      store,
		driver:     driver,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		ttl:        cfg.TTL,
		codeLength: length,
		src:        generator.SecureSource,
		logger:     logger,
		now:        time.Now,
	}
}

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxURLLength {
		return errors.Invalid.Explain("URL must be between 1 and %d characters", maxURLLength)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Invalid.Explain("Invalid URL: %s", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Invalid.Explain("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.Invalid.Explain("URL must include a host")
	}
	return nil
}

func (s *Service) newCode() string {
	b := make([]byte, s.codeLength)
	for i := range b {
		b[i] = base62[s.src.Int64N(int64(len(base62)))]
	}
	return string(b)
}

// Shorten stores longURL under a fresh random code. requestBase is used to
// build the link when no base URL is configured.
func (s *Service) Shorten(ctx context.Context, longURL, requestBase string) (ShortURL, error) {
	longURL = strings.TrimSpace(longURL)
	if err := ValidateURL(longURL); err != nil {
		return ShortURL{}, err
	}

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		code := s.newCode()
		ok, err := s.store.Save(ctx, code, longURL, s.ttl)
		if err != nil {
			metrics.ShortURLs.WithLabelValues(s.driver, "save", "error").Inc()
			s.logger.Error("Failed to save short URL", zap.String("driver", s.driver), zap.Error(err))
			return ShortURL{}, errors.Unavailable.Explain("Short URL storage is unavailable.").Wrap(err)
		}
		if !ok {
			metrics.ShortURLs.WithLabelValues(s.driver, "save", "collision").Inc()
			s.logger.Debug("Short code collision", zap.String("code", code), zap.Int("attempt", attempt))
			continue
		}

		metrics.ShortURLs.WithLabelValues(s.driver, "save", "ok").Inc()
		out := ShortURL{LongURL: longURL, ShortCode: code, ShortURL: s.link(code, requestBase)}
		if s.ttl > 0 {
			exp := s.now().Add(s.ttl).UTC().Truncate(time.Second)
			out.ExpiresAt = &exp
		}
		return out, nil
	}
	return ShortURL{}, errors.Internal.Explain("Could not allocate a unique short code.")
}

func (s *Service) link(code, requestBase string) string {
	base := s.baseURL
	if base == "" {
		base = strings.TrimRight(requestBase, "/")
	}
	return base + RedirectPath + code
}

func validCode(code string) bool {
	if code == "" || len(code) > maxCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(base62, code[i]) < 0 {
			return false
		}
	}
	return true
}

// Resolve returns the long URL for code.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	if !validCode(code) {
		metrics.ShortURLs.WithLabelValues(s.driver, "resolve", "miss").Inc()
		return "", ErrNotFound
	}
	longURL, err := s.store.Resolve(ctx, code)
	switch {
	case err == nil:
		metrics.ShortURLs.WithLabelValues(s.driver, "resolve", "hit").Inc()
		return longURL, nil
	case errors.Is(err, ErrNotFound):
		metrics.ShortURLs.WithLabelValues(s.driver, "resolve", "miss").Inc()
		return "", ErrNotFound
	default:
		metrics.ShortURLs.WithLabelValues(s.driver, "resolve", "error").Inc()
		s.logger.Error("Failed to resolve short URL", zap.String("driver", s.driver), zap.Error(err))
		return "", errors.Unavailable.Explain("Short URL storage is unavailable.").Wrap(err)
	}
}

// Driver names the backing store.
func (s *Service) Driver() string { return s.driver }

// Close releases the backing store.
func (s *Service) Close() error { return s.store.Close() }
