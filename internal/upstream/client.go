// Package upstream wraps the third-party APIs the hub proxies. Calls are made
// once with a bounded timeout and never retried.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/config"
	"github.com/Aidin1998/apihub/pkg/metrics"
)

// Upstream names used in errors, logs and metrics
const (
	ChuckNorris = "chucknorris"
	IPAPI       = "ip-api"
)

// Outcome labels for metrics.UpstreamRequests
const (
	outcomeOK          = "ok"
	outcomeTimeout     = "timeout"
	outcomeUnavailable = "unavailable"
)

const (
	userAgent    = "apihub/1.0"
	maxBodyBytes = 1 << 20
)

// Client calls third-party JSON APIs.
type Client struct {
	http   *http.Client
	logger *zap.Logger

	jokeURL            string
	geolocationURL     string
	geolocationEnabled bool
}

// NewClient builds a client from cfg. The transport is traced with otelhttp.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:             logger,
		jokeURL:            strings.TrimRight(cfg.JokeURL, "/"),
		geolocationURL:     strings.TrimRight(cfg.GeolocationURL, "/"),
		geolocationEnabled: cfg.GeolocationEnabled,
	}
}

// getJSON fetches rawURL and decodes a 2xx JSON body into out. Every failure
// comes back as a Timeout or Unavailable kind error.
func (c *Client) getJSON(ctx context.Context, name, rawURL string, out any) error {
	start := time.Now()
	err := c.doGetJSON(ctx, rawURL, out)

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeUnavailable
		if isTimeout(ctx, err) {
			outcome = outcomeTimeout
		}
	}
	metrics.UpstreamRequests.WithLabelValues(name, outcome).Inc()

	if err == nil {
		c.logger.Debug("Upstream call succeeded",
			zap.String("upstream", name),
			zap.Duration("duration", time.Since(start)))
		return nil
	}

	c.logger.Warn("Upstream call failed",
		zap.String("upstream", name),
		zap.String("outcome", outcome),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))
	if outcome == outcomeTimeout {
		return errors.Timeout.Explain("The %s API did not respond in time.", name).Wrap(err)
	}
	return errors.Unavailable.Explain("The %s API is currently unavailable.", name).Wrap(err)
}

func (c *Client) doGetJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Joke is a single Chuck Norris joke.
type Joke struct {
	ID     string `json:"id"`
	Joke   string `json:"joke"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source"`
}

type chuckNorrisResponse struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	URL   string `json:"url"`
}

// RandomJoke fetches a random joke from the Chuck Norris API.
func (c *Client) RandomJoke(ctx context.Context) (Joke, error) {
	var resp chuckNorrisResponse
	if err := c.getJSON(ctx, ChuckNorris, c.jokeURL+"/jokes/random", &resp); err != nil {
		return Joke{}, err
	}
	if resp.Value == "" {
		return Joke{}, errors.Unavailable.Explain("The %s API returned an empty joke.", ChuckNorris)
	}
	return Joke{ID: resp.ID, Joke: resp.Value, URL: resp.URL, Source: "api.chucknorris.io"}, nil
}

// Geolocation is the location data ip-api.com reports for an address.
type Geolocation struct {
	Status      string  `json:"status"`
	Message     string  `json:"message,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	RegionName  string  `json:"regionName,omitempty"`
	City        string  `json:"city,omitempty"`
	Zip         string  `json:"zip,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	ISP         string  `json:"isp,omitempty"`
	Org         string  `json:"org,omitempty"`
	AS          string  `json:"as,omitempty"`
	Query       string  `json:"query,omitempty"`
}

const geolocationFields = "status,message,country,countryCode,regionName,city,zip,lat,lon,timezone,isp,org,as,query"

// GeolocationEnabled reports whether Geolocate will call out at all.
func (c *Client) GeolocationEnabled() bool {
	return c.geolocationEnabled && c.geolocationURL != ""
}

// Geolocate looks ip up. A lookup the upstream rejects (reserved ranges,
// bad input) is returned as an Unavailable error carrying its message.
func (c *Client) Geolocate(ctx context.Context, ip string) (Geolocation, error) {
	if !c.GeolocationEnabled() {
		return Geolocation{}, errors.Unavailable.Explain("Geolocation is disabled.")
	}
	u := fmt.Sprintf("%s/json/%s?fields=%s", c.geolocationURL, url.PathEscape(ip), geolocationFields)

	var geo Geolocation
	if err := c.getJSON(ctx, IPAPI, u, &geo); err != nil {
		return Geolocation{}, err
	}
	if geo.Status != "success" {
		msg := geo.Message
		if msg == "" {
			msg = "Failed to fetch geolocation data"
		}
		return Geolocation{}, errors.Unavailable.Explain("%s", msg)
	}
	return geo, nil
}
