package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/config"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(config.UpstreamConfig{
		Timeout:            timeout,
		JokeURL:            url,
		GeolocationURL:     url,
		GeolocationEnabled: true,
	}, zap.NewNop())
}

func TestRandomJoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jokes/random", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc","value":"Chuck Norris counted to infinity. Twice.","url":"https://api.chucknorris.io/jokes/abc"}`))
	}))
	defer srv.Close()

	joke, err := newTestClient(srv.URL, time.Second).RandomJoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", joke.ID)
	assert.Equal(t, "Chuck Norris counted to infinity. Twice.", joke.Joke)
	assert.Equal(t, "api.chucknorris.io", joke.Source)
}

func TestRandomJokeUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"bad payload", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
		{"empty joke", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"x"}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestClient(srv.URL, time.Second).RandomJoke(context.Background())
			assert.True(t, errors.Is(err, errors.Unavailable), "got %v", err)
		})
	}
}

func TestRandomJokeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestClient(srv.URL, 50*time.Millisecond).RandomJoke(context.Background())
	assert.True(t, errors.Is(err, errors.Timeout), "got %v", err)
}

func TestRandomJokeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, time.Second).RandomJoke(context.Background())
	assert.True(t, errors.Is(err, errors.Unavailable), "got %v", err)
}

func TestGeolocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json/8.8.8.8":
			assert.Contains(t, r.URL.Query().Get("fields"), "countryCode")
			_, _ = w.Write([]byte(`{"status":"success","country":"United States","countryCode":"US","query":"8.8.8.8"}`))
		default:
			_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
		}
	}))
	defer srv.Close()
	client := newTestClient(srv.URL, time.Second)

	geo, err := client.Geolocate(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "US", geo.CountryCode)

	_, err = client.Geolocate(context.Background(), "10.0.0.1")
	assert.True(t, errors.Is(err, errors.Unavailable))
	assert.ErrorContains(t, err, "reserved range")
}

func TestGeolocateDisabled(t *testing.T) {
	client := NewClient(config.UpstreamConfig{Timeout: time.Second}, zap.NewNop())
	assert.False(t, client.GeolocationEnabled())

	_, err := client.Geolocate(context.Background(), "8.8.8.8")
	assert.True(t, errors.Is(err, errors.Unavailable))
}
