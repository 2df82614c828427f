package geocoding_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodloop/internal/adapters/out/geocoding"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *geocoding.NominatimClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return geocoding.NewNominatimClient(geocoding.ClientConfig{
		BaseURL:       server.URL,
		CountryCodes:  "lk",
		RatePerSecond: 100,
	})
}

func TestNominatimClient_Geocode(t *testing.T) {
	t.Run("should send the search query and parse the first match", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.Equal(t, "lk", r.URL.Query().Get("countrycodes"))
			assert.Equal(t, "12 Galle Road, Colombo", r.URL.Query().Get("q"))
			assert.Equal(t, geocoding.DefaultUserAgent, r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"6.9271","lon":"79.8612","display_name":"Colombo"}]`))
		})

		point, found, err := client.Geocode(t.Context(), "12 Galle Road, Colombo")

		require.NoError(t, err)
		require.True(t, found)
		assert.InDelta(t, 6.9271, point.Latitude(), 1e-9)
		assert.InDelta(t, 79.8612, point.Longitude(), 1e-9)
	})

	t.Run("should report not found for an empty answer", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		_, found, err := client.Geocode(t.Context(), "nowhere")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should report not found for unparsable coordinates", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"north","lon":"79.8"}]`))
		})

		_, found, err := client.Geocode(t.Context(), "somewhere")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("should classify server errors as upstream unavailable", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, found, err := client.Geocode(t.Context(), "anything")

		assert.False(t, found)
		require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	})

	t.Run("should classify malformed bodies as upstream unavailable", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})

		_, _, err := client.Geocode(t.Context(), "anything")

		require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	})
}
