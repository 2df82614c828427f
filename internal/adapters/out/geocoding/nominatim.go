// Package geocoding turns donor and user addresses into coordinates through
// an OpenStreetMap Nominatim compatible search endpoint.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "FoodLoop-App/1.0"
	serviceName      = "geocoder"
)

// ClientConfig configures the Nominatim client. The public instance allows
// one request per second.
type ClientConfig struct {
	BaseURL       string
	UserAgent     string
	CountryCodes  string
	RatePerSecond float64
	Timeout       time.Duration
}

// NominatimClient implements ports.Geocoder. Requests are throttled by a
// token bucket shared by every caller.
type NominatimClient struct {
	baseURL      string
	userAgent    string
	countryCodes string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewNominatimClient(cfg ClientConfig) *NominatimClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &NominatimClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:    cfg.UserAgent,
		countryCodes: cfg.CountryCodes,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the best match for query. An empty result list is
// found=false; transport failures and non-200 answers are
// errs.UpstreamUnavailableError.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (kernel.GeoPoint, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return kernel.GeoPoint{}, false, errs.NewUpstreamUnavailableError(serviceName, err)
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.GeoPoint{}, false, errs.NewUpstreamUnavailableError(serviceName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, false, errs.NewUpstreamUnavailableError(serviceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var results []searchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return kernel.GeoPoint{}, false, errs.NewUpstreamUnavailableError(serviceName,
			fmt.Errorf("decode response: %w", err))
	}
	if len(results) == 0 {
		return kernel.GeoPoint{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return kernel.GeoPoint{}, false, nil
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return kernel.GeoPoint{}, false, nil
	}
	return point, true, nil
}
