package geodata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/citymap/internal/models"
)

// NominatimBaseURL is the public Nominatim search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimLocator resolves an area name to its center using OpenStreetMap's Nominatim API.
// This is a free service with usage limits (1 request/second for fair use), so it is only
// called once at startup.
type NominatimLocator struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nominatim API
	log     *slog.Logger // Logger for logging operations
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// Common errors for Nominatim locator.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimLocator creates a new locator using the public Nominatim API endpoint.
func NewNominatimLocator(log *slog.Logger) *NominatimLocator {
	const timeout = 10
	return NewNominatimLocatorWithClient(&http.Client{Timeout: timeout * time.Second}, log)
}

// NewNominatimLocatorWithClient creates a locator with a custom HTTP client.
func NewNominatimLocatorWithClient(client HTTPClient, log *slog.Logger) *NominatimLocator {
	return &NominatimLocator{
		client:  client,
		baseURL: NominatimBaseURL,
		log:     log,
	}
}

// Locate returns the coordinates of the best match for the area name.
func (nl *NominatimLocator) Locate(ctx context.Context, area string) (*models.Coordinates, error) {
	reqURL, err := url.Parse(nl.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", area)
	query.Set("format", "json")
	query.Set("limit", "1")
	reqURL.RawQuery = query.Encode()

	nl.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// User-Agent with contact info is required by the Nominatim usage policy.
	req.Header.Set("User-Agent", userAgent)

	resp, err := nl.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute locate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		nl.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResponse
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	nl.log.InfoContext(ctx, "Nominatim located area", "area", area, "lat", lat, "lon", lon)

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
