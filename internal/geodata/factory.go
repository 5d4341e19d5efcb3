package geodata

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of POI source.
type ProviderType string

const (
	// ProviderTypeOverpass represents the OpenStreetMap Overpass API.
	ProviderTypeOverpass ProviderType = "overpass"
	// ProviderTypeGoogle represents the Google Places Text Search API.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating a POI provider.
type ProviderConfig struct {
	Type    ProviderType  // Type of provider to create
	APIKey  string        // API key (used by Google provider)
	BaseURL string        // Endpoint override (used by Overpass provider)
	Timeout time.Duration // Per-request timeout
	Logger  *slog.Logger  // Logger for the provider
}

// NewProvider creates a POI provider based on the provided configuration.
//
// Supported provider types:
// - "overpass": OpenStreetMap Overpass API (free, no API key required)
// - "google": Google Places Text Search (requires API key)
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeOverpass:
		return NewOverpassProvider(config.BaseURL, config.Timeout, config.Logger), nil
	case ProviderTypeGoogle:
		return newGooglePlacesProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGooglePlacesProvider creates a Google Places provider.
func newGooglePlacesProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	client, err := maps.NewClient(maps.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGooglePlacesProvider(client, config.Logger), nil
}
