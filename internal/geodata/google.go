package geodata

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/models"
	"googlemaps.github.io/maps"
)

// GooglePlacesProvider searches points of interest with the Google Places Text Search API.
type GooglePlacesProvider struct {
	client GooglePlacesClient // client is the Google Maps API client
	log    *slog.Logger       // log is the logger for logging operations
}

// GooglePlacesClient is the subset of *maps.Client used by the provider.
type GooglePlacesClient interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// NewGooglePlacesProvider initializes a new GooglePlacesProvider with the given client and logger.
func NewGooglePlacesProvider(client GooglePlacesClient, log *slog.Logger) *GooglePlacesProvider {
	return &GooglePlacesProvider{client: client, log: log}
}

// Search runs a text search like "sports centre in São José dos Campos" and maps every result
// with a location to a point owned by the category.
func (gp *GooglePlacesProvider) Search(
	ctx context.Context,
	cat category.Category,
	area string,
) ([]models.PointOfInterest, error) {
	req := &maps.TextSearchRequest{Query: PlacesQuery(cat.Tag, area)}

	gp.log.DebugContext(ctx, "Searching using Google Places", "category", cat.Name, "query", req.Query)

	resp, err := gp.client.TextSearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	pois := make([]models.PointOfInterest, 0, len(resp.Results))
	for _, place := range resp.Results {
		loc := place.Geometry.Location
		if loc.Lat == 0 && loc.Lng == 0 {
			continue
		}

		pois = append(pois, models.PointOfInterest{
			ID:         place.PlaceID,
			Latitude:   loc.Lat,
			Longitude:  loc.Lng,
			Category:   cat.Name,
			Attributes: placeAttributes(place),
		})
	}

	return pois, nil
}

// PlacesQuery turns an OSM-style tag into a free text query for the area.
func PlacesQuery(tag, area string) string {
	return strings.ReplaceAll(tag, "_", " ") + " in " + area
}

func placeAttributes(place maps.PlacesSearchResult) map[string]string {
	attrs := map[string]string{}
	if place.Name != "" {
		attrs["name"] = place.Name
	}
	if place.FormattedAddress != "" {
		attrs["address"] = place.FormattedAddress
	}
	if place.PlaceID != "" {
		attrs["place_id"] = place.PlaceID
	}
	if len(place.Types) > 0 {
		attrs["types"] = strings.Join(place.Types, ",")
	}
	if place.Rating > 0 {
		attrs["rating"] = strconv.FormatFloat(float64(place.Rating), 'f', 1, 32)
	}

	return attrs
}
