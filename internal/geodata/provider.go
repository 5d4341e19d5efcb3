package geodata

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/models"
)

// Provider is an interface that defines a method for searching points of interest.
// Search takes a context, the category to query and the name of the area to search in,
// and returns every point the source resolved to coordinates, each owned by that category.
type Provider interface {
	Search(ctx context.Context, cat category.Category, area string) ([]models.PointOfInterest, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const userAgent = "Citymap-POI-Viewer/1.0 (https://github.com/UnknownOlympus/citymap)"
