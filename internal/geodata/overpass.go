package geodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/models"
)

// OverpassBaseURL is the public Overpass API interpreter endpoint.
const OverpassBaseURL = "https://overpass-api.de/api/interpreter"

// OverpassProvider implements the Provider interface using the OpenStreetMap Overpass API.
type OverpassProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Interpreter endpoint
	timeout int          // Server-side query timeout in seconds
	log     *slog.Logger // Logger for logging operations
}

// overpassResponse represents the JSON response from the Overpass interpreter.
type overpassResponse struct {
	Remark   string            `json:"remark"`
	Elements []overpassElement `json:"elements"`
}

// overpassElement is a node, way or relation. Nodes carry lat/lon, areas carry a center
// when the query asks for "out center".
type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// NewOverpassProvider creates a new Overpass provider. An empty baseURL selects the public endpoint.
func NewOverpassProvider(baseURL string, timeout time.Duration, log *slog.Logger) *OverpassProvider {
	return NewOverpassProviderWithClient(&http.Client{Timeout: timeout}, baseURL, timeout, log)
}

// NewOverpassProviderWithClient creates an Overpass provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewOverpassProviderWithClient(
	client HTTPClient,
	baseURL string,
	timeout time.Duration,
	log *slog.Logger,
) *OverpassProvider {
	if baseURL == "" {
		baseURL = OverpassBaseURL
	}

	return &OverpassProvider{
		client:  client,
		baseURL: baseURL,
		timeout: int(timeout.Seconds()),
		log:     log,
	}
}

// Search queries nodes and ways within the named area whose amenity matches the category tag.
// Elements without direct or center coordinates are dropped.
func (op *OverpassProvider) Search(
	ctx context.Context,
	cat category.Category,
	area string,
) ([]models.PointOfInterest, error) {
	query := BuildOverpassQuery(cat.Tag, area, op.timeout)

	reqURL, err := url.Parse(op.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("data", query)
	reqURL.RawQuery = params.Encode()

	op.log.DebugContext(ctx, "Overpass request", "category", cat.Name, "query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		op.log.ErrorContext(ctx, "Overpass API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("overpass API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result overpassResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	if result.Remark != "" {
		op.log.WarnContext(ctx, "Overpass returned a remark", "category", cat.Name, "remark", result.Remark)
	}

	pois := make([]models.PointOfInterest, 0, len(result.Elements))
	for _, el := range result.Elements {
		coords, ok := el.coordinates()
		if !ok {
			op.log.DebugContext(ctx, "Dropping element without coordinates", "type", el.Type, "id", el.ID)
			continue
		}

		tags := el.Tags
		if tags == nil {
			tags = map[string]string{}
		}

		pois = append(pois, models.PointOfInterest{
			ID:         fmt.Sprintf("%s/%d", el.Type, el.ID),
			Latitude:   coords.Latitude,
			Longitude:  coords.Longitude,
			Category:   cat.Name,
			Attributes: tags,
		})
	}

	op.log.DebugContext(ctx, "Overpass found elements",
		"category", cat.Name,
		"elements", len(result.Elements),
		"kept", len(pois))

	return pois, nil
}

func (el overpassElement) coordinates() (models.Coordinates, bool) {
	if el.Lat != nil && el.Lon != nil {
		return models.Coordinates{Latitude: *el.Lat, Longitude: *el.Lon}, true
	}

	if el.Center != nil && el.Center.Lat != nil && el.Center.Lon != nil {
		return models.Coordinates{Latitude: *el.Center.Lat, Longitude: *el.Center.Lon}, true
	}

	return models.Coordinates{}, false
}

// BuildOverpassQuery returns the Overpass QL selecting amenity nodes and ways matching tag inside area.
func BuildOverpassQuery(tag, area string, timeout int) string {
	var b strings.Builder

	b.WriteString("[out:json]")
	if timeout > 0 {
		fmt.Fprintf(&b, "[timeout:%d]", timeout)
	}
	b.WriteString(";\n")
	fmt.Fprintf(&b, "area[name=\"%s\"]->.area;\n", escapeQL(area))
	b.WriteString("(\n")
	fmt.Fprintf(&b, "  node[amenity~\"%s\"](area.area);\n", escapeQL(tag))
	fmt.Fprintf(&b, "  way[amenity~\"%s\"](area.area);\n", escapeQL(tag))
	b.WriteString(");\n")
	b.WriteString("out center;")

	return b.String()
}

func escapeQL(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
