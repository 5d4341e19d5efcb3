package models

// PointOfInterest is a single feature returned by a POI source for one category query.
type PointOfInterest struct {
	ID         string            // ID is assigned by the source, unique within one query batch.
	Latitude   float64           // Latitude of the point or of the area's center.
	Longitude  float64           // Longitude of the point or of the area's center.
	Category   string            // Category is the name of the category whose query found the point.
	Attributes map[string]string // Attributes are echoed verbatim from the source data.
}

// DisplayName returns the point's name attribute, falling back to its category name.
func (p PointOfInterest) DisplayName() string {
	if name := p.Attributes["name"]; name != "" {
		return name
	}

	return p.Category
}
