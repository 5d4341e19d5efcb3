package presenter

// View is the state sent to the page after every interaction.
type View struct {
	Generation  uint64   `json:"generation"`
	Status      Status   `json:"status"`
	Selected    []string `json:"selected"`
	AllSelected bool     `json:"allSelected"`
	Markers     []Marker `json:"markers"`
}

// Marker is one point on the map together with its popup content.
type Marker struct {
	ID         string      `json:"id"`
	Latitude   float64     `json:"lat"`
	Longitude  float64     `json:"lon"`
	Category   string      `json:"category"`
	Icon       string      `json:"icon"`
	Title      string      `json:"title"`
	Attributes []Attribute `json:"attributes"`
}

// Attribute is a single key/value pair of the point's source data.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
