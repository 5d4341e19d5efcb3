package presenter

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/metrics"
	"github.com/UnknownOlympus/citymap/internal/models"
	"github.com/samber/lo"
)

// Fetcher retrieves the points of interest for a set of categories.
type Fetcher interface {
	FetchAll(ctx context.Context, categories []category.Category) []models.PointOfInterest
}

// Status is the fetch state of a presenter.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusFetching Status = "fetching"
)

// Presenter owns the selection and the POI collection of one map session.
//
// Each Refresh dispatches a fetch cycle tagged with a new generation taken from the
// shared Sequence. A cycle that completes after a newer one was dispatched is discarded,
// so the collection always belongs to the latest selection.
type Presenter struct {
	mu         sync.Mutex
	registry   *category.Registry
	fetcher    Fetcher
	log        *slog.Logger
	metrics    *metrics.Metrics
	selection  Selection
	sequence   *Sequence
	generation uint64
	status     Status
	collection []models.PointOfInterest
	lastSeen   time.Time
}

// New creates a presenter with an empty selection. Its first view already carries a
// generation from the sequence.
func New(
	registry *category.Registry,
	fetcher Fetcher,
	log *slog.Logger,
	metrics *metrics.Metrics,
	sequence *Sequence,
) *Presenter {
	return &Presenter{
		registry:   registry,
		fetcher:    fetcher,
		log:        log,
		metrics:    metrics,
		sequence:   sequence,
		generation: sequence.Next(),
		status:     StatusIdle,
		lastSeen:   time.Now(),
	}
}

// Toggle flips one category in the selection.
func (p *Presenter) Toggle(name string) error {
	cat, err := p.registry.Lookup(name)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.selection.Toggle(cat.Name)
	p.lastSeen = time.Now()

	return nil
}

// ToggleAll clears the selection when every category is selected and selects all otherwise.
func (p *Presenter) ToggleAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selection.AllSelected(p.registry) {
		p.selection.Clear()
	} else {
		p.selection.SelectAll(p.registry)
	}
	p.lastSeen = time.Now()
}

// Refresh runs a fetch cycle for the current selection and returns the view once it settles.
// The returned view is whatever state is current at that point, which may belong to a newer cycle.
func (p *Presenter) Refresh(ctx context.Context) View {
	p.mu.Lock()
	generation := p.sequence.Next()
	p.generation = generation
	p.status = StatusFetching
	p.collection = nil
	selected := p.selection.Categories(p.registry)
	p.lastSeen = time.Now()
	p.mu.Unlock()

	p.log.DebugContext(ctx, "Dispatching fetch cycle", "generation", generation, "categories", len(selected))

	collection := p.fetcher.FetchAll(ctx, selected)

	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation {
		p.log.DebugContext(ctx, "Discarding stale fetch cycle", "generation", generation, "latest", p.generation)
		p.metrics.FetchCycles.WithLabelValues("stale").Inc()
		return p.viewLocked()
	}

	p.collection = collection
	p.status = StatusIdle
	p.metrics.FetchCycles.WithLabelValues("applied").Inc()

	return p.viewLocked()
}

// View returns a snapshot of the presenter state.
func (p *Presenter) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastSeen = time.Now()

	return p.viewLocked()
}

// LastSeen returns the time of the last interaction with the presenter.
func (p *Presenter) LastSeen() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lastSeen
}

func (p *Presenter) viewLocked() View {
	view := View{
		Generation:  p.generation,
		Status:      p.status,
		Selected:    lo.Map(p.selection.Categories(p.registry), func(c category.Category, _ int) string { return c.Name }),
		AllSelected: p.selection.AllSelected(p.registry),
		Markers:     []Marker{},
	}

	if p.status == StatusFetching {
		return view
	}

	view.Markers = lo.Map(p.collection, func(poi models.PointOfInterest, _ int) Marker {
		return p.marker(poi)
	})

	return view
}

func (p *Presenter) marker(poi models.PointOfInterest) Marker {
	icon := ""
	if cat, err := p.registry.Lookup(poi.Category); err == nil {
		icon = cat.Icon
	}

	keys := lo.Keys(poi.Attributes)
	sort.Strings(keys)

	return Marker{
		ID:        poi.ID,
		Latitude:  poi.Latitude,
		Longitude: poi.Longitude,
		Category:  poi.Category,
		Icon:      icon,
		Title:     poi.DisplayName(),
		Attributes: lo.Map(keys, func(k string, _ int) Attribute {
			return Attribute{Key: k, Value: poi.Attributes[k]}
		}),
	}
}
