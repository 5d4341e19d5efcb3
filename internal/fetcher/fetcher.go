package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/geodata"
	"github.com/UnknownOlympus/citymap/internal/metrics"
	"github.com/UnknownOlympus/citymap/internal/models"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ErrFetchFailure marks a category query that failed and contributed no points.
var ErrFetchFailure = errors.New("fetch failure")

// Service issues one provider query per selected category and merges the results.
type Service struct {
	log          *slog.Logger     // Logger for logging service activities
	provider     geodata.Provider // POI source queried for each category
	providerName string           // Name of the provider for metrics labeling
	metrics      *metrics.Metrics // Metrics for tracking service performance
	maxParallel  int              // Upper bound on concurrent queries, <= 0 means unbounded
	area         string           // Area name every query is restricted to
}

// NewService creates a new instance of Service.
func NewService(
	log *slog.Logger,
	provider geodata.Provider,
	providerName string,
	metrics *metrics.Metrics,
	maxParallel int,
	area string,
) *Service {
	return &Service{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		maxParallel:  maxParallel,
		area:         area,
	}
}

// FetchAll queries every category concurrently and waits until all queries have settled.
// A failing category is logged and contributes nothing; it never aborts the others.
// An empty selection returns an empty collection without issuing any request.
// The order of the returned points is not guaranteed.
func (s *Service) FetchAll(ctx context.Context, categories []category.Category) []models.PointOfInterest {
	categories = lo.UniqBy(categories, func(c category.Category) string { return c.Name })
	if len(categories) == 0 {
		return []models.PointOfInterest{}
	}

	s.log.DebugContext(ctx, "Starting fetch cycle", "categories", len(categories), "area", s.area)

	results := make([][]models.PointOfInterest, len(categories))

	var group errgroup.Group
	if s.maxParallel > 0 {
		group.SetLimit(s.maxParallel)
	}

	for idx, cat := range categories {
		group.Go(func() error {
			pois, err := s.fetchCategory(ctx, cat)
			if err != nil {
				s.log.ErrorContext(ctx, "Failed to fetch category", "category", cat.Name, "error", err)
				return nil
			}
			results[idx] = pois
			return nil
		})
	}

	// Every goroutine returns nil so Wait only ever reports completion.
	_ = group.Wait()

	collection := lo.Flatten(results)
	s.log.InfoContext(ctx, "Fetch cycle finished", "categories", len(categories), "points", len(collection))

	return collection
}

func (s *Service) fetchCategory(ctx context.Context, cat category.Category) ([]models.PointOfInterest, error) {
	s.metrics.ActiveRequests.Inc()
	defer s.metrics.ActiveRequests.Dec()

	startTime := time.Now()
	pois, err := s.provider.Search(ctx, cat, s.area)
	s.metrics.RequestSeconds.WithLabelValues(s.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		s.metrics.ProviderErrors.WithLabelValues(cat.Name).Inc()
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailure, cat.Name, err)
	}

	s.log.DebugContext(ctx, "Category fetched", "category", cat.Name, "points", len(pois))

	// A point belongs to the category whose query found it.
	for i := range pois {
		pois[i].Category = cat.Name
	}

	return pois, nil
}
