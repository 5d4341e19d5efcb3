package fetcher_test

import (
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/fetcher"
	"github.com/UnknownOlympus/citymap/internal/metrics"
	"github.com/UnknownOlympus/citymap/internal/models"
	"github.com/UnknownOlympus/citymap/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const area = "São José dos Campos"

func newService(t *testing.T, provider *mocks.Provider, maxParallel int) (*fetcher.Service, *metrics.Metrics) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return fetcher.NewService(logger, provider, "mock", appMetrics, maxParallel, area), appMetrics
}

func mustLookup(t *testing.T, names ...string) []category.Category {
	t.Helper()

	reg := category.Default()
	cats := make([]category.Category, 0, len(names))
	for _, name := range names {
		cat, err := reg.Lookup(name)
		require.NoError(t, err)
		cats = append(cats, cat)
	}

	return cats
}

func TestFetchAll(t *testing.T) {
	ctx := t.Context()

	t.Run("empty selection issues no requests", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		service, _ := newService(t, provider, 0)

		pois := service.FetchAll(ctx, nil)

		require.NotNil(t, pois)
		assert.Empty(t, pois)
		provider.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("single category without name", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		service, _ := newService(t, provider, 0)
		cats := mustLookup(t, "Ensino")

		provider.On("Search", ctx, cats[0], area).Return([]models.PointOfInterest{{
			ID:         "node/1",
			Latitude:   -23.2,
			Longitude:  -45.9,
			Category:   "Ensino",
			Attributes: map[string]string{"amenity": "school"},
		}}, nil).Once()

		pois := service.FetchAll(ctx, cats)

		require.Len(t, pois, 1)
		assert.Equal(t, "Ensino", pois[0].Category)
		assert.Equal(t, "Ensino", pois[0].DisplayName())
	})

	t.Run("partial failure is isolated", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		service, appMetrics := newService(t, provider, 0)
		cats := mustLookup(t, "Saúde", "Cultura")

		provider.On("Search", ctx, cats[0], area).Return(nil, errors.New("connection reset")).Once()
		provider.On("Search", ctx, cats[1], area).Return([]models.PointOfInterest{
			{ID: "node/10", Latitude: -23.18, Longitude: -45.88, Category: "Cultura", Attributes: map[string]string{}},
			{ID: "way/11", Latitude: -23.19, Longitude: -45.87, Category: "Cultura", Attributes: map[string]string{}},
		}, nil).Once()

		pois := service.FetchAll(ctx, cats)

		require.Len(t, pois, 2)
		for _, poi := range pois {
			assert.Equal(t, "Cultura", poi.Category)
		}
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.ProviderErrors.WithLabelValues("Saúde")), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(appMetrics.ActiveRequests), 0)
	})

	t.Run("all categories failing yields empty collection", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		service, _ := newService(t, provider, 1)
		cats := mustLookup(t, "Saúde", "Cultura", "Eventos")

		provider.On("Search", ctx, mock.Anything, area).Return(nil, assert.AnError).Times(3)

		pois := service.FetchAll(ctx, cats)

		assert.Empty(t, pois)
	})

	t.Run("points keep the category that queried them", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		service, _ := newService(t, provider, 0)
		cats := mustLookup(t, "Ensino", "Comunidade")
		shared := models.PointOfInterest{ID: "node/5", Latitude: -23.2, Longitude: -45.9, Category: "Ensino"}

		provider.On("Search", ctx, cats[0], area).Return([]models.PointOfInterest{shared}, nil).Once()
		provider.On("Search", ctx, cats[1], area).Return([]models.PointOfInterest{shared}, nil).Once()

		pois := service.FetchAll(ctx, cats)

		require.Len(t, pois, 2)
		assert.ElementsMatch(t, []string{"Ensino", "Comunidade"}, []string{pois[0].Category, pois[1].Category})
	})

	t.Run("duplicate categories are queried once", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		service, _ := newService(t, provider, 0)
		cats := mustLookup(t, "Transporte", "Transporte")

		provider.On("Search", ctx, cats[0], area).Return([]models.PointOfInterest{}, nil).Once()

		pois := service.FetchAll(ctx, cats)

		assert.Empty(t, pois)
	})
}

func TestFetchAll_Concurrency(t *testing.T) {
	ctx := t.Context()
	all := category.Default().All()

	t.Run("every category is in flight at the same time", func(t *testing.T) {
		provider := mocks.NewProvider(t)
		service, _ := newService(t, provider, len(all))

		var arrived atomic.Int32
		var timedOut atomic.Bool
		barrier := make(chan struct{})

		provider.On("Search", ctx, mock.Anything, area).Run(func(mock.Arguments) {
			if arrived.Add(1) == int32(len(all)) {
				close(barrier)
			}
			select {
			case <-barrier:
			case <-time.After(2 * time.Second):
				timedOut.Store(true)
			}
		}).Return([]models.PointOfInterest{}, nil).Times(len(all))

		pois := service.FetchAll(ctx, all)

		assert.Empty(t, pois)
		assert.False(t, timedOut.Load(), "queries ran one after another instead of concurrently")
		assert.Equal(t, int32(len(all)), arrived.Load())
	})

	t.Run("in-flight queries never exceed the worker limit", func(t *testing.T) {
		const workers = 2

		provider := mocks.NewProvider(t)
		service, appMetrics := newService(t, provider, workers)

		var inFlight, peak atomic.Int32
		provider.On("Search", ctx, mock.Anything, area).Run(func(mock.Arguments) {
			current := inFlight.Add(1)
			for {
				seen := peak.Load()
				if current <= seen || peak.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
		}).Return([]models.PointOfInterest{}, nil).Times(len(all))

		service.FetchAll(ctx, all)

		assert.LessOrEqual(t, peak.Load(), int32(workers))
		assert.Equal(t, int32(workers), peak.Load())
		assert.InDelta(t, 0, testutil.ToFloat64(appMetrics.ActiveRequests), 0)
	})
}
