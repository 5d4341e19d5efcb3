package geodata_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/citymap/internal/geodata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create Overpass provider successfully", func(t *testing.T) {
		config := geodata.ProviderConfig{
			Type:    geodata.ProviderTypeOverpass,
			Timeout: 30 * time.Second,
			Logger:  logger,
		}

		provider, err := geodata.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geodata.OverpassProvider)
		assert.True(t, ok, "expected provider to be *OverpassProvider")
	})

	t.Run("create Google provider successfully", func(t *testing.T) {
		config := geodata.ProviderConfig{
			Type:   geodata.ProviderTypeGoogle,
			APIKey: "AIza-test-api-key",
			Logger: logger,
		}

		provider, err := geodata.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geodata.GooglePlacesProvider)
		assert.True(t, ok, "expected provider to be *GooglePlacesProvider")
	})

	t.Run("create Google provider without API key fails", func(t *testing.T) {
		config := geodata.ProviderConfig{
			Type:   geodata.ProviderTypeGoogle,
			Logger: logger,
		}

		provider, err := geodata.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "API key is required for Google provider")
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		config := geodata.ProviderConfig{
			Type:   geodata.ProviderType("unsupported"),
			Logger: logger,
		}

		provider, err := geodata.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type: unsupported")
	})
}

func TestProviderType_Constants(t *testing.T) {
	assert.Equal(t, "overpass", string(geodata.ProviderTypeOverpass))
	assert.Equal(t, "google", string(geodata.ProviderTypeGoogle))
}
