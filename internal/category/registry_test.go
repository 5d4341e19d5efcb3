package category_test

import (
	"testing"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := category.Default()

	t.Run("known category", func(t *testing.T) {
		cat, err := reg.Lookup("Saúde")

		require.NoError(t, err)
		assert.Equal(t, "fa-hospital", cat.Icon)
		assert.Equal(t, "hospital", cat.Tag)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := reg.Lookup("Bares")

		require.ErrorIs(t, err, category.ErrUnknownCategory)
		assert.Contains(t, err.Error(), "Bares")
	})

	t.Run("lookup is exact", func(t *testing.T) {
		_, err := reg.Lookup("saude")

		require.ErrorIs(t, err, category.ErrUnknownCategory)
	})
}

func TestRegistry_LookupSlug(t *testing.T) {
	reg := category.Default()

	t.Run("slug without diacritics", func(t *testing.T) {
		cat, err := reg.LookupSlug("seguranca")

		require.NoError(t, err)
		assert.Equal(t, "Segurança", cat.Name)
	})

	t.Run("slug is normalized before lookup", func(t *testing.T) {
		cat, err := reg.LookupSlug("Saúde")

		require.NoError(t, err)
		assert.Equal(t, "Saúde", cat.Name)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := reg.LookupSlug("bares")

		require.ErrorIs(t, err, category.ErrUnknownCategory)
	})
}

func TestRegistry_Listing(t *testing.T) {
	reg := category.Default()

	assert.Equal(t, 11, reg.Len())
	assert.Equal(t, []string{
		"Ensino", "Saúde", "Ambiental", "Correios", "Esportes",
		"Cultura", "Segurança", "Infraestrutura", "Transporte", "Comunidade", "Eventos",
	}, reg.Names())

	all := reg.All()
	all[0].Name = "changed"
	assert.Equal(t, "Ensino", reg.All()[0].Name, "All must return a copy")
}

func TestNewRegistry_Duplicates(t *testing.T) {
	reg := category.NewRegistry(
		category.Category{Name: "Ensino", Tag: "school"},
		category.Category{Name: "Ensino", Tag: "university"},
	)

	cat, err := reg.Lookup("Ensino")

	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "school", cat.Tag)
}

func TestCategory_Slug(t *testing.T) {
	assert.Equal(t, "saude", category.Category{Name: "Saúde"}.Slug())
	assert.Equal(t, "seguranca", category.Category{Name: "Segurança"}.Slug())
	assert.Equal(t, "sao-jose", category.Category{Name: "São José"}.Slug())
}
