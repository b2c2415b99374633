package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/munek/internal/domain"
)

func TestDefaultCatalogIndexesEveryVariant(t *testing.T) {
	c := Default()
	require.Equal(t, 5, c.Len())

	n := 0
	for _, p := range c.Products() {
		for _, v := range p.Variants {
			hit, ok := c.Lookup(v.ID)
			require.True(t, ok, v.ID)
			assert.Equal(t, p.ID, hit.Product.ID)
			assert.Equal(t, v.Price, hit.Variant.Price)
			n++
		}
	}
	assert.Equal(t, 13, n)

	_, ok := c.Lookup("v-nope")
	assert.False(t, ok)
}

func TestNewRejectsDuplicateVariant(t *testing.T) {
	_, err := New([]domain.Product{
		{ID: "a", Category: domain.CategoryCreatina, Variants: []domain.Variant{{ID: "v1", Price: 1}}},
		{ID: "b", Category: domain.CategoryCreatina, Variants: []domain.Variant{{ID: "v1", Price: 2}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v1")
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	_, err := New([]domain.Product{{ID: "a", Category: "Vitaminas"}})
	require.Error(t, err)
}

func TestProductNotFound(t *testing.T) {
	_, err := Default().Product("p-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch(t *testing.T) {
	c := Default()

	assert.Empty(t, c.Search(""))
	assert.Empty(t, c.Search("   "))

	hits := c.Search("WHEY")
	require.Len(t, hits, 1)
	assert.Equal(t, "p-whey-01", hits[0].ID)

	// por categoría
	hits = c.Search("amino")
	require.Len(t, hits, 1)
	assert.Equal(t, "p-bcaa-01", hits[0].ID)

	// por marca: todos
	assert.Len(t, c.Search("muñek"), 5)
}

func TestRelatedExcludesSelf(t *testing.T) {
	c, err := New([]domain.Product{
		{ID: "a", Category: domain.CategoryProteina, Variants: []domain.Variant{{ID: "va", Price: 1}}},
		{ID: "b", Category: domain.CategoryProteina, Variants: []domain.Variant{{ID: "vb", Price: 1}}},
		{ID: "c", Category: domain.CategoryGanador, Variants: []domain.Variant{{ID: "vc", Price: 1}}},
		{ID: "d", Category: domain.CategoryProteina, Variants: []domain.Variant{{ID: "vd", Price: 1}}},
	})
	require.NoError(t, err)

	rel := c.Related("a", 0)
	require.Len(t, rel, 2)
	assert.Equal(t, "b", rel[0].ID)
	assert.Equal(t, "d", rel[1].ID)

	assert.Len(t, c.Related("a", 1), 1)
	assert.Empty(t, c.Related("zzz", 4))
}

func TestCategoriesInCatalogOrder(t *testing.T) {
	assert.Equal(t, []domain.Category{
		domain.CategoryCreatina,
		domain.CategoryProteina,
		domain.CategoryPreEntreno,
		domain.CategoryAminoacidos,
		domain.CategoryGanador,
	}, Default().Categories())
}

func TestByCategory(t *testing.T) {
	got := Default().ByCategory(domain.CategoryPreEntreno)
	require.Len(t, got, 1)
	assert.False(t, got[0].Variants[2].InStock)
	assert.Empty(t, Default().ByCategory(domain.CategoryAccesorios))
}
