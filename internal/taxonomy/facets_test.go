package taxonomy_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/taxonomy"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
	"github.com/MichalMitros/catalog-seeder/internal/vendure/venduretesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitFacetIndexValueID(t *testing.T) {
	srv := venduretesting.NewServer(t)
	brand := srv.SeedFacet("Marca", "marca", vendure.FacetValue{Name: "Daikin", Code: "daikin"})
	api := newAdminAPI(t, srv)
	idx, err := taxonomy.NewFacetIndex(context.TODO(), api, languageCode)
	require.NoError(t, err, "shouldn't return any error")

	t.Run("existing value ignoring case", func(t *testing.T) {
		id, err := idx.ValueID(context.TODO(), "Marca", "DAIKIN")

		require.NoError(t, err, "shouldn't return any error")
		assert.Equal(t, brand.Values[0].ID, id, "should return existing value id")
		assert.Empty(t, srv.CallsOf("CreateFacetValues"), "shouldn't create value")
	})

	t.Run("new value", func(t *testing.T) {
		id, err := idx.ValueID(context.TODO(), "Marca", "Año Frío")
		require.NoError(t, err, "shouldn't return any error")

		again, err := idx.ValueID(context.TODO(), "Marca", "año frío")
		require.NoError(t, err, "shouldn't return any error")

		assert.Equal(t, id, again, "should reuse created value")
		assert.Len(t, srv.CallsOf("CreateFacetValues"), 1, "should create value once")
		lookedUp, ok := idx.Lookup("marca:ano-frio")
		assert.True(t, ok, "should index created value under qualified code")
		assert.Equal(t, id, lookedUp, "should index created value id")
	})

	t.Run("new facet", func(t *testing.T) {
		id, err := idx.ValueID(context.TODO(), "Categoría", "Split")
		require.NoError(t, err, "shouldn't return any error")

		facets := srv.Facets()
		require.Len(t, facets, 2, "should create facet")
		assert.Equal(t, "categoria", facets[1].Code, "should derive facet code from name")
		assert.Equal(t, id, facets[1].Values[0].ID, "should create value in new facet")
	})
}

func TestUnitFacetIndexMatchesFacetNameExactly(t *testing.T) {
	srv := venduretesting.NewServer(t)
	existing := srv.SeedFacet("Marca", "marca")
	api := newAdminAPI(t, srv)
	idx, err := taxonomy.NewFacetIndex(context.TODO(), api, languageCode)
	require.NoError(t, err, "shouldn't return any error")

	_, err = idx.ValueID(context.TODO(), "Marca", "Daikin")
	require.NoError(t, err, "shouldn't return any error")
	assert.Empty(t, srv.CallsOf("CreateFacet"), "should use existing facet")
	assert.Len(t, srv.Facets()[0].Values, 1, "should add value to existing facet")
	assert.Equal(t, existing.ID, srv.Facets()[0].ID, "should keep existing facet")

	_, err = idx.ValueID(context.TODO(), "marca", "Daikin")
	require.Error(t, err, "should match facet names exactly")
	assert.Len(t, srv.CallsOf("CreateFacet"), 1, "should try to create facet with different name")
}

func TestUnitFacetIndexEnsure(t *testing.T) {
	def := models.FacetDefinition{
		Name: "Tipo de gas",
		Code: "gas",
		Values: []models.FacetValueDefinition{
			{Name: "R410A", Code: "r410a"},
			{Name: "R32"},
		},
	}

	srv := venduretesting.NewServer(t)
	api := newAdminAPI(t, srv)

	idx, err := taxonomy.NewFacetIndex(context.TODO(), api, languageCode)
	require.NoError(t, err, "shouldn't return any error")
	require.NoError(t, idx.Ensure(context.TODO(), def), "first ensure shouldn't return any error")

	reloaded, err := taxonomy.NewFacetIndex(context.TODO(), api, languageCode)
	require.NoError(t, err, "shouldn't return any error")
	require.NoError(t, reloaded.Ensure(context.TODO(), def), "second ensure shouldn't return any error")

	facets := srv.Facets()
	require.Len(t, facets, 1, "should create single facet")
	assert.Equal(t, "gas", facets[0].Code, "should use declared code")
	assert.Len(t, facets[0].Values, 2, "should create values once")
	assert.Len(t, srv.CallsOf("CreateFacetValues"), 1, "should create values in single call")

	for _, code := range []string{"r410a", "r32", "gas:r32"} {
		id, ok := reloaded.Lookup(code)
		assert.True(t, ok, "should look up %s", code)
		assert.NotEmpty(t, id, "should return id of %s", code)
	}
}
