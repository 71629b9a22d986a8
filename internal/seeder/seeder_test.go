package seeder_test

import (
	"context"
	"math"
	"net/http"
	"testing"

	"github.com/MichalMitros/catalog-seeder/internal/graphql"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models/modelstesting"
	"github.com/MichalMitros/catalog-seeder/internal/seeder"
	"github.com/MichalMitros/catalog-seeder/internal/seeder/mocks"
	"github.com/MichalMitros/catalog-seeder/internal/taxonomy"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
	"github.com/MichalMitros/catalog-seeder/internal/vendure/venduretesting"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const languageCode = "es"

type fixture struct {
	srv    *venduretesting.Server
	api    *vendure.AdminAPI
	assets *mocks.AssetAttacher
	seeder *seeder.ProductSeeder
}

func newFixture(t *testing.T, prepare func(srv *venduretesting.Server)) *fixture {
	t.Helper()

	srv := venduretesting.NewServer(t)
	if prepare != nil {
		prepare(srv)
	}

	client := graphql.NewClient(http.DefaultClient, srv.Endpoint(), graphql.NewSession(), "test/0.0.0")
	api := vendure.NewAdminAPI(client)
	require.NoError(t, api.Login(context.TODO(), venduretesting.Username, venduretesting.Password), "login shouldn't return any error")

	facets, err := taxonomy.NewFacetIndex(context.TODO(), api, languageCode)
	require.NoError(t, err, "shouldn't return any error")

	assets := mocks.NewAssetAttacher(t)
	productSeeder := seeder.NewProductSeeder(api, facets, assets, languageCode, &nopLogger)
	_, err = productSeeder.LoadSlugs(context.TODO())
	require.NoError(t, err, "shouldn't return any error")

	return &fixture{srv: srv, api: api, assets: assets, seeder: productSeeder}
}

func TestUnitSeed(t *testing.T) {
	f := newFixture(t, func(srv *venduretesting.Server) {
		srv.SeedFacet("Tipo de gas", "gas", vendure.FacetValue{Name: "R32", Code: "r32"})
	})
	def := modelstesting.FakeProduct(func(p *models.ProductDefinition) {
		p.SKU = "C-1"
		p.Name = "Compresor Rotativo"
		p.Price = lo.ToPtr(5.49)
		p.Stock = 7
		p.Brand = "Daikin"
		p.Category = "Compresores"
		p.FacetValueCodes = []string{"r32", "unknown"}
	})

	outcome, err := f.seeder.Seed(context.TODO(), def)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, models.ItemCreated, outcome.Status, "should create product")
	assert.Equal(t, "compresor-rotativo-c-1", outcome.Slug, "should derive product slug")

	stored := f.srv.Products()
	require.Len(t, stored, 1, "should create single product")
	assert.Equal(t, *outcome.ProductID, stored[0].ID, "should return product id")
	assert.Equal(t, def.Description, stored[0].Description, "should store description")
	assert.Equal(t, def.CustomFields, stored[0].CustomFields, "should store custom fields")
	assert.Len(t, stored[0].FacetValueIDs, 3, "should assign known code, brand and category")

	require.Len(t, stored[0].Variants, 1, "should create exactly one variant")
	variant := stored[0].Variants[0]
	assert.Equal(t, *outcome.VariantID, variant.ID, "should return variant id")
	assert.Equal(t, int64(549), variant.Price, "should store price in cents")
	assert.Equal(t, 7, variant.StockOnHand, "should store stock")
	assert.Equal(t, "C-1", variant.SKU, "should store sku")

	facetNames := lo.Map(f.srv.Facets(), func(facet vendure.Facet, _ int) string { return facet.Name })
	assert.Equal(t, []string{"Tipo de gas", "Marca", "Categoría"}, facetNames, "should create brand and category facets")
	assert.Empty(t, f.srv.CallsOf("UpdateProduct"), "shouldn't update product without images")
}

func TestUnitSeedSkipsExisting(t *testing.T) {
	f := newFixture(t, func(srv *venduretesting.Server) {
		srv.SeedProduct("Compresor", "compresor-c1")
	})

	outcome, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "C1", Name: "Compresor"})
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, models.ItemSkipped, outcome.Status, "should skip existing product")

	created, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "C2", Name: "Compresor"})
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, models.ItemCreated, created.Status, "should create product with other sku")

	again, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "C2", Name: "Compresor"})
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, models.ItemSkipped, again.Status, "should skip product created in this run")

	assert.Len(t, f.srv.CallsOf("CreateProduct"), 1, "should create product once")
}

func TestUnitSeedAssets(t *testing.T) {
	urls := []string{"https://img.example.com/a.jpg", "https://img.example.com/broken.jpg"}

	t.Run("attached", func(t *testing.T) {
		f := newFixture(t, nil)
		f.assets.On("Attach", mock.Anything, urls, "split-s-9").Return([]string{"a1", "a2"}).Once()

		outcome, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "S-9", Name: "Split", ImageURLs: urls})

		require.NoError(t, err, "shouldn't return any error")
		assert.Equal(t, []string{"a1", "a2"}, outcome.AssetIDs, "should return asset ids")
		stored := f.srv.Products()[0]
		assert.Equal(t, "a1", stored.FeaturedAssetID, "first asset should be featured")
		assert.Equal(t, []string{"a1", "a2"}, stored.AssetIDs, "should set all assets")
	})

	t.Run("no asset obtained", func(t *testing.T) {
		f := newFixture(t, nil)
		f.assets.On("Attach", mock.Anything, urls, "split-s-9").Return(nil).Once()

		outcome, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "S-9", Name: "Split", ImageURLs: urls})

		require.NoError(t, err, "shouldn't return any error")
		assert.Equal(t, models.ItemCreated, outcome.Status, "should create product")
		stored := f.srv.Products()[0]
		assert.Empty(t, stored.FeaturedAssetID, "shouldn't set featured asset")
		assert.Len(t, stored.Variants, 1, "should create variant")
		assert.Empty(t, f.srv.CallsOf("UpdateProduct"), "shouldn't update product")
	})

	t.Run("update error", func(t *testing.T) {
		f := newFixture(t, nil)
		f.srv.FailOn("UpdateProduct", nil)
		f.assets.On("Attach", mock.Anything, urls, "split-s-9").Return([]string{"a1"}).Once()

		outcome, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "S-9", Name: "Split", ImageURLs: urls})

		require.NoError(t, err, "asset errors shouldn't fail product")
		assert.Equal(t, models.ItemCreated, outcome.Status, "should create product")
	})
}

func TestUnitSeedInvalidPrice(t *testing.T) {
	f := newFixture(t, nil)

	outcome, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "X1", Name: "Bomba", Price: lo.ToPtr(math.NaN())})

	require.ErrorIs(t, err, seeder.ErrInvalidPrice, "should return invalid price error")
	assert.Equal(t, models.ItemFailed, outcome.Status, "should fail item")
	assert.Nil(t, outcome.ProductID, "shouldn't create product")
	assert.Empty(t, f.srv.Products(), "shouldn't create product")
}

func TestUnitSeedErrors(t *testing.T) {
	tests := map[string]struct {
		operation     string
		wantProductID bool
	}{
		"product":     {operation: "CreateProduct"},
		"variant":     {operation: "CreateProductVariants", wantProductID: true},
		"brand facet": {operation: "CreateFacet"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.srv.FailOn(tt.operation, nil)

			outcome, err := f.seeder.Seed(context.TODO(), models.ProductDefinition{SKU: "X1", Name: "Bomba", Brand: "Acme"})

			var gqlErr *graphql.Error
			require.ErrorAs(t, err, &gqlErr, "should return graphql error")
			assert.Equal(t, models.ItemFailed, outcome.Status, "should fail item")
			require.NotNil(t, outcome.Error, "should hold error message")
			assert.Equal(t, tt.wantProductID, outcome.ProductID != nil, "should return created product id")
		})
	}
}
