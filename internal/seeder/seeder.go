package seeder

import (
	"context"
	"fmt"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/slug"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name AssetAttacher --filename asset_attacher.go

const (
	defaultBrandFacet    = "Marca"
	defaultCategoryFacet = "Categoría"
)

// ProductAPI is Admin API product operations.
type ProductAPI interface {
	Products(ctx context.Context) ([]vendure.Product, error)
	CreateProduct(ctx context.Context, input vendure.CreateProductInput) (*vendure.Product, error)
	CreateProductVariant(ctx context.Context, input vendure.CreateProductVariantInput) (*vendure.ProductVariant, error)
	UpdateProductAssets(ctx context.Context, input vendure.UpdateProductAssetsInput) error
}

// FacetResolver resolves facet values.
type FacetResolver interface {
	// Lookup returns id of facet value with provided code.
	Lookup(code string) (string, bool)
	// ValueID returns id of value with provided name of facet with provided name, creating missing ones.
	ValueID(ctx context.Context, facetName, valueName string) (string, error)
}

// AssetAttacher creates assets from image urls.
type AssetAttacher interface {
	Attach(ctx context.Context, urls []string, base string) []string
}

// SeederOption is custom configuration of ProductSeeder.
type SeederOption func(s *ProductSeeder)

// WithBrandFacet sets name of facet holding product brands.
func WithBrandFacet(name string) SeederOption {
	return func(s *ProductSeeder) {
		s.brandFacet = name
	}
}

// WithCategoryFacet sets name of facet holding product categories.
func WithCategoryFacet(name string) SeederOption {
	return func(s *ProductSeeder) {
		s.categoryFacet = name
	}
}

// ProductSeeder creates products with single variant and their assets.
type ProductSeeder struct {
	api           ProductAPI
	facets        FacetResolver
	assets        AssetAttacher
	languageCode  string
	brandFacet    string
	categoryFacet string
	logger        *zerolog.Logger
	existing      map[string]struct{}
}

// NewProductSeeder returns new ProductSeeder.
func NewProductSeeder(
	api ProductAPI,
	facets FacetResolver,
	assets AssetAttacher,
	languageCode string,
	logger *zerolog.Logger,
	ops ...SeederOption,
) *ProductSeeder {
	s := &ProductSeeder{
		api:           api,
		facets:        facets,
		assets:        assets,
		languageCode:  languageCode,
		brandFacet:    defaultBrandFacet,
		categoryFacet: defaultCategoryFacet,
		logger:        logger,
		existing:      make(map[string]struct{}),
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// LoadSlugs loads slugs of existing products, products with these slugs are skipped.
// Returns number of loaded slugs.
func (s *ProductSeeder) LoadSlugs(ctx context.Context) (int, error) {
	products, err := s.api.Products(ctx)
	if err != nil {
		return 0, fmt.Errorf("can't load products: %w", err)
	}

	for _, p := range products {
		s.existing[p.Slug] = struct{}{}
	}

	return len(s.existing), nil
}

// Seed creates product with its variant and assets.
// Item is skipped when product with the same slug exists. Failed assets don't fail the item.
func (s *ProductSeeder) Seed(ctx context.Context, def models.ProductDefinition) (models.ItemOutcome, error) {
	outcome := models.ItemOutcome{
		SKU:  def.SKU,
		Name: def.Name,
		Slug: slug.Product(def.Name, def.SKU),
	}

	if _, ok := s.existing[outcome.Slug]; ok {
		outcome.Status = models.ItemSkipped
		return outcome, nil
	}

	price, err := ToCents(def.Price)
	if err != nil {
		return failed(outcome, err)
	}

	facetValueIDs, err := s.facetValueIDs(ctx, def)
	if err != nil {
		return failed(outcome, err)
	}

	product, err := s.api.CreateProduct(ctx, vendure.CreateProductInput{
		FacetValueIDs: facetValueIDs,
		Translations: []vendure.Translation{{
			LanguageCode: s.languageCode,
			Name:         def.Name,
			Slug:         outcome.Slug,
			Description:  def.Description,
		}},
		CustomFields: def.CustomFields,
	})
	if err != nil {
		return failed(outcome, err)
	}
	outcome.ProductID = &product.ID
	s.existing[outcome.Slug] = struct{}{}

	variant, err := s.api.CreateProductVariant(ctx, vendure.CreateProductVariantInput{
		ProductID:    product.ID,
		SKU:          def.SKU,
		Price:        price,
		StockOnHand:  def.Stock,
		Translations: []vendure.Translation{{LanguageCode: s.languageCode, Name: def.Name}},
	})
	if err != nil {
		return failed(outcome, err)
	}
	outcome.VariantID = &variant.ID

	if len(def.ImageURLs) > 0 {
		outcome.AssetIDs = s.attachAssets(ctx, product.ID, def, outcome.Slug)
	}

	outcome.Status = models.ItemCreated

	return outcome, nil
}

func (s *ProductSeeder) facetValueIDs(ctx context.Context, def models.ProductDefinition) ([]string, error) {
	ids := make([]string, 0, len(def.FacetValueCodes)+2)

	for _, code := range def.FacetValueCodes {
		id, ok := s.facets.Lookup(code)
		if !ok {
			s.logger.Warn().
				Str("sku", def.SKU).
				Str("code", code).
				Msg("unknown facet value code")
			continue
		}
		ids = append(ids, id)
	}

	for _, named := range [][2]string{{s.brandFacet, def.Brand}, {s.categoryFacet, def.Category}} {
		if named[1] == "" {
			continue
		}

		id, err := s.facets.ValueID(ctx, named[0], named[1])
		if err != nil {
			return nil, fmt.Errorf("can't resolve %s %q: %w", named[0], named[1], err)
		}
		ids = append(ids, id)
	}

	return lo.Uniq(ids), nil
}

func (s *ProductSeeder) attachAssets(ctx context.Context, productID string, def models.ProductDefinition, base string) []string {
	ids := s.assets.Attach(ctx, def.ImageURLs, base)
	if len(ids) == 0 {
		return nil
	}

	err := s.api.UpdateProductAssets(ctx, vendure.UpdateProductAssetsInput{
		ID:              productID,
		FeaturedAssetID: ids[0],
		AssetIDs:        ids,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("sku", def.SKU).
			Str("name", def.Name).
			Msg("can't attach assets to product")
	}

	return ids
}

func failed(outcome models.ItemOutcome, err error) (models.ItemOutcome, error) {
	outcome.Status = models.ItemFailed
	outcome.Error = lo.ToPtr(err.Error())
	return outcome, err
}
