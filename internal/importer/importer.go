package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MichalMitros/catalog-seeder/internal/decoder"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/seeder"
	"github.com/MichalMitros/catalog-seeder/internal/taxonomy"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// AdminAPI is Admin API operations used for importing catalog.
type AdminAPI interface {
	Login(ctx context.Context, username, password string) error
	taxonomy.CollectionAPI
	taxonomy.FacetAPI
	seeder.ProductAPI
}

// Fetcher fetches remote source files.
type Fetcher interface {
	FetchFile(ctx context.Context, url string) (io.ReadCloser, error)
}

// Decoder decodes catalog files.
type Decoder interface {
	DecodeTaxonomy(ctx context.Context, file io.Reader) (*models.Taxonomy, error)
	DecodeProducts(ctx context.Context, file io.Reader, output chan<- models.ParsingResult) error
}

// Config holds importing configuration.
type Config struct {
	Username      string
	Password      string
	LanguageCode  string
	BrandFacet    string
	CategoryFacet string
}

// Option is custom configuration of Importer.
type Option func(i *Importer)

// WithBatchOptions sets options of batch seeding products.
func WithBatchOptions(ops ...seeder.Option) Option {
	return func(i *Importer) {
		i.batchOptions = append(i.batchOptions, ops...)
	}
}

// Importer imports catalog files into Admin API.
type Importer struct {
	api          AdminAPI
	fetcher      Fetcher
	assets       seeder.AssetAttacher
	storage      seeder.Storage
	cfg          Config
	decoders     map[string]Decoder
	batchOptions []seeder.Option
	logger       *zerolog.Logger
}

// NewImporter returns new Importer decoding json catalogs and xlsx workbooks.
func NewImporter(
	api AdminAPI,
	fetcher Fetcher,
	assets seeder.AssetAttacher,
	storage seeder.Storage,
	cfg Config,
	logger *zerolog.Logger,
	ops ...Option,
) *Importer {
	imp := &Importer{
		api:     api,
		fetcher: fetcher,
		assets:  assets,
		storage: storage,
		cfg:     cfg,
		decoders: map[string]Decoder{
			decoder.ExtJSON: decoder.JSON{},
			decoder.ExtXLSX: decoder.NewWorkbook(cfg.BrandFacet, cfg.CategoryFacet),
		},
		logger: logger,
	}

	for _, op := range ops {
		op(imp)
	}

	return imp
}

// Import logs in, creates taxonomy declared by source file and seeds its products.
// Errors before seeding products are returned, failures of single products are only counted in returned run.
func (i *Importer) Import(ctx context.Context, source string) (*models.Run, error) {
	if err := i.api.Login(ctx, i.cfg.Username, i.cfg.Password); err != nil {
		return nil, fmt.Errorf("can't log in: %w", err)
	}

	ext, err := decoder.Extension(source)
	if err != nil {
		return nil, err
	}

	dec, ok := i.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", decoder.ErrUnsupportedFormat, source)
	}

	data, err := i.read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("can't read source file: %w", err)
	}

	tax, err := dec.DecodeTaxonomy(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("can't decode taxonomy: %w", err)
	}

	facets, err := i.seedTaxonomy(ctx, tax)
	if err != nil {
		return nil, err
	}

	productSeeder := seeder.NewProductSeeder(
		i.api,
		facets,
		i.assets,
		i.cfg.LanguageCode,
		i.logger,
		seeder.WithBrandFacet(i.cfg.BrandFacet),
		seeder.WithCategoryFacet(i.cfg.CategoryFacet),
	)

	existing, err := productSeeder.LoadSlugs(ctx)
	if err != nil {
		return nil, err
	}

	i.logger.Info().
		Str("source", source).
		Int("existingProducts", existing).
		Msg("seeding products")

	return i.seedProducts(ctx, source, dec, data, productSeeder)
}

func (i *Importer) seedTaxonomy(ctx context.Context, tax *models.Taxonomy) (*taxonomy.FacetIndex, error) {
	facets, err := taxonomy.NewFacetIndex(ctx, i.api, i.cfg.LanguageCode)
	if err != nil {
		return nil, err
	}

	for _, def := range tax.Facets {
		if err = facets.Ensure(ctx, def); err != nil {
			return nil, fmt.Errorf("can't ensure facet %q: %w", def.Name, err)
		}
	}

	if len(tax.Collections) == 0 {
		return facets, nil
	}

	collections, err := taxonomy.NewCollectionIndex(ctx, i.api, i.cfg.LanguageCode)
	if err != nil {
		return nil, err
	}

	result, err := taxonomy.NewTreeBuilder(collections, i.api, facets, i.logger).Build(ctx, tax.Collections)
	if err != nil {
		return nil, fmt.Errorf("can't build collections: %w", err)
	}

	i.logger.Info().
		Int("created", result.Created).
		Int("existing", result.Existing).
		Msg("collections ready")

	return facets, nil
}

func (i *Importer) seedProducts(
	ctx context.Context,
	source string,
	dec Decoder,
	data []byte,
	productSeeder *seeder.ProductSeeder,
) (*models.Run, error) {
	results := make(chan models.ParsingResult)
	batch := seeder.NewBatch(productSeeder, i.storage, i.logger, i.batchOptions...)

	errGroup, egCtx := errgroup.WithContext(ctx)

	// decode products.
	errGroup.Go(func() error {
		defer close(results)
		if err := dec.DecodeProducts(egCtx, bytes.NewReader(data), results); err != nil {
			return fmt.Errorf("can't decode products: %w", err)
		}
		return nil
	})

	// seed products one by one.
	var run *models.Run
	errGroup.Go(func() error {
		var err error
		run, err = batch.Run(egCtx, source, results)
		return err
	})

	err := errGroup.Wait()

	return run, err
}

// read returns content of local file or file fetched from http(s) url.
func (i *Importer) read(ctx context.Context, source string) ([]byte, error) {
	var (
		file io.ReadCloser
		err  error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		file, err = i.fetcher.FetchFile(ctx, source)
	} else {
		file, err = os.Open(source)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
