package decoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/slug"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

// Workbook column names.
const (
	ColumnSKU              = "sku"
	ColumnCategory         = "categoria"
	ColumnBrand            = "marca"
	ColumnPrice            = "precio"
	ColumnStock            = "inventario"
	ColumnName             = "nombre_corregido_nuevo"
	ColumnCompatibilities  = "compatibilidades"
	ColumnSymptoms         = "errores_sintomas"
	ColumnTechnicalDetails = "descripcion_tecnica"
	ColumnImagePrefix      = "imagen_"

	imageColumns = 4
)

// product custom fields filled from workbook columns
const (
	fieldCompatibilities = "compatibilidades"
	fieldSymptoms        = "erroresSintomas"
)

// Workbook decodes products from first sheet of Excel workbook with header row.
type Workbook struct {
	brandFacet    string
	categoryFacet string
}

// NewWorkbook returns new Workbook, brands and categories are declared as values of facets with provided names.
func NewWorkbook(brandFacet, categoryFacet string) *Workbook {
	return &Workbook{
		brandFacet:    brandFacet,
		categoryFacet: categoryFacet,
	}
}

// DecodeTaxonomy returns brand and category facets with values used in workbook
// and collection for every category filtered by its facet value.
func (w *Workbook) DecodeTaxonomy(_ context.Context, file io.Reader) (*models.Taxonomy, error) {
	rows, err := readRows(file)
	if err != nil {
		return nil, err
	}

	brands := uniqueColumn(rows, ColumnBrand)
	categories := uniqueColumn(rows, ColumnCategory)

	categoryCode := slug.Slugify(w.categoryFacet)
	collections := lo.Map(categories, func(category string, _ int) models.CollectionNode {
		return models.CollectionNode{
			Name:            category,
			FacetValueCodes: []string{categoryCode + ":" + slug.Slugify(category)},
		}
	})

	return &models.Taxonomy{
		Collections: collections,
		Facets: []models.FacetDefinition{
			facetDefinition(w.brandFacet, brands),
			facetDefinition(w.categoryFacet, categories),
		},
	}, nil
}

// DecodeProducts decodes every data row into product definition and sends it with decoding error into output channel.
// Row of result is row number in sheet.
func (w *Workbook) DecodeProducts(ctx context.Context, file io.Reader, output chan<- models.ParsingResult) error {
	rows, err := readRows(file)
	if err != nil {
		return err
	}

	for ix, row := range rows {
		def, err := toProduct(row)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case output <- models.ParsingResult{Row: ix + 2, Product: def, Error: err}:
		}
	}

	return nil
}

// readRows returns data rows of first sheet as maps keyed by lowercase header.
func readRows(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("can't open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	sheetRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("can't read sheet %q: %w", sheets[0], err)
	}

	if len(sheetRows) == 0 {
		return nil, nil
	}

	headers := lo.Map(sheetRows[0], func(h string, _ int) string {
		return strings.TrimSpace(strings.ToLower(h))
	})

	rows := make([]map[string]string, 0, len(sheetRows)-1)
	for _, sheetRow := range sheetRows[1:] {
		row := make(map[string]string, len(headers))
		for i, value := range sheetRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func toProduct(row map[string]string) (models.ProductDefinition, error) {
	def := models.ProductDefinition{
		SKU:         row[ColumnSKU],
		Name:        row[ColumnName],
		Description: row[ColumnTechnicalDetails],
		Brand:       row[ColumnBrand],
		Category:    row[ColumnCategory],
	}

	for i := 1; i <= imageColumns; i++ {
		if url := row[ColumnImagePrefix+strconv.Itoa(i)]; url != "" {
			def.ImageURLs = append(def.ImageURLs, url)
		}
	}

	customFields := map[string]any{}
	if v := row[ColumnCompatibilities]; v != "" {
		customFields[fieldCompatibilities] = v
	}
	if v := row[ColumnSymptoms]; v != "" {
		customFields[fieldSymptoms] = v
	}
	if len(customFields) > 0 {
		def.CustomFields = customFields
	}

	if err := validate(def); err != nil {
		return def, err
	}

	if v := row[ColumnPrice]; v != "" {
		price, err := parseNumber(v)
		if err != nil {
			return def, fmt.Errorf("%w: %s %q", ErrInvalidValue, ColumnPrice, v)
		}
		def.Price = &price
	}

	if v := row[ColumnStock]; v != "" {
		stock, err := parseStock(v)
		if err != nil {
			return def, fmt.Errorf("%w: %s %q", ErrInvalidValue, ColumnStock, v)
		}
		def.Stock = stock
	}

	return def, nil
}

var (
	errNotFinite      = errors.New("number is not finite")
	errNotWholeNumber = errors.New("number is not whole")
)

// parseNumber parses number with dot or single comma as decimal separator.
func parseNumber(v string) (float64, error) {
	if !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}

	return f, nil
}

// parseStock parses whole, non-negative number of items in stock.
func parseStock(v string) (int, error) {
	f, err := parseNumber(v)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, errNotWholeNumber
	}

	return int(f), nil
}

func uniqueColumn(rows []map[string]string, column string) []string {
	values := lo.FilterMap(rows, func(row map[string]string, _ int) (string, bool) {
		return row[column], row[column] != ""
	})
	return lo.UniqBy(values, strings.ToLower)
}

func facetDefinition(name string, values []string) models.FacetDefinition {
	return models.FacetDefinition{
		Name: name,
		Code: slug.Slugify(name),
		Values: lo.Map(values, func(v string, _ int) models.FacetValueDefinition {
			return models.FacetValueDefinition{Name: v, Code: slug.Slugify(v)}
		}),
	}
}
