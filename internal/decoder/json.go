package decoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
)

const productsKey = "products"

// JSON decodes catalog files in form {"collections": [...], "facets": [...], "products": [...]}.
type JSON struct{}

// DecodeTaxonomy decodes collections and facets of catalog.
func (d JSON) DecodeTaxonomy(_ context.Context, file io.Reader) (*models.Taxonomy, error) {
	var taxonomy models.Taxonomy
	if err := json.NewDecoder(file).Decode(&taxonomy); err != nil {
		return nil, fmt.Errorf("can't decode taxonomy: %w", err)
	}

	return &taxonomy, nil
}

// DecodeProducts decodes products of catalog one by one and sends them with decoding error into output channel.
// Product with mismatched field types or missing sku or name is sent with error, syntax errors stop decoding.
func (d JSON) DecodeProducts(ctx context.Context, file io.Reader, output chan<- models.ParsingResult) error {
	dec := json.NewDecoder(file)

	found, err := seekArray(dec, productsKey)
	if err != nil || !found {
		return err
	}

	for row := 1; dec.More(); row++ {
		var def models.ProductDefinition
		err = dec.Decode(&def)

		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			err = fmt.Errorf("%w: %s", ErrInvalidValue, typeErr.Field)
		case err != nil:
			return fmt.Errorf("can't decode product %d: %w", row, err)
		default:
			err = validate(def)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case output <- models.ParsingResult{Row: row, Product: def, Error: err}:
		}
	}

	return nil
}

// seekArray moves decoder into array under key of top level object.
// Other top level values are skipped.
func seekArray(dec *json.Decoder, key string) (bool, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return false, err
	}

	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return false, fmt.Errorf("can't read catalog key: %w", err)
		}

		if token == key {
			return true, expectDelim(dec, '[')
		}

		var skip json.RawMessage
		if err = dec.Decode(&skip); err != nil {
			return false, fmt.Errorf("can't skip %v: %w", token, err)
		}
	}

	return false, nil
}

func expectDelim(dec *json.Decoder, delim json.Delim) error {
	token, err := dec.Token()
	if err != nil {
		return fmt.Errorf("can't read catalog: %w", err)
	}

	if token != delim {
		return fmt.Errorf("%w: expected %v, got %v", ErrInvalidValue, delim, token)
	}

	return nil
}
