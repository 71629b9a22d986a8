package decoder

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
)

// Supported source file extensions.
const (
	ExtJSON = ".json"
	ExtXLSX = ".xlsx"
)

// Extension returns lowercase extension of local path or url of source file.
// It returns ErrUnsupportedFormat when there is no decoder for it.
func Extension(source string) (string, error) {
	name := source
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
		name = u.Path
	}

	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ExtJSON, ExtXLSX:
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, source)
	}
}

// validate checks required fields of decoded product definition.
func validate(def models.ProductDefinition) error {
	switch {
	case strings.TrimSpace(def.SKU) == "":
		return fmt.Errorf("%w: sku", ErrMissingField)
	case strings.TrimSpace(def.Name) == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	default:
		return nil
	}
}
