package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/catalog-seeder/internal/app"
	"github.com/MichalMitros/catalog-seeder/internal/platform/config"
	"github.com/MichalMitros/catalog-seeder/internal/vendure/venduretesting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitNewLogger(t *testing.T) {
	tests := map[string]struct {
		level string
		want  zerolog.Level
	}{
		"debug":   {level: "debug", want: zerolog.DebugLevel},
		"warn":    {level: "warn", want: zerolog.WarnLevel},
		"empty":   {level: "", want: zerolog.InfoLevel},
		"unknown": {level: "loud", want: zerolog.InfoLevel},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			logger := app.NewLogger(&bytes.Buffer{}, tt.level)

			assert.Equal(t, tt.want, logger.GetLevel(), "should set log level")
		})
	}
}

func TestUnitNew(t *testing.T) {
	srv := venduretesting.NewServer(t)
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products": [{"sku": "A-1", "name": "Bomba"}]}`), 0o600))

	cfg := &config.Config{
		AdminAPI: config.AdminAPI{
			URL:          srv.Endpoint(),
			Username:     venduretesting.Username,
			Password:     venduretesting.Password,
			LanguageCode: "es",
		},
		Catalog: config.Catalog{BrandFacet: "Marca", CategoryFacet: "Categoría", MaxRedirects: 5},
	}
	logger := zerolog.Nop()

	application, err := app.New(context.TODO(), cfg, &logger)
	require.NoError(t, err, "shouldn't return any error")
	t.Cleanup(func() { assert.NoError(t, application.Close(), "shouldn't return close error") })

	run, err := application.Importer.Import(context.TODO(), path)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, int32(1), *run.CreatedProducts, "should seed product through wired importer")
	assert.Len(t, srv.Products(), 1, "should create product in Admin API")
}
