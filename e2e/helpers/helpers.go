package helpers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/platform/storage"
	"github.com/MichalMitros/catalog-seeder/internal/platform/storage/storagetesting"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	contentType = "Content-Type"
	// JPEG is minimal body recognized as jpeg image.
	JPEG = "\xff\xd8\xff\xe0 e2e"
)

// WaitForRunToBeFinished is blocking helper function, returns latest run of source after it is finished.
func WaitForRunToBeFinished(t *testing.T, queryable qrm.Queryable, source string, timeout time.Duration) *models.Run {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "run wasn't finished in time", source)
		case <-time.After(time.Millisecond * 250):
		}

		runs := storagetesting.GetRuns(t, queryable)
		for ix := len(runs) - 1; ix >= 0; ix-- {
			if runs[ix].Source != source {
				continue
			}
			if runs[ix].FinishedAt != nil {
				return &models.Run{
					ID:              int(runs[ix].ID),
					Source:          runs[ix].Source,
					CreatedAt:       runs[ix].CreatedAt,
					FinishedAt:      runs[ix].FinishedAt,
					IsSuccess:       runs[ix].Success,
					StatusMessage:   runs[ix].StatusMessage,
					CreatedProducts: runs[ix].CreatedProducts,
					SkippedProducts: runs[ix].SkippedProducts,
					FailedProducts:  runs[ix].FailedProducts,
				}
			}
			break
		}
	}
}

// GetItems is helper function for getting outcomes of run items ordered by row.
func GetItems(t *testing.T, queryable qrm.Queryable, runID int) []models.ItemOutcome {
	t.Helper()

	dbItems := storagetesting.GetItems(t, queryable, runID)
	items := make([]models.ItemOutcome, 0, len(dbItems))
	for ix := range dbItems {
		items = append(items, storage.ToItem(&dbItems[ix]))
	}

	return items
}

// FileServer serves catalog files and images. Paths of images which are not registered return 404.
type FileServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string]file
}

type file struct {
	contentType string
	body        []byte
}

// NewFileServer starts new FileServer and closes it after test is finished.
func NewFileServer(t *testing.T) *FileServer {
	t.Helper()

	srv := &FileServer{files: map[string]file{}}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		srv.mu.Lock()
		f, ok := srv.files[req.URL.Path]
		srv.mu.Unlock()

		if !ok {
			wrt.WriteHeader(http.StatusNotFound)
			return
		}
		wrt.Header().Set(contentType, f.contentType)
		_, _ = wrt.Write(f.body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// Set serves body under path and returns its url.
func (s *FileServer) Set(path, contentType string, body []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[path] = file{contentType: contentType, body: body}

	return s.URL + path
}

// CatalogToJSON is helper function which encodes catalog file.
func CatalogToJSON(t *testing.T, taxonomy models.Taxonomy, products []models.ProductDefinition) []byte {
	t.Helper()

	data, err := json.Marshal(struct {
		models.Taxonomy
		Products []models.ProductDefinition `json:"products"`
	}{Taxonomy: taxonomy, Products: products})
	require.NoError(t, err, "can't marshal catalog")

	return data
}

// ProductsToWorkbook is helper function which writes products into first sheet of xlsx workbook.
func ProductsToWorkbook(t *testing.T, products []models.ProductDefinition) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows := [][]any{{
		"sku", "categoria", "marca", "precio", "inventario", "nombre_corregido_nuevo",
		"compatibilidades", "errores_sintomas", "descripcion_tecnica",
		"imagen_1", "imagen_2", "imagen_3", "imagen_4",
	}}
	for _, p := range products {
		row := []any{p.SKU, p.Category, p.Brand, "", p.Stock, p.Name, "", "", p.Description}
		if p.Price != nil {
			row[3] = *p.Price
		}
		for ix := range 4 {
			if ix < len(p.ImageURLs) {
				row = append(row, p.ImageURLs[ix])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	for ix, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, ix+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf), "can't write workbook")

	return buf.Bytes()
}
