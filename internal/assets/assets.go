package assets

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/MichalMitros/catalog-seeder/internal/graphql"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Downloader --filename downloader.go
//go:generate mockery --name Uploader --filename uploader.go

// uploadContentType is declared content type of every uploaded file, backend detects real type itself.
const uploadContentType = "image/jpeg"

// Downloader downloads remote files.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Uploader creates assets from files.
type Uploader interface {
	CreateAsset(ctx context.Context, file graphql.File) (*vendure.Asset, error)
}

// Pipeline downloads images and uploads them as assets.
// Failures are logged and never returned.
type Pipeline struct {
	downloader Downloader
	uploader   Uploader
	logger     *zerolog.Logger
}

// NewPipeline returns new Pipeline.
func NewPipeline(downloader Downloader, uploader Uploader, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		downloader: downloader,
		uploader:   uploader,
		logger:     logger,
	}
}

// Upload uploads data as asset and returns its id, or empty string when upload failed.
func (p *Pipeline) Upload(ctx context.Context, data []byte, filename string) string {
	asset, err := p.uploader.CreateAsset(ctx, graphql.File{
		Name:        filename,
		ContentType: uploadContentType,
		Data:        data,
	})
	if err != nil {
		p.logger.Warn().
			Err(err).
			Str("filename", filename).
			Msg("can't upload asset")
		return ""
	}

	return asset.ID
}

// Attach downloads and uploads images from urls and returns ids of created assets in urls order.
// Files are named after base with position suffix.
func (p *Pipeline) Attach(ctx context.Context, urls []string, base string) []string {
	ids := make([]string, 0, len(urls))

	for ix, imageURL := range urls {
		if ctx.Err() != nil {
			break
		}

		data, err := p.downloader.Download(ctx, imageURL)
		if err != nil {
			p.logger.Warn().
				Err(fmt.Errorf("can't download image: %w", err)).
				Str("url", imageURL).
				Msg("image skipped")
			continue
		}

		if id := p.Upload(ctx, data, filename(base, imageURL, ix)); id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

func filename(base, imageURL string, ix int) string {
	var ext string
	if u, err := url.Parse(imageURL); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}

	if ix == 0 {
		return base + ext
	}

	return fmt.Sprintf("%s-%d%s", base, ix+1, ext)
}
