package assets_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/catalog-seeder/internal/assets"
	"github.com/MichalMitros/catalog-seeder/internal/assets/mocks"
	"github.com/MichalMitros/catalog-seeder/internal/graphql"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
	"github.com/go-faker/faker/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	nopLogger = zerolog.Nop()
	imageData = []byte{0xFF, 0xD8, 0xFF}
)

func TestUnitUpload(t *testing.T) {
	filename := faker.Word() + ".jpg"
	wantFile := graphql.File{Name: filename, ContentType: "image/jpeg", Data: imageData}

	tests := map[string]struct {
		asset  *vendure.Asset
		err    error
		wantID string
	}{
		"ok":              {asset: &vendure.Asset{ID: "12", Name: filename}, wantID: "12"},
		"graphql error":   {err: assert.AnError},
		"mime type error": {err: vendure.ErrMimeType},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			uploader := mocks.NewUploader(t)
			uploader.On("CreateAsset", mock.Anything, wantFile).Return(tt.asset, tt.err).Once()

			pipeline := assets.NewPipeline(mocks.NewDownloader(t), uploader, &nopLogger)

			assert.Equal(t, tt.wantID, pipeline.Upload(context.TODO(), imageData, filename), "should return asset id")
		})
	}
}

func TestUnitAttach(t *testing.T) {
	urls := []string{
		"https://img.example.com/a.png?size=big",
		"https://img.example.com/broken.jpg",
		"https://img.example.com/not-image",
		"https://img.example.com/d.jpg",
	}

	downloader := mocks.NewDownloader(t)
	downloader.On("Download", mock.Anything, urls[0]).Return(imageData, nil).Once()
	downloader.On("Download", mock.Anything, urls[1]).Return(nil, assert.AnError).Once()
	downloader.On("Download", mock.Anything, urls[2]).Return([]byte("text"), nil).Once()
	downloader.On("Download", mock.Anything, urls[3]).Return(imageData, nil).Once()

	uploader := mocks.NewUploader(t)
	uploader.On("CreateAsset", mock.Anything, mock.MatchedBy(func(f graphql.File) bool {
		return f.Name == "compresor-c1.png"
	})).Return(&vendure.Asset{ID: "1"}, nil).Once()
	uploader.On("CreateAsset", mock.Anything, mock.MatchedBy(func(f graphql.File) bool {
		return f.Name == "compresor-c1-3.jpg"
	})).Return(nil, vendure.ErrMimeType).Once()
	uploader.On("CreateAsset", mock.Anything, mock.MatchedBy(func(f graphql.File) bool {
		return f.Name == "compresor-c1-4.jpg"
	})).Return(&vendure.Asset{ID: "2"}, nil).Once()

	pipeline := assets.NewPipeline(downloader, uploader, &nopLogger)

	ids := pipeline.Attach(context.TODO(), urls, "compresor-c1")

	assert.Equal(t, []string{"1", "2"}, ids, "should return ids of uploaded assets in order")
}

func TestUnitAttachCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipeline := assets.NewPipeline(mocks.NewDownloader(t), mocks.NewUploader(t), &nopLogger)

	assert.Empty(t, pipeline.Attach(ctx, []string{faker.URL()}, "x"), "shouldn't download anything")
}
