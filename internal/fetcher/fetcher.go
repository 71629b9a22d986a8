package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

const defaultMaxRedirects = 5

// Source content types accepted by FetchFile.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeGzip        = "application/gzip"
)

// Option is custom configuration of Fetcher.
type Option func(f *Fetcher)

// WithMaxRedirects sets maximal number of redirects followed by Download.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// Fetcher builds http requests and fetches files via http.
type Fetcher struct {
	client       *http.Client
	noRedirect   *http.Client
	userAgent    string
	maxRedirects int
}

// NewFetcher returns new Fetcher.
// Download uses copy of client which doesn't follow redirects by itself.
func NewFetcher(client *http.Client, userAgent string, ops ...Option) *Fetcher {
	noRedirect := *client
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	fet := &Fetcher{
		client:       client,
		noRedirect:   &noRedirect,
		userAgent:    userAgent,
		maxRedirects: defaultMaxRedirects,
	}

	for _, op := range ops {
		op(fet)
	}

	return fet
}

// FetchFile returns ReadCloser with catalog file fetched from provided url or error.
// The caller is responsible for closing returned ReadCloser.
func (f *Fetcher) FetchFile(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := f.newRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", ContentTypeJSON+", "+ContentTypeXLSX+", "+ContentTypeOctetStream)
	req.Header.Add("Accept-Encoding", "gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrStatusNotOK, resp.Status)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case ContentTypeJSON, ContentTypeXLSX, ContentTypeOctetStream:
		return resp.Body, nil
	case ContentTypeGzip:
		return decompressResponse(resp.Body)
	default:
		_ = resp.Body.Close()
		return nil, ErrContentTypeNotSupported
	}
}

// Download returns body of resource under provided url.
// Redirects are followed up to configured limit, Location is resolved against current url.
func (f *Fetcher) Download(ctx context.Context, rawURL string) ([]byte, error) {
	current := rawURL

	for hops := 0; ; hops++ {
		req, err := f.newRequest(ctx, current)
		if err != nil {
			return nil, err
		}

		resp, err := f.noRedirect.Do(req)
		if err != nil {
			return nil, fmt.Errorf("can't get http response: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("can't read response body: %w", err)
			}
			return body, nil
		case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
			http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			_ = resp.Body.Close()

			if hops >= f.maxRedirects {
				return nil, fmt.Errorf("%w: %s", ErrTooManyRedirects, rawURL)
			}

			current, err = resolveLocation(current, resp.Header.Get("Location"))
			if err != nil {
				return nil, err
			}
		default:
			_ = resp.Body.Close()
			return nil, fmt.Errorf("%w: %s", ErrStatusNotOK, resp.Status)
		}
	}
}

func (f *Fetcher) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("User-Agent", f.userAgent)

	return req, nil
}

// resolveLocation returns absolute url of redirect location.
func resolveLocation(current, location string) (string, error) {
	if location == "" {
		return "", ErrMissingLocation
	}

	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("can't parse url: %w", err)
	}

	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("can't parse redirect location: %w", err)
	}

	return base.ResolveReference(ref).String(), nil
}

// decompressResponse returns io.ReadCloser with decompressed http response and error.
func decompressResponse(response io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		_ = response.Close()
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return &decompressedReadCloser{
		compressed:   response,
		decompressed: decompressed,
	}, nil
}

// decompressedReadCloser reads from decompressed Reader, but closes compressed ReadCloser.
type decompressedReadCloser struct {
	compressed   io.ReadCloser
	decompressed io.Reader
}

func (r decompressedReadCloser) Read(p []byte) (n int, err error) {
	return r.decompressed.Read(p)
}

func (r decompressedReadCloser) Close() error {
	return r.compressed.Close()
}
