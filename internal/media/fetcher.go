package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fundhub/crowdfunding/pkg/resilience"
	"github.com/fundhub/crowdfunding/pkg/storage"
)

// Fetcher retrieves campaign image bytes. URL references go over HTTP;
// everything else is treated as an object-storage key. HTTP fetches run
// through a circuit breaker so a misbehaving image host degrades image
// scoring instead of stalling every analysis.
type Fetcher struct {
	client   *http.Client
	store    storage.Storage
	breaker  *resilience.Breaker
	maxBytes int64
}

// NewFetcher creates a media fetcher. store may be nil when the deployment
// serves only absolute image URLs.
func NewFetcher(store storage.Storage, timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		store:  store,
		breaker: resilience.New(
			resilience.BuildSettings("media-fetch", 60, 30, 5, 1),
			resilience.GracefulDegradation("media-fetch"),
		),
		maxBytes: maxBytes,
	}
}

// FetchImage returns the raw bytes for an image reference
func (f *Fetcher) FetchImage(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.fetchHTTP(ctx, ref)
	}
	return f.fetchStorage(ctx, ref)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	result, err := f.breaker.Execute(ctx, func() (interface{}, error) {
		return f.doHTTP(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (f *Fetcher) doHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !storage.IsImageContentType(ct) {
		return nil, fmt.Errorf("unsupported image content type %q", ct)
	}

	return f.readCapped(resp.Body)
}

func (f *Fetcher) fetchStorage(ctx context.Context, key string) ([]byte, error) {
	if f.store == nil {
		return nil, fmt.Errorf("no storage configured for image key %q", key)
	}

	body, err := f.store.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download image %q: %w", key, err)
	}
	defer body.Close()

	return f.readCapped(body)
}

// readCapped reads at most maxBytes and rejects oversized payloads.
func (f *Fetcher) readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", f.maxBytes)
	}
	return data, nil
}
