// Package assets resolves remote icon artwork through a memory tier, a
// persistent store and an HTTP fetcher, in that order.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/logging"
)

const (
	// DefaultBaseURL serves "<prefix>/<name>.svg" for every Iconify set.
	DefaultBaseURL = "https://api.iconify.design"
	// DefaultFetchTimeout bounds one HTTP request.
	DefaultFetchTimeout = 10 * time.Second

	maxAssetBytes = 512 << 10
)

var (
	// ErrNotFound is returned when the server has no artwork for the handle.
	ErrNotFound = errors.New("asset not found")
	// ErrEmptyBody is returned for a successful response without content.
	ErrEmptyBody = errors.New("empty asset response")
	// ErrTooLarge is returned when the body exceeds the size limit.
	ErrTooLarge = errors.New("asset response too large")
)

// Fetcher downloads SVG artwork over HTTP.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// NewFetcher creates a fetcher for baseURL. Empty values pick the defaults.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URL returns the artwork location of prefix/name.
func (f *Fetcher) URL(prefix, name string) string {
	return fmt.Sprintf("%s/%s/%s.svg", f.baseURL, url.PathEscape(prefix), url.PathEscape(name))
}

// Fetch downloads prefix/name.
func (f *Fetcher) Fetch(ctx context.Context, prefix, name string) (entity.Asset, error) {
	log := logging.FromContext(ctx)
	assetURL := f.URL(prefix, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, http.NoBody)
	if err != nil {
		return entity.Asset{}, fmt.Errorf("failed to create asset request: %w", err)
	}
	req.Header.Set("Accept", "image/svg+xml, image/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return entity.Asset{}, fmt.Errorf("failed to fetch %s: %w", assetURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return entity.Asset{}, fmt.Errorf("%w: %s:%s", ErrNotFound, prefix, name)
	case resp.StatusCode != http.StatusOK:
		return entity.Asset{}, fmt.Errorf("fetch %s: unexpected status %d", assetURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return entity.Asset{}, fmt.Errorf("failed to read %s: %w", assetURL, err)
	}
	if len(data) > maxAssetBytes {
		return entity.Asset{}, fmt.Errorf("%w: %s", ErrTooLarge, assetURL)
	}
	// Iconify answers unknown icons with 200 and the literal body "404".
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "404" {
		return entity.Asset{}, fmt.Errorf("%w: %s:%s", ErrEmptyBody, prefix, name)
	}

	mediaType := detectMediaType(resp.Header.Get("Content-Type"), data)
	log.Debug().Str("url", assetURL).Int("bytes", len(data)).Str("type", mediaType).Msg("asset fetched")
	return entity.Asset{MediaType: mediaType, Data: data, URL: assetURL}, nil
}

func detectMediaType(header string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && mt != "" && mt != "application/octet-stream" && mt != "text/plain" {
		return mt
	}
	head := data[:min(len(data), 512)]
	if bytes.Contains(head, []byte("<svg")) {
		return "image/svg+xml"
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}
