package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultFetchTimeout  = 15 * time.Second
	defaultMaxFetchBytes = 25 << 20
)

// ErrFetchTooLarge is returned when a remote image exceeds the byte limit.
var ErrFetchTooLarge = errors.New("fetch: response exceeds size limit")

// LocalAssets serves references that point at files the service stores
// itself, such as /generated/... and /uploads/... paths.
type LocalAssets interface {
	KeyFromURL(ref string) (string, bool)
	Read(ctx context.Context, key string) ([]byte, error)
}

// Fetcher downloads image bytes with a bounded timeout and size.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
	local    LocalAssets
}

// FetcherOptions configures NewFetcher. Zero values pick defaults.
type FetcherOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxBytes   int64
	Local      LocalAssets
}

// NewFetcher builds a Fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxFetchBytes
	}
	return &Fetcher{client: client, timeout: timeout, maxBytes: maxBytes, local: opts.Local}
}

// Fetch returns the body behind ref. Root-relative references are read from
// local storage when one is configured; everything else goes over HTTP.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("fetch: empty reference")
	}
	if f.local != nil {
		if key, ok := f.local.KeyFromURL(ref); ok {
			data, err := f.local.Read(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("fetch: local %s: %w", key, err)
			}
			if int64(len(data)) > f.maxBytes {
				return nil, ErrFetchTooLarge
			}
			return data, nil
		}
	}
	lower := strings.ToLower(ref)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return nil, fmt.Errorf("fetch: unsupported reference %q", ref)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: %s returned status %d", ref, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrFetchTooLarge
	}
	return body, nil
}
