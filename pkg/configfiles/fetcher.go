package configfiles

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds a single remote refresh.
const DefaultFetchTimeout = 10 * time.Second

// MaxDocumentSize is the maximum allowed size for a document (10MB), local or
// fetched. Larger documents are rejected rather than read unbounded.
const MaxDocumentSize = 10 * 1024 * 1024

// Fetcher retrieves remote bytes for auto-updating documents. A nil Fetcher
// on a Group disables remote refresh entirely.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is a Fetcher backed by net/http.
type HTTPFetcher struct {
	// Client is the HTTP client to use. If nil, a client with
	// DefaultFetchTimeout is used.
	Client *http.Client
}

// Fetch implements [Fetcher]. Errors are reported as *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if len(data) > MaxDocumentSize {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("document too large: %d bytes (max %d)", len(data), MaxDocumentSize)}
	}

	return data, nil
}
