package downloadmgr

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Fetcher opens a remote file for reading
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Fetchers maps url schemes to a Fetcher
type Fetchers map[string]Fetcher

// NewFetchers returns fetchers for http and https using client
func NewFetchers(client *http.Client) Fetchers {
	h := &HTTPFetcher{Client: client}
	return Fetchers{"http": h, "https": h}
}

// For returns the fetcher responsible for rawURL
func (f Fetchers) For(rawURL string) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	fetcher, ok := f[u.Scheme]
	if !ok {
		return nil, errors.Wrap(ErrNoFetcher, u.Scheme)
	}
	return fetcher, nil
}

// HTTPFetcher fetches files using http(s)
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch returns the response body. Responses without a 2xx status are returned as TransferError
func (h *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransferError{URL: url, Err: err}
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, &TransferError{URL: url, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, &TransferError{URL: url, StatusCode: res.StatusCode, Err: errors.New(res.Status)}
	}
	return res.Body, nil
}
