package ownhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// StatusError is returned for responses without a 2xx status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code: %d %s from %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Get performs a GET request and returns the body if the status is 2xx
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode}
	}
	return io.ReadAll(res.Body)
}

// GetJSON fetches `url` and decodes the json body into v
func GetJSON(ctx context.Context, client *http.Client, url string, v interface{}) error {
	body, err := Get(ctx, client, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrapf(err, "invalid json from %s", url)
	}
	return nil
}
