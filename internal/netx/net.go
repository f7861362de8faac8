// Package netx contains small HTTP helpers shared by client components.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// FetchURL downloads the resource at url and returns its raw bytes. Used to
// resolve http(s) image URIs before upload.
func FetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch failed: %s; body: %s", resp.Status, string(b))
	}

	return io.ReadAll(resp.Body)
}
