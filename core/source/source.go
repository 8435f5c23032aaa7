// Package source resolves command-line inputs into local PDF files.
// A local path is used as is; an http(s) URL is downloaded to a
// temporary file.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "TagPipe/1.0 (https://github.com/erik-winther/tagpipe)"
)

// FileResolver resolves inputs to local files.
type FileResolver struct {
	client *http.Client
}

// New creates a FileResolver with a sensible download timeout.
func New() *FileResolver {
	return &FileResolver{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Resolve returns a local path for the given input. Local paths must
// exist; URLs are downloaded to a temporary file that the returned
// cleanup func removes. The cleanup func is never nil.
func (r *FileResolver) Resolve(ctx context.Context, input string) (string, func(), error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return r.download(ctx, input)
	}
	if _, err := os.Stat(input); err != nil {
		return "", noop, fmt.Errorf("input file: %w", err)
	}
	return input, noop, nil
}

func noop() {}

func (r *FileResolver) download(ctx context.Context, url string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", noop, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", noop, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", noop, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp("", "tagpipe-*.pdf")
	if err != nil {
		return "", noop, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", noop, fmt.Errorf("saving download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", noop, fmt.Errorf("saving download: %w", err)
	}

	path := tmp.Name()
	return path, func() { os.Remove(path) }, nil
}
