// Package download fetches installer binaries over HTTP and verifies them
// against Mozilla's signed checksum manifests.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ProgressFunc is called during a transfer with the bytes completed so far
// and the total size (-1 when the server does not report a length).
type ProgressFunc func(done, total int64)

// Downloader streams files to disk.
type Downloader struct {
	client   *http.Client
	progress ProgressFunc
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) Option {
	return func(d *Downloader) {
		if client != nil {
			d.client = client
		}
	}
}

// WithProgress sets a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Downloader) {
		d.progress = fn
	}
}

// New creates a Downloader. Installers run to hundreds of megabytes, so the
// default client carries a generous timeout.
func New(opts ...Option) *Downloader {
	d := &Downloader{
		client: &http.Client{Timeout: 30 * time.Minute},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch downloads url into dst. The transfer goes through a temp file in the
// destination directory and is renamed into place only on success, so a
// failed download never leaves a partial installer behind.
func (d *Downloader) Fetch(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	var reader io.Reader = resp.Body
	if d.progress != nil {
		reader = &progressReader{r: resp.Body, total: resp.ContentLength, fn: d.progress}
	}

	if _, err := io.Copy(tmp, reader); err != nil {
		return fmt.Errorf("write download: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close download: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}

	return nil
}

// progressReader counts bytes as they pass through and reports them to fn.
type progressReader struct {
	r     io.Reader
	done  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		p.fn(p.done, p.total)
	}
	return n, err
}
