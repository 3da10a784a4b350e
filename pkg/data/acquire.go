// Package data makes the raw dataset available locally and loads it into a frame.
package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/config"
	"github.com/kainonergon/NBA-Data-Preprocessing/pkg/errors"
)

// maxRedirects matches net/http's default policy, made explicit.
const maxRedirects = 10

// Fetcher downloads the dataset into a local cache directory.
type Fetcher struct {
	client *http.Client
	log    *zap.Logger
}

// NewFetcher returns a Fetcher using a client that follows redirects.
func NewFetcher(cfg config.SourceConfig, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	client := &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
	return &Fetcher{client: client, log: log}
}

// Acquire returns the path of the cached dataset, downloading it from cfg.URL first when
// the file is absent. The cache directory is created if needed. When the file already
// exists no request is made.
func (f *Fetcher) Acquire(ctx context.Context, cfg config.SourceConfig) (string, error) {
	fullpath := filepath.Join(cfg.Dir, cfg.File)

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeFile, "failed to create data directory "+cfg.Dir)
	}

	if _, err := os.Stat(fullpath); err == nil {
		f.log.Debug("dataset already cached", zap.String("path", fullpath))
		return fullpath, nil
	} else if !os.IsNotExist(err) {
		return "", errors.Wrap(err, errors.ErrorTypeFile, "failed to stat "+fullpath)
	}

	f.log.Info("downloading dataset", zap.String("url", cfg.URL), zap.String("path", fullpath))
	n, err := f.download(ctx, cfg.URL, fullpath)
	if err != nil {
		return "", err
	}
	f.log.Info("dataset downloaded", zap.Int64("bytes", n))

	return fullpath, nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeNetwork, "failed to create request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeNetwork, "failed to fetch dataset")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, errors.Newf(errors.ErrorTypeNetwork, "dataset request returned status %d", resp.StatusCode).
			WithDetail("url", url)
	}

	// A partial body must never become the cached file.
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeFile, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return 0, errors.Wrap(err, errors.ErrorTypeNetwork, "failed to read dataset body")
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeFile, "failed to write "+tmp.Name())
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeFile, "failed to move dataset into place")
	}

	return n, nil
}

// Acquire is a convenience wrapper around NewFetcher(cfg, log).Acquire.
func Acquire(ctx context.Context, cfg config.SourceConfig, log *zap.Logger) (string, error) {
	return NewFetcher(cfg, log).Acquire(ctx, cfg)
}
