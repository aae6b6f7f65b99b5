// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jarcache resolves ROBOT versions to locally cached jar files,
// downloading releases from GitHub on first use.
package jarcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/robotool/internal/httputil"
	"github.com/pdiddy/robotool/pkg/types"
)

const (
	// DefaultVersion is the ROBOT release used when no version is given.
	DefaultVersion = "1.9.8"

	jarName          = "robot.jar"
	metaName         = "robot.jar.yaml"
	defaultUserAgent = "robotool/0.1"
)

// releaseURLTemplate is the GitHub release asset URL for a given
// version. Tests override this to point at a local server.
var releaseURLTemplate = "https://github.com/ontodev/robot/releases/download/v%s/robot.jar"

// Metadata describes a cached jar. It is written as a YAML sidecar next
// to the jar after a successful download.
type Metadata struct {
	Version      string    `json:"version" yaml:"version"`
	SourceURL    string    `json:"source_url" yaml:"source_url"`
	SizeBytes    int64     `json:"size_bytes" yaml:"size_bytes"`
	DownloadedAt time.Time `json:"downloaded_at" yaml:"downloaded_at"`
}

// Cache downloads and caches robot.jar artifacts keyed by version.
// Jars live at <dir>/<version>/robot.jar. The cache is safe for
// concurrent use across goroutines and processes: first-time downloads
// are serialized with a lock file and materialized with a rename, so a
// partially written jar is never visible at the final path.
type Cache struct {
	dir       string
	client    *http.Client
	userAgent string
	retries   int
	log       logrus.FieldLogger
}

// New creates a cache rooted at cfg.Dir. An empty Dir falls back to
// DefaultDir. A nil logger means the logrus standard logger.
func New(cfg types.CacheConfig, log logrus.FieldLogger) (*Cache, error) {
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Cache{
		dir:       dir,
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: userAgent,
		retries:   cfg.MaxRetries,
		log:       log,
	}, nil
}

// DefaultDir returns the cache base directory: ROBOTOOL_CACHE_DIR when
// set, otherwise the platform user cache directory plus "robotool".
func DefaultDir() (string, error) {
	if override := os.Getenv("ROBOTOOL_CACHE_DIR"); override != "" {
		return override, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving user cache directory: %w", err)
	}
	return filepath.Join(base, "robotool"), nil
}

// Path returns the local path of the jar for version, downloading it on
// first use. An empty version selects DefaultVersion. On success the
// file is guaranteed to exist at the returned path.
func (c *Cache) Path(ctx context.Context, version string) (string, error) {
	if version == "" {
		version = DefaultVersion
	}
	jarPath := filepath.Join(c.dir, version, jarName)

	if info, err := os.Stat(jarPath); err == nil && info.Mode().IsRegular() {
		return jarPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(jarPath), 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	lock := flock.New(jarPath + ".lock")
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("locking jar cache: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.log.WithError(err).Warn("releasing jar cache lock")
		}
	}()

	// Another process may have finished the download while we waited.
	if info, err := os.Stat(jarPath); err == nil && info.Mode().IsRegular() {
		return jarPath, nil
	}

	url := fmt.Sprintf(releaseURLTemplate, version)
	c.log.WithFields(logrus.Fields{"version": version, "url": url}).Info("downloading robot jar")

	if err := c.download(ctx, url, jarPath); err != nil {
		return "", fmt.Errorf("downloading robot %s: %w", version, err)
	}
	if err := c.writeMetadata(version, url, jarPath); err != nil {
		c.log.WithError(err).Warn("writing jar metadata")
	}
	return jarPath, nil
}

// download fetches url to destPath through a temporary file in the same
// directory, renamed into place only after a complete write.
func (c *Cache) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.retries)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".robotool-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata records the download provenance next to the jar.
func (c *Cache) writeMetadata(version, url, jarPath string) error {
	info, err := os.Stat(jarPath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(Metadata{
		Version:      version,
		SourceURL:    url,
		SizeBytes:    info.Size(),
		DownloadedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(filepath.Dir(jarPath), metaName), data, 0o644)
}
