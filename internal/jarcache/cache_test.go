// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jarcache

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/robotool/pkg/types"
)

// serveJar points the release URL template at a local server for the
// duration of a test.
func serveJar(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := releaseURLTemplate
	releaseURLTemplate = ts.URL + "/v%s/robot.jar"
	t.Cleanup(func() { releaseURLTemplate = old })

	return ts
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(types.CacheConfig{Dir: t.TempDir()}, quietLogger())
	require.NoError(t, err)
	return c
}

func TestPathDownloadsOnFirstUse(t *testing.T) {
	var calls int32
	serveJar(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1.9.8/robot.jar", r.URL.Path)
		_, _ = w.Write([]byte("jar bytes"))
	}))

	c := newTestCache(t)
	path, err := c.Path(context.Background(), "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))
	assert.Equal(t, filepath.Join(c.dir, DefaultVersion, "robot.jar"), path)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPathReusesCachedJar(t *testing.T) {
	var calls int32
	serveJar(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("jar bytes"))
	}))

	c := newTestCache(t)
	first, err := c.Path(context.Background(), "1.9.8")
	require.NoError(t, err)

	second, err := c.Path(context.Background(), "1.9.8")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call must hit the cache")
}

func TestPathVersionsAreIndependent(t *testing.T) {
	serveJar(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jar for " + r.URL.Path))
	}))

	c := newTestCache(t)
	p198, err := c.Path(context.Background(), "1.9.8")
	require.NoError(t, err)
	p195, err := c.Path(context.Background(), "1.9.5")
	require.NoError(t, err)

	assert.NotEqual(t, p198, p195)
	data, err := os.ReadFile(p195)
	require.NoError(t, err)
	assert.Equal(t, "jar for /v1.9.5/robot.jar", string(data))
}

func TestPathHTTPErrorDoesNotPoisonCache(t *testing.T) {
	serveJar(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	c := newTestCache(t)
	_, err := c.Path(context.Background(), "9.9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	// No jar file may be left behind after a failed download.
	_, statErr := os.Stat(filepath.Join(c.dir, "9.9.9", "robot.jar"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPathWritesMetadataSidecar(t *testing.T) {
	serveJar(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jar bytes"))
	}))

	c := newTestCache(t)
	path, err := c.Path(context.Background(), "1.9.8")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "robot.jar.yaml"))
	require.NoError(t, err)

	var meta Metadata
	require.NoError(t, yaml.Unmarshal(data, &meta))
	assert.Equal(t, "1.9.8", meta.Version)
	assert.Contains(t, meta.SourceURL, "/v1.9.8/robot.jar")
	assert.Equal(t, int64(len("jar bytes")), meta.SizeBytes)
	assert.False(t, meta.DownloadedAt.IsZero())
}

func TestPathConcurrentFirstUse(t *testing.T) {
	var calls int32
	serveJar(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("jar bytes"))
	}))

	c := newTestCache(t)

	const n = 8
	var wg sync.WaitGroup
	paths := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = c.Path(context.Background(), "1.9.8")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, paths[0], paths[i])
	}
	// The lock serializes the first download; later callers see the cache.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))
}

func TestDefaultDirEnvOverride(t *testing.T) {
	t.Setenv("ROBOTOOL_CACHE_DIR", "/tmp/robot-cache-override")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/robot-cache-override", dir)
}
