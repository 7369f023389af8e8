package resources

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateCache(t *testing.T) string {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)
	t.Setenv("HOME", cache)
	return cache
}

func imageServer(t *testing.T, hits *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if !strings.HasSuffix(r.URL.Path, "/logo.png") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, image.NewGray(image.Rect(0, 0, 12, 8))); err != nil {
			t.Error(err)
		}
	}))
}

func TestCacheDirPath(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"app-key": "myrimark-test",
	})
	defer teardown()
	isolateCache(t)
	//
	cachedir, err := CacheDirPath("images", "sub")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cachedir, filepath.Join("myrimark-test", "images", "sub")), cachedir)
	info, err := os.Stat(cachedir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCacheDownload(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"app-key": "myrimark-test",
	})
	defer teardown()
	isolateCache(t)
	var hits int32
	srv := imageServer(t, &hits)
	defer srv.Close()
	//
	cachedir, err := CacheDirPath("images")
	require.NoError(t, err)
	dest := filepath.Join(cachedir, "logo.png")
	require.NoError(t, DownloadCachedFile(context.Background(), dest, srv.URL+"/img/logo.png"))
	_, err = os.Stat(dest)
	assert.NoError(t, err)
	//
	err = DownloadCachedFile(context.Background(), filepath.Join(cachedir, "x.png"), srv.URL+"/nothing.png")
	require.Error(t, err)
	assert.Equal(t, core.ECONNECTION, core.Code(err))
}

func TestResolveRemoteImage(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"app-key": "myrimark-test",
	})
	defer teardown()
	isolateCache(t)
	var hits int32
	srv := imageServer(t, &hits)
	defer srv.Close()
	//
	src := srv.URL + "/img/logo.png"
	config, err := ResolveImage(context.Background(), src, "").Config()
	require.NoError(t, err)
	assert.Equal(t, 12, config.Width)
	assert.Equal(t, 8, config.Height)
	// second request is served from the cache
	_, err = ResolveImage(context.Background(), src, "").Config()
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	//
	_, err = ResolveImage(context.Background(), srv.URL+"/missing.png", "").Config()
	assert.Equal(t, core.ECONNECTION, core.Code(err))
}

func TestCacheName(t *testing.T) {
	a := cacheName("https://example.org/a/Logo.PNG?size=2")
	assert.True(t, strings.HasSuffix(a, ".png"), a)
	assert.NotEqual(t, a, cacheName("https://example.org/b/Logo.PNG"))
	assert.Equal(t, 40, len(cacheName("https://example.org/")))
}
