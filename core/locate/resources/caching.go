package resources

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/sync/singleflight"
)

// DefaultAppKey names the cache folder if configuration key `app-key` is
// not set.
const DefaultAppKey = "myrimark"

// DownloadCachedFile will download a url to a local file dest (usually located in the
// user's cache directory). The file is written under a temporary name first,
// so that an incomplete download never shows up as dest.
func DownloadCachedFile(ctx context.Context, dest string, rawurl string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "invalid URL: %s", rawurl)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", rawurl)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tracer().Errorf("download of %s not OK: %v", rawurl, resp.Status)
		err = core.Error(core.ECONNECTION, "response: %v", resp.Status)
		return core.WrapError(err, core.ECONNECTION, "cannot download %s: %s", rawurl, resp.Status)
	}
	out, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot create cache file for %s", rawurl)
	}
	defer os.Remove(out.Name())
	if _, err = io.Copy(out, resp.Body); err != nil {
		out.Close()
		return core.WrapError(err, core.ECONNECTION, "download of %s interrupted", rawurl)
	}
	if err = out.Close(); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write cache file for %s", rawurl)
	}
	return os.Rename(out.Name(), dest)
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the global configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(subfolders ...string) (string, error) {
	appkey := gconf.GetString("app-key")
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	if appkey == "" {
		appkey = DefaultAppKey
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user cache directory not set")
	}
	subs := path.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Debugf("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", core.WrapError(err, core.EINTERNAL, "cannot create cache directory %s", cachedir)
		}
	}
	return cachedir, nil
}

var downloads singleflight.Group

// cachedDownload returns the path of a local copy of a remote resource,
// downloading it if it is not cached yet. Concurrent requests for the same
// URL share a single download.
func cachedDownload(ctx context.Context, rawurl string, subfolder string) (string, error) {
	dir, err := CacheDirPath(subfolder)
	if err != nil {
		return "", err
	}
	local := filepath.Join(dir, cacheName(rawurl))
	if _, err := os.Stat(local); err == nil {
		tracer().Debugf("%s found in cache", rawurl)
		return local, nil
	}
	_, err, shared := downloads.Do(local, func() (interface{}, error) {
		tracer().Infof("downloading %s", rawurl)
		return nil, DownloadCachedFile(ctx, local, rawurl)
	})
	if shared {
		tracer().Debugf("download of %s was shared", rawurl)
	}
	return local, err
}

// cacheName derives a file name from a URL, keeping the extension.
func cacheName(rawurl string) string {
	sum := sha1.Sum([]byte(rawurl))
	name := hex.EncodeToString(sum[:])
	if u, err := url.Parse(rawurl); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 6 {
			name += strings.ToLower(ext)
		}
	}
	return name
}
