package resources

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/myrimark/core"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
	"golang.org/x/sync/errgroup"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	imageResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// --- Images ---------------------------------------------------------------

type configPlusErr struct {
	config image.Config
	err    error
}

// ResolveImage locates an image and determines its format and natural size.
// src is either an http(s) URL or a file path, which is interpreted
// relative to baseDir. Remote images are cached locally.
//
// The image data itself is not decoded, only its header.
func ResolveImage(ctx context.Context, src string, baseDir string) ImagePromise {
	ch := make(chan configPlusErr, 1)
	go func(ch chan<- configPlusErr) {
		result := configPlusErr{}
		var local string
		if local, result.err = locateImage(ctx, src, baseDir); result.err == nil {
			result.config, result.err = decodeConfig(local, src)
		}
		ch <- result
		close(ch)
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (image.Config, error) {
			select {
			case <-ctx.Done():
				return image.Config{}, core.WrapError(ctx.Err(), core.ECONNECTION, "image %s not resolved in time", src)
			case r := <-ch:
				return r.config, r.err
			}
		},
	}
}

// ImagePromise is a promise for the header information of an image.
type ImagePromise interface {
	Config() (image.Config, error)
	Await(ctx context.Context) (image.Config, error)
}

type imageLoader struct {
	await func(ctx context.Context) (image.Config, error)
}

// Config blocks until the image is resolved.
func (loader imageLoader) Config() (image.Config, error) {
	return loader.await(context.Background())
}

// Await blocks until the image is resolved or ctx is done.
func (loader imageLoader) Await(ctx context.Context) (image.Config, error) {
	return loader.await(ctx)
}

func locateImage(ctx context.Context, src string, baseDir string) (string, error) {
	if src == "" {
		return "", core.Error(core.EMISSING, "image without source")
	}
	u, err := url.Parse(src)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return cachedDownload(ctx, src, "images")
		case "file":
			src = u.Path
		}
	}
	if !filepath.IsAbs(src) && baseDir != "" {
		src = filepath.Join(baseDir, src)
	}
	if _, err := os.Stat(src); err != nil {
		tracer().Debugf("image %s: %v", src, err)
		return "", NotFound(src, imageResourceType)
	}
	return src, nil
}

func decodeConfig(local string, src string) (image.Config, error) {
	f, err := os.Open(local)
	if err != nil {
		return image.Config{}, NotFound(src, imageResourceType)
	}
	defer f.Close()
	config, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, core.WrapError(err, core.EDECODE, "cannot decode image %s", src)
	}
	tracer().Debugf("image %s is a %s of %dx%d", src, format, config.Width, config.Height)
	return config, nil
}

// --- Placeholders ----------------------------------------------------------

// Placeholder is an image in a document, waiting for the host to report
// whether it could be loaded.
type Placeholder interface {
	Source() string
	Loaded(width, height int)
	Failed()
}

// ResolveAll resolves the images of all placeholders concurrently, with at
// most limit images in flight (no limit if limit <= 0). Every placeholder
// is completed, either as loaded or as failed. The errors of failed images
// are collected in the returned error.
func ResolveAll(ctx context.Context, placeholders []Placeholder, baseDir string, limit int) error {
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	var mx sync.Mutex
	var errs *multierror.Error
	for _, ph := range placeholders {
		ph := ph
		g.Go(func() error {
			config, err := ResolveImage(ctx, ph.Source(), baseDir).Await(ctx)
			if err != nil {
				tracer().Infof("image %s failed: %v", ph.Source(), err)
				ph.Failed()
				mx.Lock()
				errs = multierror.Append(errs, err)
				mx.Unlock()
				return nil
			}
			ph.Loaded(config.Width, config.Height)
			return nil
		})
	}
	_ = g.Wait()
	return errs.ErrorOrNil()
}
