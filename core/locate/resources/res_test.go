package resources

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, dir, name string, w, h int, encode func(*os.File, image.Image) error) string {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	fname := filepath.Join(dir, name)
	f, err := os.Create(fname)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f, img))
	return fname
}

func encodePNG(f *os.File, img image.Image) error { return png.Encode(f, img) }
func encodeBMP(f *os.File, img image.Image) error { return bmp.Encode(f, img) }

func TestResolveLocalImage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	dir := t.TempDir()
	writeImage(t, dir, "dot.png", 7, 3, encodePNG)
	config, err := ResolveImage(context.Background(), "dot.png", dir).Config()
	require.NoError(t, err)
	assert.Equal(t, 7, config.Width)
	assert.Equal(t, 3, config.Height)
	//
	abs := writeImage(t, dir, "dot.bmp", 4, 5, encodeBMP)
	config, err = ResolveImage(context.Background(), "file://"+abs, "").Config()
	require.NoError(t, err)
	assert.Equal(t, 4, config.Width)
}

func TestResolveImageErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	dir := t.TempDir()
	_, err := ResolveImage(context.Background(), "missing.png", dir).Config()
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
	//
	_, err = ResolveImage(context.Background(), "", dir).Config()
	assert.Equal(t, core.EMISSING, core.Code(err))
	//
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.png"), []byte("no image"), 0644))
	_, err = ResolveImage(context.Background(), "notes.png", dir).Config()
	require.Error(t, err)
	assert.Equal(t, core.EDECODE, core.Code(err))
}

type placeholder struct {
	src    string
	mx     sync.Mutex
	width  int
	failed bool
	done   int
}

func (ph *placeholder) Source() string { return ph.src }

func (ph *placeholder) Loaded(w, h int) {
	ph.mx.Lock()
	defer ph.mx.Unlock()
	ph.width = w
	ph.done++
}

func (ph *placeholder) Failed() {
	ph.mx.Lock()
	defer ph.mx.Unlock()
	ph.failed = true
	ph.done++
}

func TestResolveAll(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	dir := t.TempDir()
	writeImage(t, dir, "a.png", 10, 10, encodePNG)
	writeImage(t, dir, "b.png", 20, 10, encodePNG)
	phs := []*placeholder{{src: "a.png"}, {src: "b.png"}, {src: "c.png"}, {src: "a.png"}}
	list := make([]Placeholder, len(phs))
	for i, ph := range phs {
		list[i] = ph
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := ResolveAll(ctx, list, dir, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.png")
	for _, ph := range phs {
		assert.Equal(t, 1, ph.done, ph.src)
	}
	assert.Equal(t, 10, phs[0].width)
	assert.Equal(t, 20, phs[1].width)
	assert.True(t, phs[2].failed)
	assert.False(t, phs[3].failed)
	//
	assert.NoError(t, ResolveAll(ctx, nil, dir, 0))
}
