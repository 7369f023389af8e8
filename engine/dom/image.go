package dom

import (
	"fmt"
	"math"
	"sync"
)

// ImageStatus is the loading status of an image.
type ImageStatus int

// An image is pending until the host either loaded it or failed to do so.
const (
	ImagePending ImageStatus = iota
	ImageLoaded
	ImageFailed
)

func (s ImageStatus) String() string {
	switch s {
	case ImageLoaded:
		return "loaded"
	case ImageFailed:
		return "failed"
	}
	return "pending"
}

// ImageState is the deferred part of an image node. A parse creates images
// in status ImagePending. Resolving an image source is up to the host, which
// then calls either Loaded or Failed. Until then, an image renders as hidden.
//
// ImageState is safe for concurrent use, as hosts will usually resolve images
// in parallel.
type ImageState struct {
	Src        string  // image source, as given in the document
	Scale      float64 // scaling factor for the natural size of the image
	hideErrors func() bool
	mx         sync.RWMutex
	status     ImageStatus
	width      int // scaled
	height     int // scaled
}

// NewImage creates an image node with a pending image state. hideErrors is
// asked when the host reports an error, to decide if a visible error
// placeholder should be shown. It may be nil.
func NewImage(src string, scale float64, hideErrors func() bool) *Node {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &Node{
		Kind: Image,
		Image: &ImageState{
			Src:        src,
			Scale:      scale,
			hideErrors: hideErrors,
		},
	}
}

// Source returns the image source as given in the document.
func (img *ImageState) Source() string {
	return img.Src
}

// Loaded is called by the host when the image has been loaded successfully.
// width and height are the natural dimensions of the image and will be scaled.
func (img *ImageState) Loaded(width, height int) {
	img.mx.Lock()
	defer img.mx.Unlock()
	img.width = int(math.Round(float64(width) * img.Scale))
	img.height = int(math.Round(float64(height) * img.Scale))
	img.status = ImageLoaded
	tracer().Debugf("image %q loaded, size %dx%d", img.Src, img.width, img.height)
}

// Failed is called by the host when the image could not be loaded.
func (img *ImageState) Failed() {
	img.mx.Lock()
	defer img.mx.Unlock()
	img.status = ImageFailed
	tracer().Infof("image %q failed to load", img.Src)
}

// Status returns the loading status of the image.
func (img *ImageState) Status() ImageStatus {
	img.mx.RLock()
	defer img.mx.RUnlock()
	return img.status
}

// Size returns the scaled size of a loaded image.
func (img *ImageState) Size() (width, height int) {
	img.mx.RLock()
	defer img.mx.RUnlock()
	return img.width, img.height
}

// ShowsImage is true if the image has been loaded.
func (img *ImageState) ShowsImage() bool {
	return img.Status() == ImageLoaded
}

// ShowsError is true if loading the image failed and errors are not hidden.
func (img *ImageState) ShowsError() bool {
	if img.Status() != ImageFailed {
		return false
	}
	return img.hideErrors == nil || !img.hideErrors()
}

// ErrorText is the text of the error placeholder.
func (img *ImageState) ErrorText() string {
	return "Error: Unable to load image: " + img.Src
}

func (img *ImageState) String() string {
	return fmt.Sprintf("image(%q, %v, %s)", img.Src, img.Scale, img.Status())
}
