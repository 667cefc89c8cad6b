package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ytget/cat-gallery/internal/model"
)

// MaxImageBytes bounds a single downloaded image
const MaxImageBytes = 32 << 20

// ErrDecode is returned when the downloaded bytes are not a supported image
var ErrDecode = errors.New("cannot decode image")

// cacheKey identifies one scaled thumbnail
type cacheKey struct {
	ref    model.ImageReference
	height int
}

// Loader downloads images behind gallery references and scales them down to
// a maximum display height. Results are cached per reference and height.
type Loader struct {
	client *http.Client
	mu     sync.Mutex
	cache  map[cacheKey]image.Image
}

// NewLoader creates a loader; a nil client uses http.DefaultClient
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		client: client,
		cache:  make(map[cacheKey]image.Image),
	}
}

// Load returns the image behind ref, no taller than maxHeight pixels.
// A non-positive maxHeight keeps the original size.
func (l *Loader) Load(ctx context.Context, ref model.ImageReference, maxHeight int) (image.Image, error) {
	key := cacheKey{ref: ref, height: maxHeight}
	if img, ok := l.cached(key); ok {
		return img, nil
	}

	full, err := l.download(ctx, ref)
	if err != nil {
		return nil, err
	}

	img := Fit(full, maxHeight)

	l.mu.Lock()
	l.cache[key] = img
	l.mu.Unlock()

	return img, nil
}

// Purge drops cached thumbnails whose reference is not in keep
func (l *Loader) Purge(keep model.GallerySequence) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key := range l.cache {
		if !keep.Contains(key.ref) {
			delete(l.cache, key)
		}
	}
}

// Size returns the number of cached thumbnails
func (l *Loader) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

func (l *Loader) cached(key cacheKey) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.cache[key]
	return img, ok
}

func (l *Loader) download(ctx context.Context, ref model.ImageReference) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build image request for %s: %w", ref, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download %s: unexpected status %s", ref, resp.Status)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, MaxImageBytes), imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("Failed to decode image %s: %v", ref, err)
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, ref, err)
	}
	return img, nil
}

// Fit scales img down so its height does not exceed maxHeight, keeping the
// aspect ratio. Smaller images and non-positive limits are returned as is.
func Fit(img image.Image, maxHeight int) image.Image {
	if maxHeight <= 0 || img.Bounds().Dy() <= maxHeight {
		return img
	}
	return imaging.Resize(img, 0, maxHeight, imaging.Lanczos)
}
