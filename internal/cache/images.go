// Package cache loads strip thumbnails in the background and keeps them on
// disk and in memory.
package cache

import (
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// maxConcurrent bounds parallel loads.
const maxConcurrent = 6

// ImageCache provides disk + memory caching for thumbnails. Remote images
// are kept on disk as downloaded; the memory copy is downscaled so its
// longest side is at most maxSide.
type ImageCache struct {
	cacheDir string
	maxSide  int

	memory  sync.Map // url -> image.Image
	loading sync.Map // url -> *loadEntry (in-flight dedup with waiters)
	failed  sync.Map // url -> error
	sem     chan struct{}

	mu          sync.RWMutex
	headerName  string
	headerValue string
}

// loadEntry tracks in-flight downloads and their waiters.
type loadEntry struct {
	mu        sync.Mutex
	callbacks []func(image.Image)
	done      bool
	img       image.Image
}

// finish records the result and returns the waiters to notify.
func (e *loadEntry) finish(img image.Image) []func(image.Image) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.done = true
	e.img = img
	cbs := e.callbacks
	e.callbacks = nil
	return cbs
}

// NewImageCache creates a new image cache with the given disk directory.
// maxSide <= 0 keeps images at full size.
func NewImageCache(cacheDir string, maxSide int) (*ImageCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}
	return &ImageCache{
		cacheDir: cacheDir,
		maxSide:  maxSide,
		sem:      make(chan struct{}, maxConcurrent),
	}, nil
}

// SetHeader adds a header to every remote request, e.g. a server token.
func (ic *ImageCache) SetHeader(name, value string) {
	ic.mu.Lock()
	ic.headerName, ic.headerValue = name, value
	ic.mu.Unlock()
}

// Get returns a cached image if available, or nil.
func (ic *ImageCache) Get(url string) image.Image {
	if v, ok := ic.memory.Load(url); ok {
		return v.(image.Image)
	}
	return nil
}

// Failed reports the error of the last failed load of url, if any. Failed
// URLs are not retried until ClearFailed.
func (ic *ImageCache) Failed(url string) error {
	if v, ok := ic.failed.Load(url); ok {
		return v.(error)
	}
	return nil
}

// LoadAsync starts loading an image from url in the background.
// The callback is called with the image when ready (may be called from a goroutine).
func (ic *ImageCache) LoadAsync(url string, callback func(image.Image)) {
	if v, ok := ic.memory.Load(url); ok {
		callback(v.(image.Image))
		return
	}
	if _, ok := ic.failed.Load(url); ok {
		return
	}

	entry := &loadEntry{}
	entry.callbacks = append(entry.callbacks, callback)

	if existing, loaded := ic.loading.LoadOrStore(url, entry); loaded {
		existingEntry := existing.(*loadEntry)
		existingEntry.mu.Lock()
		if existingEntry.done {
			img := existingEntry.img
			existingEntry.mu.Unlock()
			if img != nil {
				callback(img)
			}
			return
		}
		existingEntry.callbacks = append(existingEntry.callbacks, callback)
		existingEntry.mu.Unlock()
		return
	}

	go func() {
		defer ic.loading.Delete(url)

		ic.sem <- struct{}{}
		defer func() { <-ic.sem }()

		img, err := ic.loadImage(url)
		if err != nil {
			log.Printf("Failed to load image %s: %v", url, err)
			ic.failed.Store(url, err)
			entry.finish(nil)
			return
		}
		img = downscale(img, ic.maxSide)
		ic.memory.Store(url, img)

		for _, cb := range entry.finish(img) {
			cb(img)
		}
	}()
}

// Load fetches and decodes url synchronously, through the disk cache.
func (ic *ImageCache) Load(url string) (image.Image, error) {
	img, err := ic.loadImage(url)
	if err != nil {
		return nil, err
	}
	return downscale(img, ic.maxSide), nil
}

func (ic *ImageCache) loadImage(uri string) (image.Image, error) {
	if path, ok := localPath(uri); ok {
		return decodeFile(path)
	}

	diskPath := ic.diskPath(uri)
	if img, err := decodeFile(diskPath); err == nil {
		return img, nil
	} else if !os.IsNotExist(err) {
		// Corrupt cache file, remove and re-download
		os.Remove(diskPath)
	}

	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	ic.mu.RLock()
	if ic.headerName != "" {
		req.Header.Set(ic.headerName, ic.headerValue)
	}
	ic.mu.RUnlock()

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(diskPath)
	if err != nil {
		return nil, err
	}

	// Tee to disk while decoding, then drain so the file is complete
	tee := io.TeeReader(resp.Body, f)
	img, _, err := image.Decode(tee)
	if err == nil {
		_, err = io.Copy(io.Discard, tee)
	}
	f.Close()
	if err != nil {
		os.Remove(diskPath)
		return nil, err
	}

	return img, nil
}

// localPath maps file:// URIs and plain paths to a filesystem path.
func localPath(uri string) (string, bool) {
	if strings.HasPrefix(uri, "file://") {
		u, err := url.Parse(uri)
		if err != nil {
			return "", false
		}
		return u.Path, true
	}
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return "", false
	}
	return uri, true
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// downscale shrinks img so its longest side is at most maxSide, keeping the
// aspect ratio. Smaller images are returned as is.
func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || w == 0 || h == 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	scaledW, scaledH := maxSide, maxSide
	if w > h {
		scaledH = max(1, h*maxSide/w)
	} else {
		scaledW = max(1, w*maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func (ic *ImageCache) diskPath(url string) string {
	h := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", h[:16])
	return filepath.Join(ic.cacheDir, name[:2], name)
}

// Forget drops url from memory. A later load reads it back from disk.
func (ic *ImageCache) Forget(url string) {
	ic.memory.Delete(url)
}

// ClearFailed forgets failed loads so they are attempted again.
func (ic *ImageCache) ClearFailed() {
	ic.failed.Clear()
}
