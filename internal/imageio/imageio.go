package imageio

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	// Register decoders for formats that imaging does not pull in itself.
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when a path's extension does not map to an
// encodable image format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultJPEGQuality matches the quality the session uses when none is given.
const DefaultJPEGQuality = 95

// encodable maps file extensions to the formats Save can write.
// WebP is decode-only: there is no encoder in the Go ecosystem we depend on.
var encodable = map[string]imaging.Format{
	".png":  imaging.PNG,
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".gif":  imaging.GIF,
	".bmp":  imaging.BMP,
	".tif":  imaging.TIFF,
	".tiff": imaging.TIFF,
}

// Load reads and decodes the image at path.
//
// Supported formats: PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG orientation
// metadata is applied so the decoded pixels match what a viewer shows.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return img, nil
}

// SaveOptions controls encoding parameters for Save and ExportAll.
type SaveOptions struct {
	// JPEGQuality is the quality used for JPEG output, 1-100.
	// Zero means DefaultJPEGQuality.
	JPEGQuality int
}

// Save encodes img to path, choosing the format from the file extension.
// Unknown extensions fail with ErrUnsupportedFormat; encoding or I/O failures
// are wrapped and returned. The file is not created on format errors.
func Save(img image.Image, path string, opts SaveOptions) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := encodable[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// ExportAll writes img into dir once per export format, named base.<ext>.
// It returns the paths written. Formats exported: PNG, JPEG and TIFF.
func ExportAll(img image.Image, dir, base string, opts SaveOptions) ([]string, error) {
	exts := []string{".png", ".jpg", ".tiff"}
	paths := make([]string, 0, len(exts))

	for _, ext := range exts {
		path := filepath.Join(dir, base+ext)
		if err := Save(img, path, opts); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Info contains metadata about an image file.
type Info struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"`
	HasAlpha      bool   `json:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// Stat loads an image through the cache and returns its metadata.
// The format is determined by file extension, not file contents.
func Stat(cache *Cache, path string) (*Info, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".tif", ".tiff":
		format = "tiff"
	case ".webp":
		format = "webp"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &Info{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// Cache caches decoded images by path so inspection tools that address images
// by file path do not re-read the disk on every call.
//
// Cache is safe for concurrent use. Entries stay until Evict or Clear.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty image cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, reading and decoding it on a miss.
// The exact path string is the cache key.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a single entry. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}
