package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// cachedImage is a decoded image with the format image.Decode reported.
type cachedImage struct {
	img    image.Image
	format string
}

// ImageCache keeps decoded motif sources keyed by path, so that repeated
// tool calls with different clip settings do not re-read the file.
//
// ImageCache is safe for concurrent use. Entries stay until Evict or Clear.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/motif.png")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the image at path, decoding it on first use.
//
// Parameters:
//   - path: File path of a PNG, JPEG or GIF image. The exact string is the
//     cache key.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: Non-nil if the file cannot be opened or decoded.
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	entry := cachedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()

	return entry, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict drops the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a motif source and which height channel fits it.
type ImageInfo struct {
	// Width and Height are the source dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg" or "gif".
	Format string `json:"format"`

	// Translucent is true when at least one pixel is not fully opaque.
	Translucent bool `json:"translucent"`

	// SuggestedChannel is alpha for translucent images and luminance for
	// fully opaque ones, whose alpha channel carries no shape.
	SuggestedChannel Channel `json:"suggested_channel"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	translucent := hasTranslucency(entry.img)
	channel := ChannelLuminance
	if translucent {
		channel = ChannelAlpha
	}

	bounds := entry.img.Bounds()
	return &ImageInfo{
		Width:            bounds.Dx(),
		Height:           bounds.Dy(),
		Format:           entry.format,
		Translucent:      translucent,
		SuggestedChannel: channel,
		FileSizeBytes:    stat.Size(),
	}, nil
}

func hasTranslucency(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
