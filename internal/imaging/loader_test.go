package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImage writes a solid image to a PNG in a per-test directory.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writePNG(t, img)
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motif.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 80, color.NRGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", bounds.Dx(), bounds.Dy())
	}

	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_Load_Errors(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/path/to/motif.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}

	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads must not be cached, Len = %d", cache.Len())
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	a := createTestImage(t, 10, 10, color.NRGBA{0, 255, 0, 255})
	b := createTestImage(t, 10, 10, color.NRGBA{0, 0, 255, 255})

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	cache.Evict(a)
	cache.Evict("/nonexistent/path")
	if cache.Len() != 1 {
		t.Errorf("after Evict: Len = %d, want 1", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: Len = %d, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.NRGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	tests := []struct {
		name        string
		c           color.Color
		translucent bool
		channel     Channel
	}{
		{"opaque", color.NRGBA{255, 128, 64, 255}, false, ChannelLuminance},
		{"translucent", color.NRGBA{0, 0, 0, 128}, true, ChannelAlpha},
		{"transparent", color.NRGBA{0, 0, 0, 0}, true, ChannelAlpha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewImageCache()
			imgPath := createTestImage(t, 20, 15, tt.c)

			info, err := LoadImageInfo(cache, imgPath)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Width != 20 || info.Height != 15 {
				t.Errorf("dimensions: got %dx%d, want 20x15", info.Width, info.Height)
			}
			if info.Format != "png" {
				t.Errorf("Format: got %s, want png", info.Format)
			}
			if info.Translucent != tt.translucent {
				t.Errorf("Translucent: got %v, want %v", info.Translucent, tt.translucent)
			}
			if info.SuggestedChannel != tt.channel {
				t.Errorf("SuggestedChannel: got %s, want %s", info.SuggestedChannel, tt.channel)
			}
			if info.FileSizeBytes <= 0 {
				t.Error("FileSizeBytes should be positive")
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	if _, err := LoadImageInfo(NewImageCache(), "/nonexistent/motif.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}
