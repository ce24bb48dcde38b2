package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// fillImage returns an in-memory NRGBA image of one color.
func fillImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// quadrantImage paints each quadrant a different color: red, green, blue
// and white in reading order.
func quadrantImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.NRGBA{255, 0, 0, 255}
			case y < height/2:
				c = color.NRGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.NRGBA{0, 0, 255, 255}
			default:
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	result, err := EncodePNG(quadrantImage(40, 30))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if result.Width != 40 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if r, g, b, _ := decoded.At(35, 5).RGBA(); r != 0 || g != 0xffff || b != 0 {
		t.Errorf("top-right pixel: got (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}
}

func TestCropRegion(t *testing.T) {
	img := quadrantImage(100, 100)

	cropped, err := CropRegion(img, 50, 0, 100, 50)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}
	b := cropped.Bounds()
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}
	if b.Min != (image.Point{}) {
		t.Errorf("cropped image should start at the origin, got %v", b.Min)
	}
	if r, g, _, _ := cropped.At(10, 10).RGBA(); r != 0 || g != 0xffff {
		t.Errorf("cropped content should be green, got r=%d g=%d", r>>8, g>>8)
	}
}

func TestCropRegion_Invalid(t *testing.T) {
	img := fillImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"negative x1", -1, 0, 50, 50},
		{"x2 beyond width", 0, 0, 101, 50},
		{"y2 beyond height", 0, 0, 50, 101},
		{"x1 == x2", 50, 0, 50, 50},
		{"y1 > y2", 0, 60, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CropRegion(img, tt.x1, tt.y1, tt.x2, tt.y2); err == nil {
				t.Errorf("CropRegion(%d,%d,%d,%d) should fail", tt.x1, tt.y1, tt.x2, tt.y2)
			}
		})
	}
}

func TestNamedRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		name string
		want image.Rectangle
	}{
		{"", image.Rect(0, 0, 100, 80)},
		{"full", image.Rect(0, 0, 100, 80)},
		{"top-left", image.Rect(0, 0, 50, 40)},
		{"top-right", image.Rect(50, 0, 100, 40)},
		{"bottom-left", image.Rect(0, 40, 50, 80)},
		{"bottom-right", image.Rect(50, 40, 100, 80)},
		{"top-half", image.Rect(0, 0, 100, 40)},
		{"bottom-half", image.Rect(0, 40, 100, 80)},
		{"left-half", image.Rect(0, 0, 50, 80)},
		{"right-half", image.Rect(50, 0, 100, 80)},
		{"center", image.Rect(25, 20, 75, 60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(bounds, tt.name)
			if err != nil {
				t.Fatalf("NamedRegion(%q) failed: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("NamedRegion(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNamedRegion_Offset(t *testing.T) {
	got, err := NamedRegion(image.Rect(10, 20, 30, 40), "bottom-right")
	if err != nil {
		t.Fatalf("NamedRegion failed: %v", err)
	}
	if want := image.Rect(20, 30, 30, 40); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNamedRegion_Unknown(t *testing.T) {
	for _, name := range []string{"invalid", "TOP-LEFT", "center-left"} {
		if _, err := NamedRegion(image.Rect(0, 0, 10, 10), name); err == nil {
			t.Errorf("NamedRegion should fail for %q", name)
		}
	}
}
