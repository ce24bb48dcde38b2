package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodedImage is a PNG ready to embed in a tool response.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CropRegion cuts the motif area out of a larger image. (x1,y1) is
// inclusive and (x2,y2) exclusive.
func CropRegion(img image.Image, x1, y1, x2, y2 int) (image.Image, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, image.Rect(x1, y1, x2, y2)), nil
}

// NamedRegion resolves a region name to a rectangle inside bounds.
//
// Supported names are "full", "top-left", "top-right", "bottom-left",
// "bottom-right", "top-half", "bottom-half", "left-half", "right-half" and
// "center" (the middle 50% on both axes).
func NamedRegion(bounds image.Rectangle, name string) (image.Rectangle, error) {
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := w/2, h/2

	var r image.Rectangle
	switch name {
	case "", "full":
		r = image.Rect(0, 0, w, h)
	case "top-left":
		r = image.Rect(0, 0, midX, midY)
	case "top-right":
		r = image.Rect(midX, 0, w, midY)
	case "bottom-left":
		r = image.Rect(0, midY, midX, h)
	case "bottom-right":
		r = image.Rect(midX, midY, w, h)
	case "top-half":
		r = image.Rect(0, 0, w, midY)
	case "bottom-half":
		r = image.Rect(0, midY, w, h)
	case "left-half":
		r = image.Rect(0, 0, midX, h)
	case "right-half":
		r = image.Rect(midX, 0, w, h)
	case "center":
		r = image.Rect(w/4, h/4, w-w/4, h-h/4)
	default:
		return image.Rectangle{}, fmt.Errorf("unknown region: %s", name)
	}

	return r.Add(bounds.Min), nil
}
