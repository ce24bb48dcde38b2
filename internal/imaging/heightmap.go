package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Channel selects which pixel property becomes the height.
type Channel string

const (
	// ChannelAlpha reads the alpha channel: opaque pixels are high,
	// transparent ones low. This suits motifs drawn on a transparent canvas.
	ChannelAlpha Channel = "alpha"
	// ChannelLuminance reads BT.601 luminance, for opaque scans and photos.
	ChannelLuminance Channel = "luminance"
	// ChannelLightness reads CIE L*, which tracks perceived brightness.
	// Fully transparent pixels read 0.
	ChannelLightness Channel = "lightness"
)

// ParseChannel maps a channel name to a Channel. The empty string selects
// ChannelAlpha.
func ParseChannel(name string) (Channel, error) {
	switch Channel(name) {
	case "", ChannelAlpha:
		return ChannelAlpha, nil
	case ChannelLuminance:
		return ChannelLuminance, nil
	case ChannelLightness:
		return ChannelLightness, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

// HeightMap is a row-major grid of 8-bit heights. Length is the number of
// rows.
type HeightMap struct {
	Width  int     `json:"width"`
	Length int     `json:"length"`
	Data   []uint8 `json:"data"`
}

// At returns the height at (x, y).
func (h *HeightMap) At(x, y int) uint8 {
	return h.Data[y*h.Width+x]
}

// Gray returns the height map as a grayscale image.
func (h *HeightMap) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.Width, h.Length))
	for y := 0; y < h.Length; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+h.Width], h.Data[y*h.Width:(y+1)*h.Width])
	}
	return img
}

// HeightMapOptions controls SampleHeightMap.
type HeightMapOptions struct {
	// Channel is the pixel property to sample. Zero value means alpha.
	Channel Channel
	// MaxWidth and MaxHeight cap each dimension independently. Images
	// larger than the cap are stretched to it, smaller ones are never
	// scaled up. Zero means no cap.
	MaxWidth  int
	MaxHeight int
	// BlurRadius applies a Gaussian blur before sampling when positive.
	BlurRadius float64
}

// SampleHeightMap reduces an image to a HeightMap.
//
// Each axis is clamped to its maximum on its own, so the aspect ratio is
// not preserved when only one axis exceeds its cap. The physical size of
// the motif is applied later, so this only limits the grid resolution.
//
// Parameters:
//   - img: Source image, any color model.
//   - opts: Channel, size caps and blur.
//
// Returns:
//   - *HeightMap: Heights in 0-255, one per sampled pixel.
//   - error: ErrNoContext for an empty image, ErrUnknownChannel for a bad
//     channel.
func SampleHeightMap(img image.Image, opts HeightMapOptions) (*HeightMap, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoContext
	}
	channel, err := ParseChannel(string(opts.Channel))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if opts.MaxWidth > 0 {
		w = min(w, opts.MaxWidth)
	}
	if opts.MaxHeight > 0 {
		h = min(h, opts.MaxHeight)
	}

	var src image.Image = img
	if opts.BlurRadius > 0 {
		src = blur.Gaussian(src, opts.BlurRadius)
	}

	var sized *image.NRGBA
	if w == b.Dx() && h == b.Dy() {
		sized = imaging.Clone(src)
	} else {
		sized = imaging.Resize(src, w, h, imaging.Linear)
	}

	hm := &HeightMap{Width: w, Length: h, Data: make([]uint8, w*h)}
	switch channel {
	case ChannelAlpha:
		for i := range hm.Data {
			hm.Data[i] = sized.Pix[i*4+3]
		}
	case ChannelLuminance:
		gray := imaging.Grayscale(sized)
		for i := range hm.Data {
			hm.Data[i] = gray.Pix[i*4]
		}
	case ChannelLightness:
		for i := range hm.Data {
			p := sized.Pix[i*4 : i*4+4]
			hm.Data[i] = lightness(color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
		}
	}

	return hm, nil
}

// lightness returns CIE L* scaled to 0-255.
func lightness(c color.NRGBA) uint8 {
	if c.A == 0 {
		return 0
	}
	cf, ok := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	if !ok {
		return 0
	}
	l, _, _ := cf.Lab()
	return uint8(min(max(l, 0), 1)*255 + 0.5)
}
