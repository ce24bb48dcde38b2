package motif

import (
	"fmt"

	"github.com/ironsheep/stamp-motif-mcp/internal/imaging"
)

// Default option values.
const (
	DefaultWidth       = 40.0
	DefaultDepth       = 40.0
	DefaultHeight      = 1.0
	DefaultClipBottom  = 0.49
	DefaultClipTop     = 0.51
	DefaultMaxSize     = 150
	DefaultOuterOffset = 0.01
	DefaultHoleOffset  = 0.02
)

// Options configures one motif generation.
type Options struct {
	// Size is the physical motif size: width, depth and height.
	Size [3]float64 `json:"size"`

	// ClipBottom and ClipTop are normalised height thresholds, see
	// imaging.Clip.
	ClipBottom float64 `json:"clip_bottom"`
	ClipTop    float64 `json:"clip_top"`

	// MaxSize caps the sampled grid width and depth in cells.
	MaxSize [2]int `json:"max_size"`

	// Channel is the pixel property read as height.
	Channel imaging.Channel `json:"channel"`

	// BlurRadius smooths the image before sampling when positive.
	BlurRadius float64 `json:"blur_radius"`

	// OuterOffset and HoleOffset inset traced outlines and hole outlines.
	// They must differ so that an outline and a hole touching at a corner
	// never produce the same vertex.
	OuterOffset float64 `json:"outer_offset"`
	HoleOffset  float64 `json:"hole_offset"`
}

// DefaultOptions returns the standard motif settings: a 40x40x1 motif cut
// at mid height from a grid of at most 150x150 cells sampled from alpha.
func DefaultOptions() Options {
	return Options{
		Size:        [3]float64{DefaultWidth, DefaultDepth, DefaultHeight},
		ClipBottom:  DefaultClipBottom,
		ClipTop:     DefaultClipTop,
		MaxSize:     [2]int{DefaultMaxSize, DefaultMaxSize},
		Channel:     imaging.ChannelAlpha,
		OuterOffset: DefaultOuterOffset,
		HoleOffset:  DefaultHoleOffset,
	}
}

// Validate checks the options before any work starts.
func (o Options) Validate() error {
	if err := imaging.ValidateClip(o.ClipBottom, o.ClipTop); err != nil {
		return err
	}
	if _, err := imaging.ParseChannel(string(o.Channel)); err != nil {
		return err
	}
	for i, v := range o.Size {
		if v <= 0 {
			return fmt.Errorf("%w: size[%d] must be positive, got %g", ErrInvalidOptions, i, v)
		}
	}
	for i, v := range o.MaxSize {
		if v < 0 {
			return fmt.Errorf("%w: max_size[%d] must not be negative, got %d", ErrInvalidOptions, i, v)
		}
	}
	if o.BlurRadius < 0 {
		return fmt.Errorf("%w: blur_radius must not be negative", ErrInvalidOptions)
	}
	if o.OuterOffset < 0 || o.OuterOffset >= 0.25 || o.HoleOffset < 0 || o.HoleOffset >= 0.25 {
		return fmt.Errorf("%w: offsets must be within [0, 0.25)", ErrInvalidOptions)
	}
	if o.OuterOffset == o.HoleOffset {
		return fmt.Errorf("%w: outer_offset and hole_offset must differ", ErrInvalidOptions)
	}
	return nil
}

// HeightMapOptions returns the sampling settings derived from o.
func (o Options) HeightMapOptions() imaging.HeightMapOptions {
	return imaging.HeightMapOptions{
		Channel:    o.Channel,
		MaxWidth:   o.MaxSize[0],
		MaxHeight:  o.MaxSize[1],
		BlurRadius: o.BlurRadius,
	}
}
