package motif

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/stamp-motif-mcp/internal/imaging"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())
	assert.Equal(t, [3]float64{40, 40, 1}, opts.Size)
	assert.Equal(t, 0.49, opts.ClipBottom)
	assert.Equal(t, 0.51, opts.ClipTop)
	assert.Equal(t, [2]int{150, 150}, opts.MaxSize)
	assert.Equal(t, imaging.ChannelAlpha, opts.Channel)

	hm := opts.HeightMapOptions()
	assert.Equal(t, 150, hm.MaxWidth)
	assert.Equal(t, 150, hm.MaxHeight)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"clip inverted", func(o *Options) { o.ClipBottom, o.ClipTop = 0.7, 0.3 }, imaging.ErrClipRange},
		{"clip above one", func(o *Options) { o.ClipTop = 1.5 }, imaging.ErrClipRange},
		{"unknown channel", func(o *Options) { o.Channel = "hue" }, imaging.ErrUnknownChannel},
		{"zero height", func(o *Options) { o.Size[2] = 0 }, ErrInvalidOptions},
		{"negative width", func(o *Options) { o.Size[0] = -1 }, ErrInvalidOptions},
		{"negative max size", func(o *Options) { o.MaxSize[1] = -5 }, ErrInvalidOptions},
		{"negative blur", func(o *Options) { o.BlurRadius = -1 }, ErrInvalidOptions},
		{"offset too large", func(o *Options) { o.HoleOffset = 0.3 }, ErrInvalidOptions},
		{"equal offsets", func(o *Options) { o.HoleOffset = o.OuterOffset }, ErrInvalidOptions},
		{"equal clip", func(o *Options) { o.ClipBottom, o.ClipTop = 0.5, 0.5 }, nil},
		{"empty channel", func(o *Options) { o.Channel = "" }, nil},
		{"unbounded size", func(o *Options) { o.MaxSize = [2]int{0, 0} }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
