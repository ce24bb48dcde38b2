// Package imaging turns motif source images into binary grids.
//
// A motif image is loaded (ImageCache), optionally cropped to the motif area
// (CropRegion, NamedRegion), reduced to a HeightMap by sampling one pixel
// channel (SampleHeightMap) and finally thresholded into a blockmap.Grid
// (Clip).
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. For regions, (x1,y1) is
// inclusive and (x2,y2) exclusive. Height map cells keep the same
// orientation, so grid cell (x, y) is pixel (x, y) of the sampled image.
//
// # Height Channels
//
//   - alpha: the default. Opaque pixels are high, transparent pixels low.
//   - luminance: ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
//   - lightness: CIE L*, scaled to 0-255.
//
// # Clip Thresholds
//
// Heights are normalised to [0,1] and compared against clipBottom and
// clipTop, where 0 <= clipBottom <= clipTop <= 1. Values below clipBottom
// become background and everything else foreground. An invalid pair is
// rejected with ErrClipRange before any cell is computed.
//
// HeightLevels groups the height histogram into bands and, when the
// heights split into two populations, suggests a single cut (Otsu) that
// can be used for both thresholds.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless
// and never modify their input images.
package imaging
