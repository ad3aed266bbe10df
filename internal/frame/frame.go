// Package frame defines the raw pixel buffer delivered to triggers and the
// geometric/resampling primitives triggers use to prepare it for analysis.
package frame

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
)

// Frame is an immutable packed-RGB24 sample pulled from the decoder.
type Frame struct {
	Width     int
	Height    int
	Pixels    []byte // len == Width*Height*3
	FrameNum  uint64
	Timestamp float64
}

// New validates the buffer length against the declared geometry and
// constructs a Frame.
func New(width, height int, pixels []byte, frameNum uint64, fps float64) (*Frame, error) {
	want := width * height * 3
	if len(pixels) != want {
		return nil, hterrors.NewFrameGeometryError(
			"buffer has " + itoa(len(pixels)) + " bytes, want " + itoa(want))
	}
	return &Frame{
		Width:     width,
		Height:    height,
		Pixels:    pixels,
		FrameNum:  frameNum,
		Timestamp: float64(frameNum) / fps,
	}, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Image is a packed pixel buffer with an explicit channel count (3 for RGB24,
// 4 for RGBA32). The primitives in this package operate on Image rather than
// Frame directly so they can be reused for both the raw decoder sample and
// the RGBA32 working buffers the triggers build on top of it.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

// RGB24ToRGBA32 expands each 3-byte pixel by appending a fully opaque alpha
// channel.
func RGB24ToRGBA32(img Image) Image {
	n := img.Width * img.Height
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		copy(out[i*4:i*4+3], img.Pixels[i*3:i*3+3])
		out[i*4+3] = 255
	}
	return Image{Width: img.Width, Height: img.Height, Channels: 4, Pixels: out}
}

// RGBA32ToRGB24 drops every fourth (alpha) byte.
func RGBA32ToRGB24(img Image) Image {
	n := img.Width * img.Height
	out := make([]byte, n*3)
	for i := 0; i < n; i++ {
		copy(out[i*3:i*3+3], img.Pixels[i*4:i*4+3])
	}
	return Image{Width: img.Width, Height: img.Height, Channels: 3, Pixels: out}
}

// Crop is a rectangle expressed as percentages of the source image, in
// [0, 100]. It converts to pixel coordinates lazily, at Apply time.
type Crop struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// pixelRect computes (x1, y1, x2, y2) for the given source dimensions.
func (c Crop) pixelRect(w, h int) (x1, y1, x2, y2 int) {
	x1 = int(math.Floor(float64(w) * c.Left / 100))
	y1 = int(math.Floor(float64(h) * c.Top / 100))
	x2 = x1 + int(math.Floor(float64(w)*c.Width/100))
	y2 = y1 + int(math.Floor(float64(h)*c.Height/100))
	return
}

// Apply copies the cropped pixel rectangle into a new Image of size
// (x2-x1, y2-y1).
func (c Crop) Apply(img Image) Image {
	x1, y1, x2, y2 := c.pixelRect(img.Width, img.Height)
	cw, ch := x2-x1, y2-y1

	src := toRGBA(img)
	dst := image.NewRGBA(image.Rect(0, 0, cw, ch))
	xdraw.Draw(dst, dst.Bounds(), src, image.Pt(x1, y1), xdraw.Src)

	return fromRGBA(dst, img.Channels)
}

// toRGBA lifts an Image (3 or 4 channels) into a standard *image.RGBA so the
// geometric operations in this file can be expressed with golang.org/x/image/draw.
func toRGBA(img Image) *image.RGBA {
	if img.Channels == 4 {
		return &image.RGBA{Pix: img.Pixels, Stride: img.Width * 4, Rect: image.Rect(0, 0, img.Width, img.Height)}
	}
	expanded := RGB24ToRGBA32(img)
	return &image.RGBA{Pix: expanded.Pixels, Stride: img.Width * 4, Rect: image.Rect(0, 0, img.Width, img.Height)}
}

// fromRGBA lowers a standard *image.RGBA back into an Image with the
// requested channel count.
func fromRGBA(src *image.RGBA, channels int) Image {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	packed := Image{Width: w, Height: h, Channels: 4, Pixels: src.Pix}
	if channels == 4 {
		return packed
	}
	return RGBA32ToRGB24(packed)
}

// EnsureMinimumSize scales img uniformly, preserving aspect ratio, so that
// min(width, height) >= m. A no-op if the image already satisfies that bound.
func EnsureMinimumSize(img Image, m int) Image {
	minSide := img.Width
	if img.Height < minSide {
		minSide = img.Height
	}
	if minSide >= m {
		return img
	}
	scale := float64(m) / float64(minSide)
	newW := int(math.Round(float64(img.Width) * scale))
	newH := int(math.Round(float64(img.Height) * scale))
	return lanczosResize(img, newW, newH)
}

// EnsureSquare center-crops img to side = min(width, height) if it is not
// already square.
func EnsureSquare(img Image) Image {
	if img.Width == img.Height {
		return img
	}
	side := img.Width
	if img.Height < side {
		side = img.Height
	}
	left := float64(img.Width-side) / 2 / float64(img.Width) * 100
	top := float64(img.Height-side) / 2 / float64(img.Height) * 100
	widthPct := float64(side) / float64(img.Width) * 100
	heightPct := float64(side) / float64(img.Height) * 100
	c := Crop{Left: left, Top: top, Width: widthPct, Height: heightPct}
	return c.Apply(img)
}

// EnsureSize resizes img to exactly (w, h), without preserving aspect ratio,
// if it is not already that size.
func EnsureSize(img Image, w, h int) Image {
	if img.Width == w && img.Height == h {
		return img
	}
	return lanczosResize(img, w, h)
}

// PaddingUniform returns an image of size (W+2p, H+2p) with img centered and
// the new border area filled with color (len(color) == img.Channels).
func PaddingUniform(img Image, p int, color []byte) Image {
	newW, newH := img.Width+2*p, img.Height+2*p

	fill := colorFromBytes(color)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, xdraw.Src)

	src := toRGBA(img)
	destRect := image.Rect(p, p, p+img.Width, p+img.Height)
	xdraw.Draw(dst, destRect, src, image.Point{}, xdraw.Src)

	return fromRGBA(dst, img.Channels)
}

// colorFromBytes interprets color as RGB (3 bytes) or RGBA (4 bytes),
// defaulting to opaque alpha when only 3 bytes are supplied.
func colorFromBytes(c []byte) color.RGBA {
	a := byte(255)
	if len(c) >= 4 {
		a = c[3]
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: a}
}
