// Package threshold implements the perceptual CIELAB-distance binarization
// filter used by the OCR trigger, ported from the sRGB->XYZ->Lab conversion
// and CIE94-like delta-E formula in the original Rust threshold module.
package threshold

import (
	"math"

	"github.com/hypetrigger-go/hypetrigger/internal/frame"
)

// Filter is a (r, g, b, threshold) tuple defining a perceptual binarization:
// a pixel becomes white iff its distance from (r, g, b) is >= Threshold.
type Filter struct {
	R, G, B   byte
	Threshold float64
}

// lab holds a CIELAB color (D65 white point).
type lab struct {
	L, A, B float64
}

const (
	gammaCutoff    = 0.04045
	cubeRootCutoff = 0.008856
	whiteX         = 0.95047
	whiteY         = 1.00000
	whiteZ         = 1.08883
)

func invGamma(c float64) float64 {
	if c > gammaCutoff {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

func labF(t float64) float64 {
	if t > cubeRootCutoff {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// rgb2lab converts an 8-bit sRGB triple to CIELAB.
func rgb2lab(r, g, b byte) lab {
	rl := invGamma(float64(r) / 255)
	gl := invGamma(float64(g) / 255)
	bl := invGamma(float64(b) / 255)

	x := (rl*0.4124 + gl*0.3576 + bl*0.1805) / whiteX
	y := (rl*0.2126 + gl*0.7152 + bl*0.0722) / whiteY
	z := (rl*0.0193 + gl*0.1192 + bl*0.9505) / whiteZ

	fx, fy, fz := labF(x), labF(y), labF(z)

	return lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// deltaE computes a CIE94-like perceptual distance between two Lab colors
// with kL=kC=kH=1, K1=0.045, K2=0.015.
func deltaE(a, b lab) float64 {
	const k1, k2 = 0.045, 0.015

	dL := a.L - b.L
	c1 := math.Hypot(a.A, a.B)
	c2 := math.Hypot(b.A, b.B)
	dC := c1 - c2
	dA := a.A - b.A
	dB := a.B - b.B
	dHSq := dA*dA + dB*dB - dC*dC
	if dHSq < 0 {
		dHSq = 0
	}
	dH := math.Sqrt(dHSq)

	sc := 1 + k1*c1
	sh := 1 + k2*c1

	return math.Sqrt(dL*dL + (dC/sc)*(dC/sc) + (dH/sh)*(dH/sh))
}

// Apply runs the threshold filter over an RGBA32 image, writing
// 255/255/255/alpha where the perceptual distance from the filter's target
// color meets the threshold, 0/0/0/alpha otherwise. Alpha is preserved.
// Both branches only ever produce pure black or pure white, so a second pass
// leaves the output unchanged only when black lies within Threshold of the
// target color and white does not; for other targets the filter is not
// idempotent (a mid-gray target with Threshold 25 turns the black pixels of
// a first pass white).
func (f Filter) Apply(img frame.Image) frame.Image {
	if img.Channels != 4 {
		img = frame.RGB24ToRGBA32(img)
	}

	target := rgb2lab(f.R, f.G, f.B)
	n := img.Width * img.Height
	out := make([]byte, len(img.Pixels))

	for i := 0; i < n; i++ {
		off := i * 4
		r, g, b, a := img.Pixels[off], img.Pixels[off+1], img.Pixels[off+2], img.Pixels[off+3]
		dist := deltaE(rgb2lab(r, g, b), target)

		var v byte
		if dist >= f.Threshold {
			v = 255
		}
		out[off] = v
		out[off+1] = v
		out[off+2] = v
		out[off+3] = a
	}

	return frame.Image{Width: img.Width, Height: img.Height, Channels: 4, Pixels: out}
}
