package threshold

import (
	"bytes"
	"testing"

	"github.com/hypetrigger-go/hypetrigger/internal/frame"
)

func TestApplyBlackAndWhite(t *testing.T) {
	img := frame.Image{
		Width: 2, Height: 1, Channels: 4,
		Pixels: []byte{
			0, 0, 0, 255, // black, far from white target
			255, 255, 255, 255, // white, matches white target
		},
	}
	f := Filter{R: 255, G: 255, B: 255, Threshold: 10}
	out := f.Apply(img)

	black := out.Pixels[0:4]
	white := out.Pixels[4:8]

	if !bytes.Equal(black, []byte{255, 255, 255, 255}) {
		t.Errorf("far pixel = %v, want white", black)
	}
	if !bytes.Equal(white, []byte{0, 0, 0, 255}) {
		t.Errorf("matching pixel = %v, want black", white)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	img := frame.Image{
		Width: 3, Height: 1, Channels: 4,
		Pixels: []byte{
			10, 200, 30, 255,
			128, 128, 128, 200,
			250, 10, 10, 255,
		},
	}
	f := Filter{R: 100, G: 100, B: 100, Threshold: 25}

	once := f.Apply(img)
	twice := f.Apply(once)

	if !bytes.Equal(once.Pixels, twice.Pixels) {
		t.Errorf("threshold filter not idempotent: once=%v twice=%v", once.Pixels, twice.Pixels)
	}
}

func TestApplyPreservesAlpha(t *testing.T) {
	img := frame.Image{
		Width: 1, Height: 1, Channels: 4,
		Pixels: []byte{5, 5, 5, 77},
	}
	f := Filter{R: 0, G: 0, B: 0, Threshold: 50}
	out := f.Apply(img)
	if out.Pixels[3] != 77 {
		t.Errorf("alpha = %d, want 77", out.Pixels[3])
	}
}
