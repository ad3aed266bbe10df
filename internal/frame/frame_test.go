package frame

import (
	"bytes"
	"testing"
)

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		pixels  []byte
		wantErr bool
	}{
		{"exact size", 2, 2, make([]byte, 12), false},
		{"short buffer", 2, 2, make([]byte, 11), true},
		{"long buffer", 2, 2, make([]byte, 13), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.width, tt.height, tt.pixels, 5, 2.0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if f.FrameNum != 5 {
					t.Errorf("FrameNum = %d, want 5", f.FrameNum)
				}
				if f.Timestamp != 2.5 {
					t.Errorf("Timestamp = %v, want 2.5", f.Timestamp)
				}
			}
		})
	}
}

func TestRGB24RGBA32RoundTrip(t *testing.T) {
	rgb := Image{Width: 2, Height: 1, Channels: 3, Pixels: []byte{10, 20, 30, 40, 50, 60}}
	rgba := RGB24ToRGBA32(rgb)
	if len(rgba.Pixels) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(rgba.Pixels))
	}
	for i := 0; i < 2; i++ {
		if rgba.Pixels[i*4+3] != 255 {
			t.Errorf("pixel %d alpha = %d, want 255", i, rgba.Pixels[i*4+3])
		}
	}
	back := RGBA32ToRGB24(rgba)
	if !bytes.Equal(back.Pixels, rgb.Pixels) {
		t.Errorf("round trip mismatch: got %v, want %v", back.Pixels, rgb.Pixels)
	}
}

func TestCropIdentity(t *testing.T) {
	img := Image{Width: 4, Height: 4, Channels: 3, Pixels: make([]byte, 4*4*3)}
	for i := range img.Pixels {
		img.Pixels[i] = byte(i)
	}
	c := Crop{Left: 0, Top: 0, Width: 100, Height: 100}
	out := c.Apply(img)
	if out.Width != img.Width || out.Height != img.Height {
		t.Fatalf("identity crop changed dimensions: got %dx%d, want %dx%d", out.Width, out.Height, img.Width, img.Height)
	}
	if !bytes.Equal(out.Pixels, img.Pixels) {
		t.Errorf("identity crop changed pixels")
	}
}

func TestCropSubRegion(t *testing.T) {
	img := Image{Width: 10, Height: 10, Channels: 3, Pixels: make([]byte, 10*10*3)}
	c := Crop{Left: 10, Top: 10, Width: 50, Height: 50}
	out := c.Apply(img)
	if out.Width != 5 || out.Height != 5 {
		t.Errorf("crop size = %dx%d, want 5x5", out.Width, out.Height)
	}
}

func TestEnsureMinimumSize(t *testing.T) {
	img := Image{Width: 10, Height: 20, Channels: 3, Pixels: make([]byte, 10*20*3)}
	out := EnsureMinimumSize(img, 32)

	minSide := out.Width
	if out.Height < minSide {
		minSide = out.Height
	}
	if minSide < 32 {
		t.Fatalf("min side = %d, want >= 32", minSide)
	}

	wantRatio := float64(img.Width) / float64(img.Height)
	gotRatio := float64(out.Width) / float64(out.Height)
	if diff := wantRatio - gotRatio; diff > 0.05 || diff < -0.05 {
		t.Errorf("aspect ratio not preserved: got %v, want %v", gotRatio, wantRatio)
	}
}

func TestEnsureMinimumSizeNoop(t *testing.T) {
	img := Image{Width: 100, Height: 200, Channels: 3, Pixels: make([]byte, 100*200*3)}
	out := EnsureMinimumSize(img, 32)
	if out.Width != img.Width || out.Height != img.Height {
		t.Errorf("should be a no-op when already above minimum")
	}
}

func TestEnsureSquareThenEnsureSize(t *testing.T) {
	img := Image{Width: 40, Height: 20, Channels: 3, Pixels: make([]byte, 40*20*3)}
	square := EnsureSquare(img)
	if square.Width != square.Height {
		t.Fatalf("EnsureSquare produced %dx%d, not square", square.Width, square.Height)
	}

	sized := EnsureSize(square, 224, 224)
	if sized.Width != 224 || sized.Height != 224 {
		t.Errorf("EnsureSize produced %dx%d, want 224x224", sized.Width, sized.Height)
	}
}

func TestPaddingUniform(t *testing.T) {
	img := Image{Width: 2, Height: 2, Channels: 4, Pixels: []byte{
		1, 1, 1, 255, 2, 2, 2, 255,
		3, 3, 3, 255, 4, 4, 4, 255,
	}}
	out := PaddingUniform(img, 1, []byte{255, 255, 255, 255})
	if out.Width != 4 || out.Height != 4 {
		t.Fatalf("padded size = %dx%d, want 4x4", out.Width, out.Height)
	}
	corner := out.Pixels[0:4]
	if !bytes.Equal(corner, []byte{255, 255, 255, 255}) {
		t.Errorf("border pixel = %v, want white", corner)
	}
	centerOff := (1*4 + 1) * 4
	if !bytes.Equal(out.Pixels[centerOff:centerOff+4], []byte{1, 1, 1, 255}) {
		t.Errorf("center pixel not preserved: got %v", out.Pixels[centerOff:centerOff+4])
	}
}
