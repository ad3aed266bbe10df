package ocr

import (
	"testing"

	"github.com/hypetrigger-go/hypetrigger/internal/frame"
)

// fakeEngine lets tests exercise Trigger.OnFrame without a real Tesseract
// installation.
type fakeEngine struct {
	text          string
	gotWidth      int
	gotHeight     int
	gotChannels   int
	gotStride     int
	gotResolution int
	closed        bool
}

func (f *fakeEngine) SetFrame(pixels []byte, width, height, channels, stride int) error {
	f.gotWidth, f.gotHeight, f.gotChannels, f.gotStride = width, height, channels, stride
	return nil
}

func (f *fakeEngine) SetSourceResolution(dpi int) { f.gotResolution = dpi }

func (f *fakeEngine) GetText() (string, error) { return f.text, nil }

func (f *fakeEngine) Close() error { f.closed = true; return nil }

func newTestTrigger(fe *fakeEngine, opts ...Option) *Trigger {
	t := &Trigger{handle: &handle{engine: fe}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func TestOnFrameInvokesCallbackWithText(t *testing.T) {
	fe := &fakeEngine{text: "42"}
	var got Result
	trig := newTestTrigger(fe, WithCallback(func(r Result) { got = r }))

	f := &frame.Frame{
		Width: 64, Height: 64,
		Pixels:    make([]byte, 64*64*3),
		FrameNum:  7,
		Timestamp: 3.5,
	}
	if err := trig.OnFrame(f); err != nil {
		t.Fatalf("OnFrame returned error: %v", err)
	}
	if got.Text != "42" {
		t.Errorf("callback text = %q, want %q", got.Text, "42")
	}
	if got.FrameNum != 7 || got.Timestamp != 3.5 {
		t.Errorf("callback metadata = %+v", got)
	}
	if fe.gotResolution != 96 {
		t.Errorf("resolution = %d, want 96", fe.gotResolution)
	}
	if fe.gotChannels != 4 {
		t.Errorf("channels = %d, want 4", fe.gotChannels)
	}
	if fe.gotStride != fe.gotWidth*4 {
		t.Errorf("stride = %d, want %d", fe.gotStride, fe.gotWidth*4)
	}
}

func TestOnFrameEnforcesMinimumSize(t *testing.T) {
	fe := &fakeEngine{}
	trig := newTestTrigger(fe)

	f := &frame.Frame{Width: 8, Height: 8, Pixels: make([]byte, 8*8*3)}
	if err := trig.OnFrame(f); err != nil {
		t.Fatalf("OnFrame returned error: %v", err)
	}

	withoutPadding := fe.gotWidth - 2*ocrPaddingPixels
	if withoutPadding < minTesseractImageSize {
		t.Errorf("preprocessed side (sans padding) = %d, want >= %d", withoutPadding, minTesseractImageSize)
	}
}

func TestOnFrameAppliesCrop(t *testing.T) {
	fe := &fakeEngine{}
	trig := newTestTrigger(fe, WithCrop(frame.Crop{Left: 0, Top: 0, Width: 50, Height: 50}))

	f := &frame.Frame{Width: 100, Height: 100, Pixels: make([]byte, 100*100*3)}
	if err := trig.OnFrame(f); err != nil {
		t.Fatalf("OnFrame returned error: %v", err)
	}

	withoutPadding := fe.gotWidth - 2*ocrPaddingPixels
	if withoutPadding != 50 {
		t.Errorf("preprocessed width (sans padding) = %d, want 50", withoutPadding)
	}
}
