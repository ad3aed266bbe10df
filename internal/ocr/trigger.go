package ocr

import (
	"os"
	"path/filepath"

	"github.com/hypetrigger-go/hypetrigger/internal/frame"
	"github.com/hypetrigger-go/hypetrigger/internal/threshold"
)

// minTesseractImageSize is the minimum side length fed to the engine, per
// the preprocessing chain in the original tesseract.rs runner.
const minTesseractImageSize = 32

const ocrPaddingPixels = 32

var ocrPaddingColor = []byte{255, 255, 255, 255}

// Result is delivered to a Trigger's callback after each successful
// recognition.
type Result struct {
	Text      string
	Timestamp float64
	FrameNum  uint64
}

// Trigger runs Tesseract OCR over each frame, after an optional crop and
// perceptual threshold filter.
type Trigger struct {
	Crop     *frame.Crop
	Filter   *threshold.Filter
	Callback func(Result)

	handle *handle
}

// Option configures a Trigger at construction time.
type Option func(*Trigger)

// WithCrop restricts recognition to a sub-region of each frame.
func WithCrop(c frame.Crop) Option {
	return func(t *Trigger) { t.Crop = &c }
}

// WithFilter applies a perceptual threshold filter before recognition.
func WithFilter(f threshold.Filter) Option {
	return func(t *Trigger) { t.Filter = &f }
}

// WithCallback registers a callback invoked once per recognized frame.
func WithCallback(cb func(Result)) Option {
	return func(t *Trigger) { t.Callback = cb }
}

// Config controls engine initialization. Defaults: datapath = the directory
// containing the running executable, language = "eng".
type Config struct {
	Datapath string
	Language string
}

// DefaultConfig returns the Config defaults described in §4.7.
func DefaultConfig() Config {
	datapath := "."
	if exe, err := os.Executable(); err == nil {
		datapath = filepath.Dir(exe)
	}
	return Config{Datapath: datapath, Language: "eng"}
}

// New constructs an OCR Trigger. It provisions language data over HTTPS if
// absent, then constructs and stores the engine handle.
func New(cfg Config, opts ...Option) (*Trigger, error) {
	if cfg.Datapath == "" || cfg.Language == "" {
		d := DefaultConfig()
		if cfg.Datapath == "" {
			cfg.Datapath = d.Datapath
		}
		if cfg.Language == "" {
			cfg.Language = d.Language
		}
	}

	if err := ensureLanguageData(cfg.Datapath, cfg.Language); err != nil {
		return nil, err
	}

	eng, err := newGosseractEngine(cfg.Datapath, cfg.Language)
	if err != nil {
		return nil, err
	}

	t := &Trigger{handle: &handle{engine: eng}}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Close releases the underlying engine handle.
func (t *Trigger) Close() error {
	return t.handle.withEngine(func(e engine) error {
		return e.Close()
	})
}

// OnFrame implements trigger.Trigger: preprocess per §4.7, recognize text,
// and invoke the callback if one is registered.
func (t *Trigger) OnFrame(f *frame.Frame) error {
	img := frame.Image{Width: f.Width, Height: f.Height, Channels: 3, Pixels: f.Pixels}
	rgba := frame.RGB24ToRGBA32(img)

	if t.Crop != nil {
		rgba = t.Crop.Apply(rgba)
	}
	rgba = frame.EnsureMinimumSize(rgba, minTesseractImageSize)
	if t.Filter != nil {
		rgba = t.Filter.Apply(rgba)
	}
	rgba = frame.PaddingUniform(rgba, ocrPaddingPixels, ocrPaddingColor)

	var text string
	err := t.handle.withEngine(func(e engine) error {
		if err := e.SetFrame(rgba.Pixels, rgba.Width, rgba.Height, rgba.Channels, rgba.Width*rgba.Channels); err != nil {
			return err
		}
		e.SetSourceResolution(96)
		var innerErr error
		text, innerErr = e.GetText()
		return innerErr
	})
	if err != nil {
		return err
	}

	if t.Callback != nil {
		t.Callback(Result{Text: text, Timestamp: f.Timestamp, FrameNum: f.FrameNum})
	}
	return nil
}
