// Package ocr implements the OCR trigger: RGBA32 preprocessing per the
// dispatch-core spec, backed by a Tesseract engine handle reached through a
// narrow internal interface so the rest of the core never imports gosseract
// directly.
package ocr

import (
	"bytes"
	"image"
	"image/png"
	"strconv"
	"sync"

	"github.com/otiai10/gosseract/v2"

	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
)

// engine is the narrow contract the OCR trigger needs from an OCR handle:
// feed it a packed-pixel buffer plus geometry, set a resolution hint, and
// retrieve recognized text. Grounded on gosseract.Client's
// SetImageFromBytes/SetVariable/Text surface (§6.4).
type engine interface {
	SetFrame(pixels []byte, width, height, channels, stride int) error
	SetSourceResolution(dpi int)
	GetText() (string, error)
	Close() error
}

// gosseractEngine adapts a *gosseract.Client to the engine interface.
// gosseract ingests encoded image bytes rather than a raw pixel buffer, so
// SetFrame encodes the RGBA32 buffer as PNG before handing it to Tesseract.
type gosseractEngine struct {
	client *gosseract.Client
}

func newGosseractEngine(datapath, lang string) (*gosseractEngine, error) {
	client := gosseract.NewClient()
	client.TessdataPrefix = &datapath
	if err := client.SetLanguage(lang); err != nil {
		return nil, hterrors.NewAnalyzerError("failed to set OCR language", err)
	}
	return &gosseractEngine{client: client}, nil
}

func (g *gosseractEngine) SetFrame(pixels []byte, width, height, channels, stride int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Pix = pixels
	img.Stride = stride

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return hterrors.NewAnalyzerError("failed to encode frame for OCR", err)
	}
	if err := g.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return hterrors.NewAnalyzerError("failed to hand frame to OCR engine", err)
	}
	return nil
}

func (g *gosseractEngine) SetSourceResolution(dpi int) {
	_ = g.client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(dpi))
}

func (g *gosseractEngine) GetText() (string, error) {
	text, err := g.client.Text()
	if err != nil {
		return "", hterrors.NewAnalyzerError("OCR recognition failed", err)
	}
	return text, nil
}

func (g *gosseractEngine) Close() error {
	return g.client.Close()
}

// handle holds an engine behind a mutex. The engine is single-session and
// stateful across SetFrame/GetText, so withEngine runs one OCR call on it
// with the mutex held for exactly that call. The engine is used in place; it
// is not taken out of the handle and put back.
type handle struct {
	mu     sync.Mutex
	engine engine
}

func (h *handle) withEngine(fn func(engine) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.engine == nil {
		return hterrors.NewNoneError("OCR engine handle is unavailable")
	}
	return fn(h.engine)
}
