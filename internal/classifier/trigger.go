package classifier

import (
	"github.com/hypetrigger-go/hypetrigger/internal/frame"
)

// Result is delivered to a Trigger's callback after each classification.
type Result struct {
	ClassIndex int
	Confidence float32
}

// Trigger runs a loaded classification graph over each frame, after an
// optional crop, a center-square crop, and a resize to the model's fixed
// input resolution.
type Trigger struct {
	Crop     *frame.Crop
	Callback func(Result)

	engine engine
}

// Option configures a Trigger at construction time.
type Option func(*Trigger)

// WithCrop restricts classification to a sub-region of each frame.
func WithCrop(c frame.Crop) Option {
	return func(t *Trigger) { t.Crop = &c }
}

// WithCallback registers a callback invoked once per classified frame.
func WithCallback(cb func(Result)) Option {
	return func(t *Trigger) { t.Callback = cb }
}

// New loads the ONNX model file at modelDir (a single file, not a saved-model
// directory), binds its input "Image" and output "Confidences" (numClasses
// entries), and runs one all-zero warm-up inference.
func New(modelDir string, numClasses int, opts ...Option) (*Trigger, error) {
	eng, err := newOrtEngine(modelDir, numClasses)
	if err != nil {
		return nil, err
	}
	t := &Trigger{engine: eng}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Close releases the underlying session and tensors.
func (t *Trigger) Close() {
	t.engine.Close()
}

// OnFrame implements trigger.Trigger: preprocess per §4.8, run the graph,
// and invoke the callback with the argmax class and its confidence.
func (t *Trigger) OnFrame(f *frame.Frame) error {
	img := frame.Image{Width: f.Width, Height: f.Height, Channels: 3, Pixels: f.Pixels}
	rgba := frame.RGB24ToRGBA32(img)

	if t.Crop != nil {
		rgba = t.Crop.Apply(rgba)
	}
	rgba = frame.EnsureSquare(rgba)
	rgba = frame.EnsureSize(rgba, TensorSize, TensorSize)
	rgb := frame.RGBA32ToRGB24(rgba)

	tensor := flattenToTensor(rgb.Pixels)

	output, err := t.engine.Run(tensor)
	if err != nil {
		return err
	}

	classIdx, confidence := argmax(output)
	if t.Callback != nil {
		t.Callback(Result{ClassIndex: classIdx, Confidence: confidence})
	}
	return nil
}

// flattenToTensor converts a packed RGB24 buffer into a [1, H, W, 3] float32
// tensor with values in [0, 1].
func flattenToTensor(rgb []byte) []float32 {
	out := make([]float32, len(rgb))
	for i, b := range rgb {
		out[i] = float32(b) / 255
	}
	return out
}

func argmax(v []float32) (index int, value float32) {
	if len(v) == 0 {
		return 0, 0
	}
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best, v[best]
}
