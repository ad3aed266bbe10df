// Package classifier implements the classifier trigger: RGBA32
// preprocessing into a fixed 224x224 tensor, a single-shot session run
// against a named input/output tensor pair, and argmax extraction. The
// onnxruntime_go session plumbing is reached through a narrow internal
// interface, grounded on the iluha78-FD example's
// NewAdvancedSession/GetData/Destroy usage (§6.4).
package classifier

import (
	ort "github.com/yalue/onnxruntime_go"

	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
)

// TensorSize is the fixed square input resolution the classifier expects.
const TensorSize = 224

// TensorChannels is the number of color channels fed to the model.
const TensorChannels = 3

// engine is the narrow contract the classifier trigger needs from a loaded
// model: feed it a flattened input tensor, run the graph, and read back the
// output vector.
type engine interface {
	Run(input []float32) ([]float32, error)
	Close()
}

// ortEngine adapts an onnxruntime_go AdvancedSession bound to named input
// ("Image") and output ("Confidences") tensors.
type ortEngine struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// newOrtEngine loads the ONNX model file at modelPath (a single file; a
// saved-model directory is not accepted) and binds its named input "Image"
// and output "Confidences". numClasses is the length of the output
// confidence vector.
func newOrtEngine(modelPath string, numClasses int) (*ortEngine, error) {
	inputShape := ort.NewShape(1, TensorSize, TensorSize, TensorChannels)
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, hterrors.NewAnalyzerError("failed to create classifier input tensor", err)
	}

	outputShape := ort.NewShape(1, int64(numClasses))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, hterrors.NewAnalyzerError("failed to create classifier output tensor", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"Image"},
		[]string{"Confidences"},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		nil,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, hterrors.NewAnalyzerError("failed to create classifier session", err)
	}

	e := &ortEngine{session: session, inputTensor: inputTensor, outputTensor: outputTensor}

	// Warm up the session with an all-zero tensor, per §4.8.
	if _, err := e.Run(make([]float32, TensorSize*TensorSize*TensorChannels)); err != nil {
		e.Close()
		return nil, hterrors.NewAnalyzerError("classifier warm-up run failed", err)
	}

	return e, nil
}

func (e *ortEngine) Run(input []float32) ([]float32, error) {
	copy(e.inputTensor.GetData(), input)
	if err := e.session.Run(); err != nil {
		return nil, hterrors.NewAnalyzerError("classifier session run failed", err)
	}
	out := make([]float32, len(e.outputTensor.GetData()))
	copy(out, e.outputTensor.GetData())
	return out, nil
}

func (e *ortEngine) Close() {
	if e.session != nil {
		e.session.Destroy()
	}
	if e.inputTensor != nil {
		e.inputTensor.Destroy()
	}
	if e.outputTensor != nil {
		e.outputTensor.Destroy()
	}
}
