// Package reporter provides progress reporting interfaces and implementations.
package reporter

// InitializationSummary describes the pipeline about to run.
type InitializationSummary struct {
	Input      string
	DecoderExe string
	FPS        float64
	Triggers   []string

	// EstimatedFrames is a rough total-frame count derived from the source
	// duration and FPS, or 0 if unknown (e.g. a synthetic test source).
	EstimatedFrames int64
}

// FrameProgress reports dispatch progress after each frame delivered to the
// registered triggers.
type FrameProgress struct {
	FrameNum  uint64
	Timestamp float64
	Width     int
	Height    int
}

// OCRResult is reported whenever an OCR trigger recognizes text.
type OCRResult struct {
	Text      string
	Timestamp float64
	FrameNum  uint64
}

// ClassifierResult is reported whenever a classifier trigger emits a class.
type ClassifierResult struct {
	ClassIndex int
	Confidence float32
	Timestamp  float64
	FrameNum   uint64
}

// Outcome summarizes a completed Run/RunAsync call.
type Outcome struct {
	FramesDelivered uint64
	Stopped         bool // true if ended via graceful stop rather than natural EOF
}

// ReporterError is a structured error presentation.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}
