// Package config provides configuration types and defaults for hypetrigger.
package config

import "fmt"

// Default constants.
const (
	// DefaultDecoderExe is the decoder executable invoked when none is set.
	DefaultDecoderExe string = "ffmpeg"

	// DefaultFPS is the sampling rate applied to the decoder's fps filter.
	DefaultFPS float64 = 2.0

	// DefaultWorkerQueueCapacity is the default for WorkerQueueCapacity. It
	// equals worker.QueueCapacity, the capacity worker.New actually uses.
	DefaultWorkerQueueCapacity int = 100

	// DefaultOCRLanguage is the Tesseract language used when none is set.
	DefaultOCRLanguage string = "eng"

	// DefaultClassifierInputSize is the fixed square tensor side length the
	// classifier trigger resizes frames to.
	DefaultClassifierInputSize int = 224
)

// Config holds the pipeline-wide settings not tied to a single trigger:
// decoder invocation defaults, the worker queue capacity, and OCR/
// classifier defaults. The pipeline reads DecoderExe and FPS; worker.New,
// ocr.New and classifier.New use their own defaults and do not read the
// remaining fields.
type Config struct {
	// Decoder invocation
	DecoderExe string
	FPS        float64

	// Worker/async dispatch
	WorkerQueueCapacity int

	// OCR trigger defaults
	OCRDatapath string // empty means: directory of the running executable
	OCRLanguage string

	// Classifier trigger defaults
	ClassifierModelDir string

	// Debug options
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DecoderExe:          DefaultDecoderExe,
		FPS:                 DefaultFPS,
		WorkerQueueCapacity: DefaultWorkerQueueCapacity,
		OCRLanguage:         DefaultOCRLanguage,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DecoderExe == "" {
		return fmt.Errorf("decoder executable must not be empty")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %g", c.FPS)
	}
	if c.WorkerQueueCapacity < 1 {
		return fmt.Errorf("worker_queue_capacity must be at least 1, got %d", c.WorkerQueueCapacity)
	}
	if c.OCRLanguage == "" {
		return fmt.Errorf("ocr_language must not be empty")
	}
	return nil
}
