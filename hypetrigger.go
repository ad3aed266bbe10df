// Package hypetrigger dispatches decoded video frames to pluggable trigger
// analyzers (OCR, image classification, simple callbacks) in realtime,
// driving an external decoder child process for the actual decode work.
//
// Basic usage:
//
//	pipeline, err := hypetrigger.New(
//	    hypetrigger.SetInput("input.mp4"),
//	    hypetrigger.SetFPS(2),
//	    hypetrigger.AddTrigger(trigger.NewSimple(func(f *frame.Frame) {
//	        fmt.Println("frame", f.FrameNum)
//	    })),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcome, err := pipeline.Run(context.Background())
package hypetrigger

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/hypetrigger-go/hypetrigger/internal/config"
	"github.com/hypetrigger-go/hypetrigger/internal/decoder"
	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
	"github.com/hypetrigger-go/hypetrigger/internal/frame"
	"github.com/hypetrigger-go/hypetrigger/internal/logging"
	"github.com/hypetrigger-go/hypetrigger/internal/reporter"
)

// Trigger re-exports the frame-analysis interface so callers composing a
// pipeline only need to import this top-level package.
type Trigger = decoder.Trigger

// Outcome summarizes a completed Run/Wait call.
type Outcome = reporter.Outcome

// Pipeline is the top-level builder: it composes an input, sampling rate,
// and ordered list of triggers, and drives one decode-and-dispatch job.
type Pipeline struct {
	cfg             *config.Config
	input           string
	inputFormat     string
	triggers        []Trigger
	triggerNames    []string
	onComplete      func(Outcome)
	rep             reporter.Reporter
	logger          *logging.Logger
	estimatedFrames int64
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// New creates a new Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg: config.NewConfig(),
		rep: reporter.NullReporter{},
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	if p.input == "" {
		return nil, hterrors.NewConfigError("input must be set (SetInput or TestInput)")
	}

	return p, nil
}

// SetDecoderExe overrides the decoder executable (default "ffmpeg").
func SetDecoderExe(exe string) Option {
	return func(p *Pipeline) { p.cfg.DecoderExe = exe }
}

// SetInput sets the input URI passed to the decoder's `-i` argument.
func SetInput(input string) Option {
	return func(p *Pipeline) { p.input = input }
}

// SetInputFormat sets an explicit input format hint (decoder `-f` argument
// preceding `-i`). Leave unset to let the decoder probe the input.
func SetInputFormat(format string) Option {
	return func(p *Pipeline) { p.inputFormat = format }
}

// SetFPS sets the sampling rate in frames per second (default 2).
func SetFPS(fps float64) Option {
	return func(p *Pipeline) { p.cfg.FPS = fps }
}

// AddTrigger appends a single trigger to the pipeline's dispatch list.
func AddTrigger(t Trigger) Option {
	return func(p *Pipeline) {
		p.triggers = append(p.triggers, t)
		p.triggerNames = append(p.triggerNames, triggerName(t))
	}
}

// AddTriggers appends a slice of triggers to the pipeline's dispatch list.
func AddTriggers(ts []Trigger) Option {
	return func(p *Pipeline) {
		for _, t := range ts {
			p.triggers = append(p.triggers, t)
			p.triggerNames = append(p.triggerNames, triggerName(t))
		}
	}
}

// OnComplete registers a callback invoked exactly once per Run/Wait call,
// on both natural EOF and graceful stop.
func OnComplete(fn func(Outcome)) Option {
	return func(p *Pipeline) { p.onComplete = fn }
}

// WithReporter installs a custom progress reporter.
func WithReporter(rep reporter.Reporter) Option {
	return func(p *Pipeline) { p.rep = rep }
}

// WithLogger installs a logger for decoder stderr forwarding and internal
// diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithEstimatedFrames supplies a rough total-frame count (typically derived
// from the source duration and FPS) for display in progress reporting.
func WithEstimatedFrames(n int64) Option {
	return func(p *Pipeline) { p.estimatedFrames = n }
}

// TestInput selects the decoder's synthetic test source instead of a real
// input file: input format "lavfi", a 1280x720 30fps test pattern.
func TestInput() Option {
	return func(p *Pipeline) {
		p.inputFormat = "lavfi"
		p.input = "testsrc=duration=10:size=1280x720:rate=30"
	}
}

func triggerName(t Trigger) string {
	return fmt.Sprintf("%T", t)
}

// Handle represents a pipeline started with RunAsync. It exposes Wait, which
// blocks until the dispatcher and stderr-parser goroutines have both
// finished, and Stop/Kill for early termination.
type Handle struct {
	proc    *decoder.Process
	wg      sync.WaitGroup
	err     error
	outcome Outcome
	stopped atomic.Bool
}

// Wait blocks until the pipeline's goroutines finish and returns the result.
func (h *Handle) Wait() (Outcome, error) {
	h.wg.Wait()
	return h.outcome, h.err
}

// Stop requests a graceful shutdown by writing the decoder's stop sequence.
func (h *Handle) Stop() error {
	h.stopped.Store(true)
	return h.proc.Stop()
}

// Kill hard-terminates the decoder child process.
func (h *Handle) Kill() error {
	return h.proc.Kill()
}

// Run spawns the decoder child, dispatches frames synchronously on the
// calling goroutine, and returns once the decoder's stdout reaches EOF or
// the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	h, _, err := p.start(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return h.Wait()
}

// RunAsync spawns the decoder child and runs the dispatcher loop on a
// separate goroutine, returning a Handle for the caller to await or stop,
// plus the child's stdin writer for sending custom control sequences.
func (p *Pipeline) RunAsync(ctx context.Context) (*Handle, io.Writer, error) {
	return p.start(ctx)
}

func (p *Pipeline) start(ctx context.Context) (*Handle, io.Writer, error) {
	args := decoder.Args{
		DecoderExe:  p.cfg.DecoderExe,
		InputFormat: p.inputFormat,
		Input:       p.input,
		FPS:         p.cfg.FPS,
	}

	proc, err := decoder.Start(ctx, args)
	if err != nil {
		return nil, nil, err
	}

	p.rep.Initialization(reporter.InitializationSummary{
		Input:           p.input,
		DecoderExe:      p.cfg.DecoderExe,
		FPS:             p.cfg.FPS,
		Triggers:        p.triggerNames,
		EstimatedFrames: p.estimatedFrames,
	})

	geometryCh := make(chan decoder.Geometry, 1)
	h := &Handle{proc: proc}
	h.wg.Add(2)

	go func() {
		defer h.wg.Done()
		decoder.ParseStderr(proc.Stderr, geometryCh, p.logger.OnDecoderStderr)
	}()

	go func() {
		defer h.wg.Done()
		onErr := func(_ Trigger, fn uint64, err error) {
			p.rep.Error(reporter.ReporterError{
				Title:   "trigger error",
				Message: err.Error(),
				Context: fmt.Sprintf("frame %d", fn),
			})
		}
		onFrame := func(f *frame.Frame) {
			p.rep.FrameProgress(reporter.FrameProgress{
				FrameNum:  f.FrameNum,
				Timestamp: f.Timestamp,
				Width:     f.Width,
				Height:    f.Height,
			})
		}
		count, err := decoder.Dispatch(proc.Stdout, geometryCh, p.cfg.FPS, p.triggers, onErr, onFrame)
		h.outcome = Outcome{FramesDelivered: count, Stopped: h.stopped.Load()}
		h.err = err
		_ = proc.Wait()
		p.rep.Complete(h.outcome)
		if p.onComplete != nil {
			p.onComplete(h.outcome)
		}
	}()

	return h, proc.Stdin, nil
}
