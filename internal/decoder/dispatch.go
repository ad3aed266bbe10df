package decoder

import (
	"io"

	"github.com/hypetrigger-go/hypetrigger/internal/errors"
	"github.com/hypetrigger-go/hypetrigger/internal/frame"
)

// Trigger is the narrow contract the dispatcher needs from a registered
// analyzer, matching trigger.Trigger's single method without importing that
// package (avoiding a decoder<->trigger import cycle neither side needs).
type Trigger interface {
	OnFrame(*frame.Frame) error
}

// OnTriggerError is invoked whenever a trigger returns an error from
// OnFrame; the dispatcher logs and continues rather than aborting.
type OnTriggerError func(trigger Trigger, frameNum uint64, err error)

// OnFrameDispatched is invoked after every frame has been offered to all
// triggers, letting a caller report per-frame progress without the
// dispatcher itself depending on a reporting package.
type OnFrameDispatched func(f *frame.Frame)

// Dispatch reads raw packed-RGB frames from stdout once geometry arrives on
// geometryCh, constructs a Frame for each, and invokes every trigger in
// registration order. It returns when stdout reaches EOF, when the decoder
// exits before ever publishing geometry (a dedicated invalid-input error),
// or on a frame-construction error. The returned count is the number of
// frames successfully delivered to the triggers.
func Dispatch(stdout io.Reader, geometryCh <-chan Geometry, fps float64, triggers []Trigger, onTriggerErr OnTriggerError, onFrame OnFrameDispatched) (uint64, error) {
	geom, ok := <-geometryCh
	if !ok {
		return 0, errors.NewInvalidInputError()
	}

	frameSize := geom.Width * geom.Height * 3
	buf := make([]byte, frameSize)
	var frameNum uint64

	for {
		_, err := io.ReadFull(stdout, buf)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return frameNum, nil
		}
		if err != nil {
			return frameNum, errors.NewIOError("failed reading decoder stdout", err)
		}

		pixels := make([]byte, frameSize)
		copy(pixels, buf)

		f, err := frame.New(geom.Width, geom.Height, pixels, frameNum, fps)
		if err != nil {
			return frameNum, err
		}

		for _, t := range triggers {
			if err := t.OnFrame(f); err != nil && onTriggerErr != nil {
				onTriggerErr(t, frameNum, err)
			}
		}
		if onFrame != nil {
			onFrame(f)
		}

		frameNum++
	}
}
