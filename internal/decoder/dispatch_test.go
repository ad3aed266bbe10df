package decoder

import (
	"bytes"
	"errors"
	"testing"

	herrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
	"github.com/hypetrigger-go/hypetrigger/internal/frame"
)

type recordingTrigger struct {
	frameNums []uint64
	failOn    uint64
}

func (r *recordingTrigger) OnFrame(f *frame.Frame) error {
	r.frameNums = append(r.frameNums, f.FrameNum)
	if f.FrameNum == r.failOn {
		return errors.New("boom")
	}
	return nil
}

func TestDispatchDeliversFramesInOrder(t *testing.T) {
	const w, h = 2, 2
	frameSize := w * h * 3
	var stdout bytes.Buffer
	for i := 0; i < 5; i++ {
		stdout.Write(bytes.Repeat([]byte{byte(i)}, frameSize))
	}

	geometryCh := make(chan Geometry, 1)
	geometryCh <- Geometry{Width: w, Height: h}
	close(geometryCh)

	rec := &recordingTrigger{failOn: 99}
	count, err := Dispatch(&stdout, geometryCh, 2.0, []Trigger{rec}, nil, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if count != 5 {
		t.Fatalf("Dispatch returned count %d, want 5", count)
	}

	if len(rec.frameNums) != 5 {
		t.Fatalf("delivered %d frames, want 5", len(rec.frameNums))
	}
	for i, fn := range rec.frameNums {
		if fn != uint64(i) {
			t.Errorf("frame %d has FrameNum %d, want %d", i, fn, i)
		}
	}
}

func TestDispatchTriggerErrorDoesNotStopFrames(t *testing.T) {
	const w, h = 1, 1
	frameSize := w * h * 3
	var stdout bytes.Buffer
	for i := 0; i < 3; i++ {
		stdout.Write(make([]byte, frameSize))
	}

	geometryCh := make(chan Geometry, 1)
	geometryCh <- Geometry{Width: w, Height: h}
	close(geometryCh)

	rec := &recordingTrigger{failOn: 1}
	var errCount int
	count, err := Dispatch(&stdout, geometryCh, 1.0, []Trigger{rec}, func(_ Trigger, _ uint64, _ error) {
		errCount++
	}, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("Dispatch returned count %d, want 3", count)
	}
	if len(rec.frameNums) != 3 {
		t.Fatalf("delivered %d frames, want 3", len(rec.frameNums))
	}
	if errCount != 1 {
		t.Errorf("onTriggerErr called %d times, want 1", errCount)
	}
}

func TestDispatchNoGeometryIsInvalidInput(t *testing.T) {
	geometryCh := make(chan Geometry)
	close(geometryCh)

	_, err := Dispatch(&bytes.Buffer{}, geometryCh, 1.0, nil, nil, nil)
	if !herrors.IsInvalidInput(err) {
		t.Fatalf("Dispatch error = %v, want invalid-input kind", err)
	}
}

func TestDispatchInvokesOnFrameCallback(t *testing.T) {
	const w, h = 1, 1
	frameSize := w * h * 3
	var stdout bytes.Buffer
	for i := 0; i < 4; i++ {
		stdout.Write(make([]byte, frameSize))
	}

	geometryCh := make(chan Geometry, 1)
	geometryCh <- Geometry{Width: w, Height: h}
	close(geometryCh)

	var seen []uint64
	_, err := Dispatch(&stdout, geometryCh, 1.0, nil, nil, func(f *frame.Frame) {
		seen = append(seen, f.FrameNum)
	})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if len(seen) != 4 {
		t.Fatalf("onFrame called %d times, want 4", len(seen))
	}
}
