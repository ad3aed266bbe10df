// Package trigger defines the single-method analyzer contract that the
// dispatcher invokes for every frame, plus the Simple and Async variants.
// OCR and Classifier variants live in their own packages (internal/ocr,
// internal/classifier) since they each carry a distinct external engine
// dependency.
package trigger

import (
	"github.com/hypetrigger-go/hypetrigger/internal/frame"
	"github.com/hypetrigger-go/hypetrigger/internal/worker"
)

// Trigger is the polymorphic capability the dispatcher invokes for every
// frame. Implementations must be safe to call from any goroutine. Returning
// an error does not abort the pipeline; the caller logs it and moves on.
type Trigger interface {
	OnFrame(*frame.Frame) error
}

// Simple wraps a shared callable and invokes it for every frame.
type Simple struct {
	Callback func(*frame.Frame)
}

// NewSimple constructs a Simple trigger around cb.
func NewSimple(cb func(*frame.Frame)) *Simple {
	return &Simple{Callback: cb}
}

// OnFrame invokes the wrapped callback and always returns nil.
func (s *Simple) OnFrame(f *frame.Frame) error {
	s.Callback(f)
	return nil
}

// Async wraps an inner trigger and a Worker, turning synchronous OnFrame
// calls into enqueue operations. The inner trigger actually runs on the
// worker's goroutine, not the dispatcher's.
type Async struct {
	Inner  Trigger
	Worker *worker.Worker
}

// NewAsync wraps inner so its OnFrame calls run on w's goroutine.
func NewAsync(inner Trigger, w *worker.Worker) *Async {
	return &Async{Inner: inner, Worker: w}
}

// OnFrame enqueues (f, Inner) onto the worker's bounded channel, blocking if
// the queue is full. This blocking send is the pipeline's sole backpressure
// mechanism between the dispatcher and a slow trigger. It returns an error
// iff the worker's queue is disconnected (already stopped).
func (a *Async) OnFrame(f *frame.Frame) error {
	return a.Worker.Send(worker.Packet{Frame: f, Trigger: a.Inner})
}
