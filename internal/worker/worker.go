// Package worker provides the bounded-queue background executor that async
// triggers enqueue onto, mirroring the channel-fed runner thread in the
// original Rust async_trigger module.
package worker

import (
	"log"
	"sync"

	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
	"github.com/hypetrigger-go/hypetrigger/internal/frame"
)

// QueueCapacity is the bounded channel capacity for a Worker's packet queue.
const QueueCapacity = 100

// Trigger is the narrow contract a Worker needs from whatever it dispatches
// packets to. It mirrors the single-method trigger contract without
// importing the trigger package, avoiding an import cycle (trigger.Async
// depends on Worker, not the reverse).
type Trigger interface {
	OnFrame(*frame.Frame) error
}

// Packet pairs a frame with the trigger that should process it.
type Packet struct {
	Frame   *frame.Frame
	Trigger Trigger
}

// item is the internal envelope carried on the single queue channel. A stop
// request travels through the same FIFO as Packets so it is only observed
// after every Packet enqueued ahead of it has drained, rather than racing
// against them on a separate channel.
type item struct {
	pkt  Packet
	stop bool
}

// Worker owns one goroutine draining a bounded channel of Packets in FIFO
// order. Multiple async triggers may share a Worker (serial execution) or
// each hold their own.
type Worker struct {
	mu      sync.Mutex
	queue   chan item
	done    chan struct{}
	stopped bool
	once    sync.Once
}

// New starts a Worker's goroutine and returns it ready to accept packets.
func New() *Worker {
	w := &Worker{
		queue: make(chan item, QueueCapacity),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)
	for it := range w.queue {
		if it.stop {
			return
		}
		if err := it.pkt.Trigger.OnFrame(it.pkt.Frame); err != nil {
			log.Printf("worker: trigger error: %v", err)
		}
	}
}

// Send enqueues a packet, blocking if the queue is full. This blocking send
// is the worker's backpressure mechanism: a slow trigger causes upstream
// dispatch to stall rather than letting memory grow unbounded. Send returns
// an error iff the worker has already been stopped; the packet is not
// enqueued in that case.
//
// mu is held across the (possibly blocking) channel send so a concurrent
// Stop cannot mark the queue stopped and race ahead of a Send that already
// passed the stopped check: the two calls serialize instead.
func (w *Worker) Send(pkt Packet) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return hterrors.NewQueueDisconnectedError()
	}
	w.queue <- item{pkt: pkt}
	return nil
}

// Stop enqueues a stop sentinel behind every Packet already sent, then
// blocks until the worker goroutine has drained up to and processed it. A
// worker already stopped is a no-op. Sends racing with Stop either complete
// before it (and are guaranteed to drain) or observe w.stopped and are
// rejected; none can be silently dropped.
func (w *Worker) Stop() {
	w.once.Do(func() {
		w.mu.Lock()
		w.stopped = true
		w.queue <- item{stop: true}
		w.mu.Unlock()
	})
	<-w.done
}
