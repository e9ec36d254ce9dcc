// Package events carries milestone events from a flow (the producer) to a renderer
// (the consumer) running in a different goroutine.
//
// The channel is unbounded: Emit never blocks and never drops, so a slow renderer
// cannot stall a flow. Events are delivered in emission order. Once the sender is
// closed the receiver drains the remaining events and then observes ErrEndOfStream.
package events

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/atomic"

	"github.com/solo-machine/solo-machine/engine/common/fifoqueue"
	"github.com/solo-machine/solo-machine/model/events"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/metrics"
)

var (
	// ErrChannelClosed is returned by Emit once the sender has been closed.
	ErrChannelClosed = errors.New("event channel is closed")

	// ErrEndOfStream is returned by Recv once the sender has been closed and every
	// emitted event has been received.
	ErrEndOfStream = errors.New("end of event stream")
)

type channel struct {
	queue   *fifoqueue.FifoQueue[events.Event]
	notify  chan struct{}
	closed  *atomic.Bool
	metrics module.EventMetrics
}

// Option configures an event channel.
type Option func(*channel)

// WithMetrics reports emitted events and the channel's backlog to the given collector.
func WithMetrics(collector module.EventMetrics) Option {
	return func(c *channel) {
		c.metrics = collector
	}
}

// Sender is the producing end of an event channel. A Sender must be used by a single
// goroutine.
type Sender struct {
	ch *channel
}

// Receiver is the consuming end of an event channel. A Receiver must be used by a
// single goroutine.
type Receiver struct {
	ch *channel
}

var _ module.EventEmitter = (*Sender)(nil)

// NewChannel creates a connected Sender/Receiver pair.
func NewChannel(opts ...Option) (*Sender, *Receiver) {
	ch := &channel{
		notify:  make(chan struct{}, 1),
		closed:  atomic.NewBool(false),
		metrics: metrics.NewNoopCollector(),
	}
	for _, apply := range opts {
		apply(ch)
	}

	queue, err := fifoqueue.NewFifoQueue[events.Event](fifoqueue.WithLengthObserver(ch.metrics.EventQueueLength))
	if err != nil {
		// only reachable with a nil observer, which the options above cannot produce
		panic(fmt.Sprintf("could not create event queue: %v", err))
	}
	ch.queue = queue

	return &Sender{ch: ch}, &Receiver{ch: ch}
}

// Emit appends the event to the channel and wakes up the receiver.
func (s *Sender) Emit(event events.Event) error {
	if s.ch.closed.Load() {
		return ErrChannelClosed
	}
	s.ch.queue.Push(event)
	s.ch.metrics.EventEmitted(string(event.Type()))
	s.ch.wakeup()
	return nil
}

// Close marks the end of the stream. Events emitted before Close are still delivered.
// Calling Close more than once has no effect.
func (s *Sender) Close() {
	if s.ch.closed.CompareAndSwap(false, true) {
		s.ch.wakeup()
	}
}

func (c *channel) wakeup() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Recv blocks until an event is available, the stream has ended or the context is
// cancelled.
// Expected errors during normal operations:
//   - ErrEndOfStream if the sender was closed and all events were received
//   - ctx.Err() if the context was cancelled first
func (r *Receiver) Recv(ctx context.Context) (events.Event, error) {
	for {
		if event, ok := r.ch.queue.Pop(); ok {
			return event, nil
		}
		if r.ch.closed.Load() {
			// Close happens after the last Emit, so a final pop observes everything
			if event, ok := r.ch.queue.Pop(); ok {
				return event, nil
			}
			return nil, ErrEndOfStream
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-r.ch.notify:
		}
	}
}
