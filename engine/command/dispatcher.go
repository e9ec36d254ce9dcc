// Package command runs one solo machine flow per invocation: the flow executes on the
// calling goroutine and reports events over a channel to a renderer running on its
// own goroutine.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/solo-machine/solo-machine/model/events"
	"github.com/solo-machine/solo-machine/module"
	modevents "github.com/solo-machine/solo-machine/module/events"
	"github.com/solo-machine/solo-machine/module/metrics"
)

// Renderer presents one event to the operator.
type Renderer interface {
	Render(event events.Event) error
}

// Flow runs an operation reporting its milestones to emitter.
type Flow func(ctx context.Context, emitter module.EventEmitter) error

type Dispatcher struct {
	log     zerolog.Logger
	metrics module.EventMetrics
}

func NewDispatcher(log zerolog.Logger, collector module.EventMetrics) *Dispatcher {
	if collector == nil {
		collector = metrics.NewNoopCollector()
	}
	return &Dispatcher{
		log:     log.With().Str("component", "dispatcher").Logger(),
		metrics: collector,
	}
}

// Dispatch runs the flow and renders its events until the flow returned and every
// event emitted before was rendered. A failing renderer cancels the flow's context.
//
// Both failures are returned, the flow's first.
func (d *Dispatcher) Dispatch(ctx context.Context, renderer Renderer, flow Flow) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sender, receiver := modevents.NewChannel(modevents.WithMetrics(d.metrics))

	rendered := make(chan error, 1)
	go func() {
		err := d.render(receiver, renderer)
		if err != nil {
			cancel()
		}
		rendered <- err
	}()

	flowErr := flow(ctx, sender)
	sender.Close()
	renderErr := <-rendered

	var result *multierror.Error
	if flowErr != nil {
		result = multierror.Append(result, flowErr)
	}
	if renderErr != nil {
		result = multierror.Append(result, fmt.Errorf("could not render events: %w", renderErr))
	}
	return result.ErrorOrNil()
}

// render drains the receiver. It ignores the invocation's context: the sender is
// always closed once the flow returned, and the events emitted until then are shown.
func (d *Dispatcher) render(receiver *modevents.Receiver, renderer Renderer) error {
	for {
		event, err := receiver.Recv(context.Background())
		if errors.Is(err, modevents.ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return err
		}

		d.log.Debug().Str("event", string(event.Type())).Msg("rendering event")
		err = renderer.Render(event)
		if err != nil {
			return err
		}
	}
}
