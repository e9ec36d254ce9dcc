package module

import (
	"time"
)

// EventMetrics tracks the milestone events flowing from an orchestrator to a renderer.
type EventMetrics interface {
	// EventEmitted is called once per event handed to an event channel.
	EventEmitted(eventType string)

	// EventQueueLength tracks the number of events not yet consumed by the renderer.
	EventQueueLength(length int)
}

// FlowMetrics tracks the executions of solo machine flows (connect, send, receive,
// update signer, add chain).
type FlowMetrics interface {
	// FlowFinished is called when a flow returns, with its duration and whether it
	// returned an error.
	FlowFinished(flow string, duration time.Duration, failed bool)
}

// GatewayMetrics tracks requests to a chain's transaction gateway.
type GatewayMetrics interface {
	// GatewayRequest is called after each HTTP attempt with the gateway method and
	// the response status code (0 for transport failures).
	GatewayRequest(method string, statusCode int, duration time.Duration)
}

// SoloMachineMetrics is the union of all collectors used by the solo machine.
type SoloMachineMetrics interface {
	EventMetrics
	FlowMetrics
	GatewayMetrics
}
