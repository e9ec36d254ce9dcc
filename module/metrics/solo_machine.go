package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/solo-machine/solo-machine/module"
)

// SoloMachineCollector implements metric collection for the solo machine flows, the
// event channel and the chain gateway client.
type SoloMachineCollector struct {
	eventsEmitted    *prometheus.CounterVec
	eventQueueLength prometheus.Gauge
	flowDuration     *prometheus.HistogramVec
	gatewayRequests  *prometheus.CounterVec
	gatewayDuration  *prometheus.HistogramVec
}

var _ module.SoloMachineMetrics = (*SoloMachineCollector)(nil)

func NewSoloMachineCollector(registerer prometheus.Registerer) *SoloMachineCollector {
	eventsEmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceSoloMachine,
		Subsystem: subsystemEvents,
		Name:      "emitted_total",
		Help:      "the number of events handed to an event channel, by event type",
	}, []string{LabelEventType})
	eventQueueLength := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespaceSoloMachine,
		Subsystem: subsystemEvents,
		Name:      "queue_length",
		Help:      "the number of events emitted but not yet consumed by the renderer",
	})
	flowDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespaceSoloMachine,
		Subsystem: subsystemFlow,
		Name:      "duration_seconds",
		Help:      "the duration of solo machine flows, by flow and outcome",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{LabelFlow, LabelOutcome})
	gatewayRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceSoloMachine,
		Subsystem: subsystemGateway,
		Name:      "requests_total",
		Help:      "the number of HTTP attempts made against the chain gateway, by method and status code",
	}, []string{LabelMethod, LabelStatusCode})
	gatewayDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespaceSoloMachine,
		Subsystem: subsystemGateway,
		Name:      "request_duration_seconds",
		Help:      "the duration of HTTP attempts made against the chain gateway, by method",
		Buckets:   prometheus.DefBuckets,
	}, []string{LabelMethod})
	registerer.MustRegister(eventsEmitted, eventQueueLength, flowDuration, gatewayRequests, gatewayDuration)

	return &SoloMachineCollector{
		eventsEmitted:    eventsEmitted,
		eventQueueLength: eventQueueLength,
		flowDuration:     flowDuration,
		gatewayRequests:  gatewayRequests,
		gatewayDuration:  gatewayDuration,
	}
}

func (c *SoloMachineCollector) EventEmitted(eventType string) {
	c.eventsEmitted.WithLabelValues(eventType).Inc()
}

func (c *SoloMachineCollector) EventQueueLength(length int) {
	c.eventQueueLength.Set(float64(length))
}

func (c *SoloMachineCollector) FlowFinished(flow string, duration time.Duration, failed bool) {
	outcome := OutcomeSuccess
	if failed {
		outcome = OutcomeFailure
	}
	c.flowDuration.WithLabelValues(flow, outcome).Observe(duration.Seconds())
}

func (c *SoloMachineCollector) GatewayRequest(method string, statusCode int, duration time.Duration) {
	c.gatewayRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.gatewayDuration.WithLabelValues(method).Observe(duration.Seconds())
}
