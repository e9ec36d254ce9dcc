package metrics

import (
	"time"

	"github.com/solo-machine/solo-machine/module"
)

type NoopCollector struct{}

var _ module.SoloMachineMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) EventEmitted(eventType string)                                        {}
func (nc *NoopCollector) EventQueueLength(length int)                                          {}
func (nc *NoopCollector) FlowFinished(flow string, duration time.Duration, failed bool)        {}
func (nc *NoopCollector) GatewayRequest(method string, statusCode int, duration time.Duration) {}
