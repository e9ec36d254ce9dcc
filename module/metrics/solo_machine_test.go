package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoloMachineCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewSoloMachineCollector(registry)

	collector.EventEmitted("tokens_sent")
	collector.EventEmitted("tokens_sent")
	collector.EventEmitted("signer_updated")
	collector.EventQueueLength(3)
	collector.FlowFinished(FlowSend, 2*time.Second, false)
	collector.FlowFinished(FlowConnect, time.Second, true)
	collector.GatewayRequest("transfer", 503, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.eventsEmitted.WithLabelValues("tokens_sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.eventsEmitted.WithLabelValues("signer_updated")))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.eventQueueLength))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.gatewayRequests.WithLabelValues("transfer", "503")))

	expected := `
# HELP solo_machine_events_queue_length the number of events emitted but not yet consumed by the renderer
# TYPE solo_machine_events_queue_length gauge
solo_machine_events_queue_length 3
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "solo_machine_events_queue_length"))

	count, err := testutil.GatherAndCount(registry, "solo_machine_flow_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSoloMachineCollector_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewSoloMachineCollector(registry)
	assert.Panics(t, func() { NewSoloMachineCollector(registry) })
}
