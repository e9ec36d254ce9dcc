package metrics

// Prometheus metric namespaces
const (
	namespaceSoloMachine = "solo_machine"
)

// Prometheus metric subsystems
const (
	subsystemEvents  = "events"
	subsystemFlow    = "flow"
	subsystemGateway = "gateway"
)
