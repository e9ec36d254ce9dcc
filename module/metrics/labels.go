package metrics

const (
	LabelEventType  = "event_type"
	LabelFlow       = "flow"
	LabelOutcome    = "outcome"
	LabelMethod     = "method"
	LabelStatusCode = "code"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Flow names, used as values of LabelFlow.
const (
	FlowConnect      = "connect"
	FlowSend         = "send"
	FlowReceive      = "receive"
	FlowUpdateSigner = "update_signer"
	FlowAddChain     = "add_chain"
)
