package command

import (
	"fmt"

	"github.com/solo-machine/solo-machine/model/events"
	"github.com/solo-machine/solo-machine/module/output"
)

// IBCRenderer renders the events of the ibc commands.
type IBCRenderer struct {
	sink *output.Sink
}

var _ Renderer = (*IBCRenderer)(nil)

func NewIBCRenderer(sink *output.Sink) *IBCRenderer {
	return &IBCRenderer{sink: sink}
}

func (r *IBCRenderer) Render(event events.Event) error {
	switch e := event.(type) {
	case events.TokensSent:
		return r.transfer("Tokens sent!", e.ChainID, e.FromAddress, e.ToAddress, e.Amount, e.Denom)
	case events.TokensReceived:
		return r.transfer("Tokens received!", e.ChainID, e.FromAddress, e.ToAddress, e.Amount, e.Denom)
	case events.SignerUpdated:
		return r.table("Signer updated!",
			output.NewRow("Chain ID", e.ChainID),
			output.NewRow("Old public key", e.OldPublicKey.Hex()),
			output.NewRow("New public key", e.NewPublicKey.Hex()),
		)
	case events.CreatedSoloMachineClient:
		return r.sink.Line(fmt.Sprintf("Created solo machine client on IBC enabled chain [Client ID = %s]", e.ClientID))
	case events.CreatedTendermintClient:
		return r.sink.Line(fmt.Sprintf("Created tendermint client on solo machine [Client ID = %s]", e.ClientID))
	case events.InitializedConnectionOnTendermint:
		return r.sink.Line(fmt.Sprintf("Initialized connection on IBC enabled chain [Connection ID = %s]", e.ConnectionID))
	case events.InitializedConnectionOnSoloMachine:
		return r.sink.Line(fmt.Sprintf("Initialized connection on solo machine [Connection ID = %s]", e.ConnectionID))
	case events.ConfirmedConnectionOnTendermint:
		return r.sink.Line(fmt.Sprintf("Confirmed connection on IBC enabled chain [Connection ID = %s]", e.ConnectionID))
	case events.ConfirmedConnectionOnSoloMachine:
		return r.sink.Line(fmt.Sprintf("Confirmed connection on solo machine [Connection ID = %s]", e.ConnectionID))
	case events.InitializedChannelOnTendermint:
		return r.sink.Line(fmt.Sprintf("Initialized channel on IBC enabled chain [Channel ID = %s]", e.ChannelID))
	case events.InitializedChannelOnSoloMachine:
		return r.sink.Line(fmt.Sprintf("Initialized channel on solo machine [Channel ID = %s]", e.ChannelID))
	case events.ConfirmedChannelOnTendermint:
		return r.sink.Line(fmt.Sprintf("Confirmed channel on IBC enabled chain [Channel ID = %s]", e.ChannelID))
	case events.ConfirmedChannelOnSoloMachine:
		return r.sink.Line(fmt.Sprintf("Confirmed channel on solo machine [Channel ID = %s]", e.ChannelID))
	case events.ConnectionEstablished:
		details := e.ConnectionDetails
		return r.table("Connection established!",
			output.NewRow("Chain ID", e.ChainID),
			output.NewRow("Solo machine client ID", details.SoloMachineClientID),
			output.NewRow("Tendermint client ID", details.TendermintClientID),
			output.NewRow("Solo machine connection ID", details.SoloMachineConnectionID),
			output.NewRow("Tendermint connection ID", details.TendermintConnectionID),
			output.NewRow("Solo machine channel ID", details.SoloMachineChannelID),
			output.NewRow("Tendermint channel ID", details.TendermintChannelID),
		)
	default:
		return NewUnexpectedEventError("ibc", event)
	}
}

func (r *IBCRenderer) transfer(headline string, chainID, from, to, amount, denom interface{}) error {
	return r.table(headline,
		output.NewRow("Chain ID", chainID),
		output.NewRow("From", from),
		output.NewRow("To", to),
		output.NewRow("Amount", amount),
		output.NewRow("Denom", denom),
	)
}

func (r *IBCRenderer) table(headline string, rows ...output.Row) error {
	err := r.sink.Headline(headline)
	if err != nil {
		return err
	}
	return r.sink.Table(rows...)
}
