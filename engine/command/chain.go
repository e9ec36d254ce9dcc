package command

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/solo-machine/solo-machine/engine/chain"
	"github.com/solo-machine/solo-machine/model/events"
	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/output"
)

// ChainRenderer renders the events of the chain commands.
type ChainRenderer struct {
	sink *output.Sink
}

var _ Renderer = (*ChainRenderer)(nil)

func NewChainRenderer(sink *output.Sink) *ChainRenderer {
	return &ChainRenderer{sink: sink}
}

func (r *ChainRenderer) Render(event events.Event) error {
	switch e := event.(type) {
	case events.ChainAdded:
		err := r.sink.Headline("Chain added!")
		if err != nil {
			return err
		}
		return r.sink.Table(output.NewRow("Chain ID", e.ChainID))
	default:
		return NewUnexpectedEventError("chain", event)
	}
}

// ChainService manages the chain registry.
type ChainService interface {
	AddChain(ctx context.Context, req chain.AddChainRequest) (*ibc.Chain, error)
	Chain(chainID string) (*ibc.Chain, error)
}

// ExecuteAddChain registers a chain, rendering to sink.
func ExecuteAddChain(
	ctx context.Context,
	dispatcher *Dispatcher,
	sink *output.Sink,
	req chain.AddChainRequest,
	newService func(emitter module.EventEmitter) ChainService,
) error {
	return dispatcher.Dispatch(ctx, NewChainRenderer(sink), func(ctx context.Context, emitter module.EventEmitter) error {
		_, err := newService(emitter).AddChain(ctx, req)
		return err
	})
}

// ChainView is the operator facing representation of a chain record.
type ChainView struct {
	ChainID            string                 `yaml:"chain_id"`
	GatewayAddr        string                 `yaml:"gateway_addr"`
	Fee                string                 `yaml:"fee"`
	GasLimit           uint64                 `yaml:"gas_limit"`
	TrustingPeriod     string                 `yaml:"trusting_period"`
	MaxClockDrift      string                 `yaml:"max_clock_drift"`
	RPCTimeout         string                 `yaml:"rpc_timeout"`
	Diversifier        string                 `yaml:"diversifier"`
	PortID             string                 `yaml:"port_id"`
	ConsensusTimestamp string                 `yaml:"consensus_timestamp"`
	Sequence           uint64                 `yaml:"sequence"`
	PacketSequence     uint64                 `yaml:"packet_sequence"`
	PublicKeyAlgo      string                 `yaml:"public_key_algo"`
	PublicKey          string                 `yaml:"public_key"`
	Connection         *ConnectionDetailsView `yaml:"connection_details,omitempty"`
	CreatedAt          string                 `yaml:"created_at"`
	UpdatedAt          string                 `yaml:"updated_at"`
}

type ConnectionDetailsView struct {
	SoloMachineClientID     string `yaml:"solo_machine_client_id"`
	TendermintClientID      string `yaml:"tendermint_client_id"`
	SoloMachineConnectionID string `yaml:"solo_machine_connection_id"`
	TendermintConnectionID  string `yaml:"tendermint_connection_id"`
	SoloMachineChannelID    string `yaml:"solo_machine_channel_id"`
	TendermintChannelID     string `yaml:"tendermint_channel_id"`
}

func NewChainView(c *ibc.Chain) ChainView {
	view := ChainView{
		ChainID:            c.ID.String(),
		GatewayAddr:        c.Config.GatewayAddr,
		Fee:                fmt.Sprintf("%d%s", c.Config.Fee.Amount, c.Config.Fee.Denom),
		GasLimit:           c.Config.Fee.GasLimit,
		TrustingPeriod:     c.Config.TrustingPeriod.String(),
		MaxClockDrift:      c.Config.MaxClockDrift.String(),
		RPCTimeout:         c.Config.RPCTimeout.String(),
		Diversifier:        c.Config.Diversifier,
		PortID:             c.Config.PortID.String(),
		ConsensusTimestamp: c.ConsensusTimestamp.Format(time.RFC3339),
		Sequence:           c.Sequence,
		PacketSequence:     c.PacketSequence,
		PublicKeyAlgo:      c.PublicKeyAlgo,
		PublicKey:          fmt.Sprintf("%X", c.PublicKey),
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          c.UpdatedAt.Format(time.RFC3339),
	}
	if d := c.ConnectionDetails; d != nil {
		view.Connection = &ConnectionDetailsView{
			SoloMachineClientID:     d.SoloMachineClientID.String(),
			TendermintClientID:      d.TendermintClientID.String(),
			SoloMachineConnectionID: d.SoloMachineConnectionID.String(),
			TendermintConnectionID:  d.TendermintConnectionID.String(),
			SoloMachineChannelID:    d.SoloMachineChannelID.String(),
			TendermintChannelID:     d.TendermintChannelID.String(),
		}
	}
	return view
}

// Output formats of `chain show`.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// ShowChain prints the chain with the given ID in the requested format.
func ShowChain(service ChainService, sink *output.Sink, chainID string, format string) error {
	c, err := service.Chain(chainID)
	if err != nil {
		return err
	}
	view := NewChainView(c)

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("could not encode chain: %w", err)
		}
		return sink.Raw(data)
	case FormatTable, "":
		rows := []output.Row{
			output.NewRow("Chain ID", view.ChainID),
			output.NewRow("Gateway", view.GatewayAddr),
			output.NewRow("Fee", view.Fee),
			output.NewRow("Gas limit", view.GasLimit),
			output.NewRow("Trusting period", view.TrustingPeriod),
			output.NewRow("Max clock drift", view.MaxClockDrift),
			output.NewRow("RPC timeout", view.RPCTimeout),
			output.NewRow("Diversifier", view.Diversifier),
			output.NewRow("Port ID", view.PortID),
			output.NewRow("Consensus timestamp", view.ConsensusTimestamp),
			output.NewRow("Sequence", view.Sequence),
			output.NewRow("Packet sequence", view.PacketSequence),
			output.NewRow("Public key algo", view.PublicKeyAlgo),
			output.NewRow("Public key", view.PublicKey),
		}
		if d := view.Connection; d != nil {
			rows = append(rows,
				output.NewRow("Solo machine client ID", d.SoloMachineClientID),
				output.NewRow("Tendermint client ID", d.TendermintClientID),
				output.NewRow("Solo machine connection ID", d.SoloMachineConnectionID),
				output.NewRow("Tendermint connection ID", d.TendermintConnectionID),
				output.NewRow("Solo machine channel ID", d.SoloMachineChannelID),
				output.NewRow("Tendermint channel ID", d.TendermintChannelID),
			)
		}
		rows = append(rows,
			output.NewRow("Created at", view.CreatedAt),
			output.NewRow("Updated at", view.UpdatedAt),
		)
		return sink.Table(rows...)
	default:
		return fmt.Errorf("unknown output format %q (expected %s or %s)", format, FormatTable, FormatYAML)
	}
}
