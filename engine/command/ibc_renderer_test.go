package command_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-machine/solo-machine/engine/command"
	"github.com/solo-machine/solo-machine/model/events"
	"github.com/solo-machine/solo-machine/module/output"
	"github.com/solo-machine/solo-machine/utils/unittest"
)

func render(t *testing.T, event events.Event) string {
	var buf bytes.Buffer
	renderer := command.NewIBCRenderer(output.NewSink(&buf, output.ColorNever))
	require.NoError(t, renderer.Render(event))
	return buf.String()
}

func TestIBCRenderer_Tables(t *testing.T) {
	t.Run("tokens sent", func(t *testing.T) {
		out := render(t, events.TokensSent{
			ChainID:     "testchain-1",
			FromAddress: "cosmos1from",
			ToAddress:   "cosmos1to",
			Amount:      42,
			Denom:       "stake",
		})
		assert.Contains(t, out, "Tokens sent!\n\n")
		for _, s := range []string{"Chain ID", "testchain-1", "From", "cosmos1from", "To", "cosmos1to", "Amount", "42", "Denom", "stake"} {
			assert.Contains(t, out, s)
		}
	})

	t.Run("tokens received", func(t *testing.T) {
		out := render(t, events.TokensReceived{ChainID: "testchain-1", Amount: 1, Denom: "uatom"})
		assert.Contains(t, out, "Tokens received!")
		assert.Contains(t, out, "uatom")
	})

	t.Run("signer updated", func(t *testing.T) {
		key := unittest.PublicKeyFixture()
		out := render(t, events.SignerUpdated{ChainID: "testchain-1", OldPublicKey: key, NewPublicKey: key})
		assert.Contains(t, out, "Signer updated!")
		assert.Contains(t, out, "testchain-1")
	})

	t.Run("connection established", func(t *testing.T) {
		details := unittest.ConnectionDetailsFixture()
		out := render(t, events.ConnectionEstablished{ChainID: "testchain-1", ConnectionDetails: details})
		assert.Contains(t, out, "Connection established!")
		for _, label := range []string{
			"Solo machine client ID", "Tendermint client ID",
			"Solo machine connection ID", "Tendermint connection ID",
			"Solo machine channel ID", "Tendermint channel ID",
		} {
			assert.Contains(t, out, label)
		}
		for _, id := range details.Identifiers() {
			assert.Contains(t, out, id.String())
		}
	})
}

func TestIBCRenderer_Milestones(t *testing.T) {
	cases := map[string]events.Event{
		"Created solo machine client on IBC enabled chain [Client ID = 06-solomachine-0]": events.CreatedSoloMachineClient{ClientID: "06-solomachine-0"},
		"Created tendermint client on solo machine [Client ID = 07-tendermint-0]":         events.CreatedTendermintClient{ClientID: "07-tendermint-0"},
		"Initialized connection on IBC enabled chain [Connection ID = connection-0]":      events.InitializedConnectionOnTendermint{ConnectionID: "connection-0"},
		"Initialized connection on solo machine [Connection ID = connection-1]":           events.InitializedConnectionOnSoloMachine{ConnectionID: "connection-1"},
		"Confirmed connection on IBC enabled chain [Connection ID = connection-0]":        events.ConfirmedConnectionOnTendermint{ConnectionID: "connection-0"},
		"Confirmed connection on solo machine [Connection ID = connection-1]":             events.ConfirmedConnectionOnSoloMachine{ConnectionID: "connection-1"},
		"Initialized channel on IBC enabled chain [Channel ID = channel-0]":               events.InitializedChannelOnTendermint{ChannelID: "channel-0"},
		"Initialized channel on solo machine [Channel ID = channel-1]":                    events.InitializedChannelOnSoloMachine{ChannelID: "channel-1"},
		"Confirmed channel on IBC enabled chain [Channel ID = channel-0]":                 events.ConfirmedChannelOnTendermint{ChannelID: "channel-0"},
		"Confirmed channel on solo machine [Channel ID = channel-1]":                      events.ConfirmedChannelOnSoloMachine{ChannelID: "channel-1"},
	}
	for expected, event := range cases {
		assert.Equal(t, expected+"\n", render(t, event))
	}
}

func TestIBCRenderer_RejectsChainEvents(t *testing.T) {
	renderer := command.NewIBCRenderer(output.NewSink(&bytes.Buffer{}, output.ColorNever))
	err := renderer.Render(events.ChainAdded{ChainID: "testchain-1"})
	require.Error(t, err)
	assert.True(t, command.IsUnexpectedEventError(err))
	assert.Contains(t, err.Error(), "non-ibc event in ibc command")
}
