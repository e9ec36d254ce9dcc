package command_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/solo-machine/solo-machine/engine/chain"
	"github.com/solo-machine/solo-machine/engine/command"
	"github.com/solo-machine/solo-machine/model/events"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/output"
	"github.com/solo-machine/solo-machine/storage"
	bstorage "github.com/solo-machine/solo-machine/storage/badger"
	"github.com/solo-machine/solo-machine/utils/unittest"
)

func TestAddAndShowChain(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		chains := bstorage.NewChains(db)
		signer := unittest.SignerFixture(t)
		newService := func(emitter module.EventEmitter) command.ChainService {
			return chain.NewService(unittest.Logger(), chains, signer, emitter)
		}
		dispatcher := command.NewDispatcher(unittest.Logger(), nil)

		var buf bytes.Buffer
		sink := output.NewSink(&buf, output.ColorNever)
		req := chain.DefaultAddChainRequest("testchain-1", "http://localhost:1317")
		err := command.ExecuteAddChain(context.Background(), dispatcher, sink, req, newService)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Chain added!")
		assert.Contains(t, buf.String(), "testchain-1")

		t.Run("twice", func(t *testing.T) {
			err := command.ExecuteAddChain(context.Background(), dispatcher, output.NewSink(&bytes.Buffer{}, output.ColorNever), req, newService)
			require.ErrorIs(t, err, storage.ErrAlreadyExists)
		})

		service := newService(module.NoopEmitter{})

		t.Run("table", func(t *testing.T) {
			var buf bytes.Buffer
			err := command.ShowChain(service, output.NewSink(&buf, output.ColorNever), "testchain-1", command.FormatTable)
			require.NoError(t, err)
			for _, s := range []string{"Chain ID", "testchain-1", "Gateway", "http://localhost:1317", "Packet sequence", "transfer"} {
				assert.Contains(t, buf.String(), s)
			}
			assert.NotContains(t, buf.String(), "Solo machine client ID")
		})

		t.Run("yaml", func(t *testing.T) {
			var buf bytes.Buffer
			err := command.ShowChain(service, output.NewSink(&buf, output.ColorNever), "testchain-1", command.FormatYAML)
			require.NoError(t, err)

			var view command.ChainView
			require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
			assert.Equal(t, "testchain-1", view.ChainID)
			assert.Equal(t, uint64(1), view.Sequence)
			assert.Equal(t, "1000stake", view.Fee)
			assert.Nil(t, view.Connection)
		})

		t.Run("unknown format", func(t *testing.T) {
			err := command.ShowChain(service, output.NewSink(&bytes.Buffer{}, output.ColorNever), "testchain-1", "xml")
			require.Error(t, err)
		})

		t.Run("unknown chain", func(t *testing.T) {
			err := command.ShowChain(service, output.NewSink(&bytes.Buffer{}, output.ColorNever), "other-1", command.FormatTable)
			require.ErrorIs(t, err, storage.ErrNotFound)
		})
	})
}

func TestChainRenderer_RejectsIBCEvents(t *testing.T) {
	renderer := command.NewChainRenderer(output.NewSink(&bytes.Buffer{}, output.ColorNever))
	err := renderer.Render(events.CreatedSoloMachineClient{ClientID: "06-solomachine-0"})
	require.Error(t, err)
	assert.True(t, command.IsUnexpectedEventError(err))
	assert.Contains(t, err.Error(), "non-chain event in chain command")
}
