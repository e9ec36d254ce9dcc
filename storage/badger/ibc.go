package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/storage"
	"github.com/solo-machine/solo-machine/storage/badger/operation"
)

// IBC stores the IBC objects hosted by the solo machine.
type IBC struct {
	db *badger.DB
}

var _ storage.IBC = (*IBC)(nil)

func NewIBC(db *badger.DB) *IBC {
	return &IBC{db: db}
}

func (s *IBC) StoreClient(clientID ibc.Identifier, state *ibc.TendermintClientState) error {
	return s.write(operation.InsertTendermintClient(clientID, state))
}

func (s *IBC) Client(clientID ibc.Identifier) (*ibc.TendermintClientState, error) {
	var state ibc.TendermintClientState
	err := s.db.View(operation.RetrieveTendermintClient(clientID, &state))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve client %s: %w", clientID, err)
	}
	return &state, nil
}

func (s *IBC) UpdateClient(clientID ibc.Identifier, state *ibc.TendermintClientState) error {
	return s.write(operation.UpdateTendermintClient(clientID, state))
}

func (s *IBC) StoreConnection(connectionID ibc.Identifier, end *ibc.ConnectionEnd) error {
	return s.write(operation.InsertConnection(connectionID, end))
}

func (s *IBC) Connection(connectionID ibc.Identifier) (*ibc.ConnectionEnd, error) {
	var end ibc.ConnectionEnd
	err := s.db.View(operation.RetrieveConnection(connectionID, &end))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve connection %s: %w", connectionID, err)
	}
	return &end, nil
}

func (s *IBC) UpdateConnection(connectionID ibc.Identifier, end *ibc.ConnectionEnd) error {
	return s.write(operation.UpdateConnection(connectionID, end))
}

func (s *IBC) StoreChannel(portID, channelID ibc.Identifier, end *ibc.ChannelEnd) error {
	return s.write(operation.InsertChannel(portID, channelID, end))
}

func (s *IBC) Channel(portID, channelID ibc.Identifier) (*ibc.ChannelEnd, error) {
	var end ibc.ChannelEnd
	err := s.db.View(operation.RetrieveChannel(portID, channelID, &end))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve channel %s/%s: %w", portID, channelID, err)
	}
	return &end, nil
}

func (s *IBC) UpdateChannel(portID, channelID ibc.Identifier, end *ibc.ChannelEnd) error {
	return s.write(operation.UpdateChannel(portID, channelID, end))
}

func (s *IBC) write(op func(*badger.Txn) error) error {
	return operation.TerminateOnFullDisk(operation.RetryOnConflict(s.db.Update, op))
}
