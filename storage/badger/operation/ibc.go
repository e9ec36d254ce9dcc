package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/solo-machine/solo-machine/model/ibc"
)

// InsertTendermintClient stores a new tendermint client hosted by the solo machine.
// Returns storage.ErrAlreadyExists if the client ID is taken.
func InsertTendermintClient(clientID ibc.Identifier, state *ibc.TendermintClientState) func(*badger.Txn) error {
	return insert(makePrefix(codeTendermintClient, clientID), state)
}

// UpdateTendermintClient overwrites an existing tendermint client.
// Returns storage.ErrNotFound if the client does not exist.
func UpdateTendermintClient(clientID ibc.Identifier, state *ibc.TendermintClientState) func(*badger.Txn) error {
	return update(makePrefix(codeTendermintClient, clientID), state)
}

// RetrieveTendermintClient retrieves a tendermint client.
// Returns storage.ErrNotFound if the client does not exist.
func RetrieveTendermintClient(clientID ibc.Identifier, state *ibc.TendermintClientState) func(*badger.Txn) error {
	return retrieveClientUTC(makePrefix(codeTendermintClient, clientID), state)
}

// InsertConnection stores the solo machine's end of a new connection.
// Returns storage.ErrAlreadyExists if the connection ID is taken.
func InsertConnection(connectionID ibc.Identifier, end *ibc.ConnectionEnd) func(*badger.Txn) error {
	return insert(makePrefix(codeConnection, connectionID), end)
}

// UpdateConnection overwrites the solo machine's end of an existing connection.
// Returns storage.ErrNotFound if the connection does not exist.
func UpdateConnection(connectionID ibc.Identifier, end *ibc.ConnectionEnd) func(*badger.Txn) error {
	return update(makePrefix(codeConnection, connectionID), end)
}

// RetrieveConnection retrieves the solo machine's end of a connection.
// Returns storage.ErrNotFound if the connection does not exist.
func RetrieveConnection(connectionID ibc.Identifier, end *ibc.ConnectionEnd) func(*badger.Txn) error {
	return retrieve(makePrefix(codeConnection, connectionID), end)
}

// InsertChannel stores the solo machine's end of a new channel.
// Returns storage.ErrAlreadyExists if the port/channel pair is taken.
func InsertChannel(portID, channelID ibc.Identifier, end *ibc.ChannelEnd) func(*badger.Txn) error {
	return insert(makePrefix(codeChannel, portID, channelID), end)
}

// UpdateChannel overwrites the solo machine's end of an existing channel.
// Returns storage.ErrNotFound if the channel does not exist.
func UpdateChannel(portID, channelID ibc.Identifier, end *ibc.ChannelEnd) func(*badger.Txn) error {
	return update(makePrefix(codeChannel, portID, channelID), end)
}

// RetrieveChannel retrieves the solo machine's end of a channel.
// Returns storage.ErrNotFound if the channel does not exist.
func RetrieveChannel(portID, channelID ibc.Identifier, end *ibc.ChannelEnd) func(*badger.Txn) error {
	return retrieve(makePrefix(codeChannel, portID, channelID), end)
}
