package storage

import (
	"github.com/solo-machine/solo-machine/model/ibc"
)

// IBC persists the IBC objects hosted by the solo machine itself: the tendermint
// client tracking the remote chain and the solo machine's ends of connections and
// channels.
type IBC interface {

	// StoreClient inserts a new tendermint client.
	// Returns ErrAlreadyExists if the client ID is taken.
	StoreClient(clientID ibc.Identifier, state *ibc.TendermintClientState) error

	// Client returns the tendermint client with the given ID.
	// Returns ErrNotFound if the client is unknown.
	Client(clientID ibc.Identifier) (*ibc.TendermintClientState, error)

	// UpdateClient overwrites an existing tendermint client.
	// Returns ErrNotFound if the client is unknown.
	UpdateClient(clientID ibc.Identifier, state *ibc.TendermintClientState) error

	// StoreConnection inserts a new connection end.
	// Returns ErrAlreadyExists if the connection ID is taken.
	StoreConnection(connectionID ibc.Identifier, end *ibc.ConnectionEnd) error

	// Connection returns the connection end with the given ID.
	// Returns ErrNotFound if the connection is unknown.
	Connection(connectionID ibc.Identifier) (*ibc.ConnectionEnd, error)

	// UpdateConnection overwrites an existing connection end.
	// Returns ErrNotFound if the connection is unknown.
	UpdateConnection(connectionID ibc.Identifier, end *ibc.ConnectionEnd) error

	// StoreChannel inserts a new channel end.
	// Returns ErrAlreadyExists if the port/channel pair is taken.
	StoreChannel(portID, channelID ibc.Identifier, end *ibc.ChannelEnd) error

	// Channel returns the channel end with the given port and channel IDs.
	// Returns ErrNotFound if the channel is unknown.
	Channel(portID, channelID ibc.Identifier) (*ibc.ChannelEnd, error)

	// UpdateChannel overwrites an existing channel end.
	// Returns ErrNotFound if the channel is unknown.
	UpdateChannel(portID, channelID ibc.Identifier, end *ibc.ChannelEnd) error
}
