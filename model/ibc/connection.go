package ibc

// ConnectionDetails are the identifiers of a fully established client, connection and
// channel triple on both sides. They are produced once by a successful handshake and
// never modified afterwards.
type ConnectionDetails struct {
	// SoloMachineClientID is the solo machine client hosted on the IBC enabled chain.
	SoloMachineClientID Identifier
	// TendermintClientID is the tendermint client hosted on the solo machine.
	TendermintClientID Identifier
	// SoloMachineConnectionID is the connection end on the solo machine.
	SoloMachineConnectionID Identifier
	// TendermintConnectionID is the connection end on the IBC enabled chain.
	TendermintConnectionID Identifier
	// SoloMachineChannelID is the channel end on the solo machine.
	SoloMachineChannelID Identifier
	// TendermintChannelID is the channel end on the IBC enabled chain.
	TendermintChannelID Identifier
}

// Identifiers returns all six identifiers in declaration order.
func (d ConnectionDetails) Identifiers() []Identifier {
	return []Identifier{
		d.SoloMachineClientID,
		d.TendermintClientID,
		d.SoloMachineConnectionID,
		d.TendermintConnectionID,
		d.SoloMachineChannelID,
		d.TendermintChannelID,
	}
}
