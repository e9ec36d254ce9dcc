package gateway

import (
	"github.com/rs/zerolog"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/rpc"
)

// Factory creates gateway clients for the chains a flow operates on.
type Factory struct {
	log    zerolog.Logger
	signer crypto.Signer
	opts   []Option
}

var _ rpc.Factory = (*Factory)(nil)

func NewFactory(log zerolog.Logger, signer crypto.Signer, opts ...Option) *Factory {
	return &Factory{
		log:    log,
		signer: signer,
		opts:   opts,
	}
}

func (f *Factory) Connect(chain *ibc.Chain) (rpc.Chain, error) {
	return NewClient(f.log, chain, f.signer, f.opts...)
}
