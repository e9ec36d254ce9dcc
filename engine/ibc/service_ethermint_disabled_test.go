//go:build !ethermint

package ibc_test

import (
	"context"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/engine/ibc"
	"github.com/solo-machine/solo-machine/utils/unittest"
)

// A disabled algorithm is rejected before the chain is looked up or contacted: the
// mocks carry no expectations and fail the test on any call.
func (s *ServiceSuite) TestUpdateSigner_DisabledAlgorithm() {
	chain := s.storeConnectedChain()

	err := s.service.UpdateSigner(context.Background(), chain.ID, unittest.PublicKeyFixture().Hex(), crypto.EthSecp256k1Name, ibc.DefaultMemo)
	s.Require().Error(err)
	s.Assert().True(ibc.IsInvalidInputError(err))
	s.Assert().ErrorIs(err, crypto.ErrCapabilityNotEnabled)
	s.Assert().Empty(s.recorder.Events())
}
