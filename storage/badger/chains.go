package badger

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v2"

	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/storage"
	"github.com/solo-machine/solo-machine/storage/badger/operation"
)

// Chains stores chains in badger behind an LRU cache. Writes hold mu so the
// cache never observes commits out of order.
type Chains struct {
	mu    sync.RWMutex
	db    *badger.DB
	cache *cache[ibc.ChainID, ibc.Chain]
	now   func() time.Time
}

var _ storage.Chains = (*Chains)(nil)

func NewChains(db *badger.DB) *Chains {
	retrieve := func(chainID ibc.ChainID) func(*badger.Txn) (ibc.Chain, error) {
		return func(tx *badger.Txn) (ibc.Chain, error) {
			var chain ibc.Chain
			err := operation.RetrieveChain(chainID, &chain)(tx)
			return chain, err
		}
	}
	return &Chains{
		db:    db,
		cache: newCache[ibc.ChainID, ibc.Chain](defaultCacheLimit, retrieve, cloneChain),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func cloneChain(chain ibc.Chain) ibc.Chain {
	return *chain.Copy()
}

func (c *Chains) Store(chain *ibc.Chain) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.Update(operation.InsertChain(chain))
	if err != nil {
		return operation.TerminateOnFullDisk(err)
	}
	c.cache.Insert(chain.ID, *chain)
	return nil
}

func (c *Chains) ByID(chainID ibc.ChainID) (*ibc.Chain, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var chain ibc.Chain
	err := c.db.View(func(tx *badger.Txn) error {
		var err error
		chain, err = c.cache.Get(chainID)(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("could not retrieve chain %s: %w", chainID, err)
	}
	return &chain, nil
}

func (c *Chains) All() ([]*ibc.Chain, error) {
	var chains []*ibc.Chain
	err := c.db.View(operation.LookupChains(&chains))
	if err != nil {
		return nil, fmt.Errorf("could not lookup chains: %w", err)
	}
	return chains, nil
}

func (c *Chains) Update(chainID ibc.ChainID, modify func(*ibc.Chain) error) (*ibc.Chain, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var chain ibc.Chain
	err := operation.RetryOnConflict(c.db.Update, func(tx *badger.Txn) error {
		chain = ibc.Chain{}
		err := operation.RetrieveChain(chainID, &chain)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve chain %s: %w", chainID, err)
		}
		err = modify(&chain)
		if err != nil {
			return err
		}
		if chain.ID != chainID {
			return fmt.Errorf("chain id must not change (%s -> %s)", chainID, chain.ID)
		}
		chain.UpdatedAt = c.now()
		return operation.UpdateChain(&chain)(tx)
	})
	if err != nil {
		c.cache.Remove(chainID)
		return nil, operation.TerminateOnFullDisk(err)
	}
	c.cache.Insert(chainID, chain)
	return &chain, nil
}

func (c *Chains) ConsumeSequence(chainID ibc.ChainID) (uint64, error) {
	var sequence uint64
	_, err := c.Update(chainID, func(chain *ibc.Chain) error {
		sequence = chain.Sequence
		chain.Sequence++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("could not consume sequence: %w", err)
	}
	return sequence, nil
}

func (c *Chains) ConsumePacketSequence(chainID ibc.ChainID) (uint64, error) {
	var sequence uint64
	_, err := c.Update(chainID, func(chain *ibc.Chain) error {
		sequence = chain.PacketSequence
		chain.PacketSequence++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("could not consume packet sequence: %w", err)
	}
	return sequence, nil
}

func (c *Chains) SetConnectionDetails(chainID ibc.ChainID, details ibc.ConnectionDetails) error {
	_, err := c.Update(chainID, func(chain *ibc.Chain) error {
		if chain.ConnectionDetails != nil {
			return fmt.Errorf("chain %s is already connected: %w", chainID, storage.ErrAlreadyExists)
		}
		chain.ConnectionDetails = &details
		return nil
	})
	return err
}
