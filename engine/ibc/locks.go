package ibc

import (
	"context"
	"sync"

	model "github.com/solo-machine/solo-machine/model/ibc"
)

// ChainLocks serializes flows operating on the same chain. Flows on different chains
// proceed concurrently.
type ChainLocks struct {
	mu    sync.Mutex
	locks map[model.ChainID]*chainLock
}

type chainLock struct {
	held chan struct{}
	refs int
}

func NewChainLocks() *ChainLocks {
	return &ChainLocks{locks: make(map[model.ChainID]*chainLock)}
}

// Lock blocks until the chain's lock is acquired or the context is done. The returned
// function releases the lock and must be called exactly once.
func (l *ChainLocks) Lock(ctx context.Context, chainID model.ChainID) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[chainID]
	if !ok {
		lock = &chainLock{held: make(chan struct{}, 1)}
		l.locks[chainID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.held <- struct{}{}:
		return func() {
			<-lock.held
			l.release(chainID, lock)
		}, nil
	case <-ctx.Done():
		l.release(chainID, lock)
		return nil, ctx.Err()
	}
}

func (l *ChainLocks) release(chainID model.ChainID, lock *chainLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, chainID)
	}
}
