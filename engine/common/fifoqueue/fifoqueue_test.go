package fifoqueue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFifoQueue_Order(t *testing.T) {
	queue, err := NewFifoQueue[int]()
	require.NoError(t, err)

	_, ok := queue.Pop()
	require.False(t, ok)

	for i := 0; i < 100; i++ {
		queue.Push(i)
	}

	for i := 0; i < 100; i++ {
		element, ok := queue.Pop()
		require.True(t, ok)
		require.Equal(t, i, element)
	}
	_, ok = queue.Pop()
	require.False(t, ok)
}

func TestFifoQueue_LengthObserver(t *testing.T) {
	var lengths []int
	queue, err := NewFifoQueue[int](WithLengthObserver(func(l int) { lengths = append(lengths, l) }))
	require.NoError(t, err)

	queue.Push(1)
	queue.Push(2)
	queue.Pop()
	queue.Pop()
	queue.Pop() // empty, not observed

	assert.Equal(t, []int{1, 2, 1, 0}, lengths)

	_, err = NewFifoQueue[int](WithLengthObserver(nil))
	require.Error(t, err)
}

func TestFifoQueue_ConcurrentProducerConsumer(t *testing.T) {
	queue, err := NewFifoQueue[int]()
	require.NoError(t, err)

	const n = 10000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			queue.Push(i)
		}
	}()

	received := make([]int, 0, n)
	for len(received) < n {
		if element, ok := queue.Pop(); ok {
			received = append(received, element)
		}
	}
	wg.Wait()

	for i, element := range received {
		require.Equal(t, i, element)
	}
}
