package elkm1

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachIsIdempotent(t *testing.T) {
	n := NewNotifier()
	var calls int
	h := func(string, any) { calls++ }

	n.Attach("VN", h)
	n.Attach("VN", h)
	n.Notify("VN", nil)

	assert.Equal(t, 1, calls, "attaching the same handler twice must not duplicate dispatch")
}

func TestDetachIsSilentWhenAbsent(t *testing.T) {
	n := NewNotifier()
	assert.NotPanics(t, func() {
		n.Detach("VN", func(string, any) {})
	})
}

func TestNotifyDispatchesInAttachOrder(t *testing.T) {
	n := NewNotifier()
	var order []int
	n.Attach("ZC", func(string, any) { order = append(order, 1) })
	n.Attach("ZC", func(string, any) { order = append(order, 2) })
	n.Attach("ZC", func(string, any) { order = append(order, 3) })

	n.Notify("ZC", nil)

	require.Equal(t, []int{1, 2, 3}, order)
}

func TestNotifyIsReentrantSafeDuringDispatch(t *testing.T) {
	n := NewNotifier()
	var second, third bool

	secondHandler := func(string, any) { second = true }
	thirdHandler := func(string, any) { third = true }
	firstHandler := func(string, any) {
		// attach/detach mid-dispatch: must not affect this round's snapshot
		n.Attach("ZC", secondHandler)
		n.Detach("ZC", thirdHandler)
	}

	n.Attach("ZC", firstHandler)
	n.Attach("ZC", thirdHandler)
	n.Notify("ZC", nil)

	assert.False(t, second, "a handler attached mid-dispatch must not run in the same round")
	assert.True(t, third, "a handler detached mid-dispatch must still run out this round's snapshot")

	second = false
	n.Notify("ZC", nil)
	assert.True(t, second, "the handler attached in the previous round must run on the next")
}

func TestPanickingSubscriberDoesNotAbortDispatch(t *testing.T) {
	n := NewNotifier()
	var ranAfterPanic bool

	n.Attach("ZC", func(string, any) { panic("boom") })
	n.Attach("ZC", func(string, any) { ranAfterPanic = true })

	assert.NotPanics(t, func() { n.Notify("ZC", nil) })
	assert.True(t, ranAfterPanic, "a peer subscriber must still run after one panics")
}

func TestNotifyIsConcurrencySafe(t *testing.T) {
	n := NewNotifier()
	var mu sync.Mutex
	count := 0
	n.Attach("ZC", func(string, any) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Notify("ZC", nil)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, count)
}
