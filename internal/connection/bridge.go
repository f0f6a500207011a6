package connection

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"

	"github.com/mrz1836/suiwallet/internal/adapter"
)

// notifyBuffer is the per-notifier event channel capacity.
const notifyBuffer = 16

// bridge forwards change notifications from notifier sources. Every
// subscribe pass gets its own scope so closing it releases exactly the
// subscriptions of that pass.
type bridge struct {
	mu    sync.Mutex
	scope *event.SubscriptionScope
	wg    sync.WaitGroup
}

// subscribe tracks a subscription for every notifier in sources and calls
// onChange from a forwarding goroutine whenever one of them fires. It
// returns the number of subscriptions made. Callers must unsubscribeAll
// first; a scope left open here is closed.
func (b *bridge) subscribe(sources []adapter.Source, onChange func(adapter.Event)) int {
	scope := new(event.SubscriptionScope)

	for _, src := range sources {
		notifier, ok := src.(adapter.Notifier)
		if !ok {
			continue
		}

		ch := make(chan adapter.Event, notifyBuffer)
		sub := scope.Track(notifier.Subscribe(ch))
		if sub == nil {
			continue
		}

		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for {
				select {
				case ev := <-ch:
					select {
					case <-sub.Err():
						return
					default:
					}
					onChange(ev)
				case <-sub.Err():
					return
				}
			}
		}()
	}

	b.mu.Lock()
	stale := b.scope
	b.scope = scope
	b.mu.Unlock()

	if stale != nil {
		stale.Close()
	}
	return scope.Count()
}

// unsubscribeAll closes the current scope and waits until every forwarding
// goroutine has returned. It is a no-op when nothing is subscribed.
func (b *bridge) unsubscribeAll() {
	b.mu.Lock()
	scope := b.scope
	b.scope = nil
	b.mu.Unlock()

	if scope != nil {
		scope.Close()
	}
	b.wg.Wait()
}

// count returns the number of live subscriptions.
func (b *bridge) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.scope == nil {
		return 0
	}
	return b.scope.Count()
}
