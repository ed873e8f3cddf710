// Package elkm1 is a client library for a hardware security/automation
// panel that speaks a proprietary ASCII line protocol over TCP (optionally
// TLS) or a serial link. It opens a long-lived connection, authenticates
// when required, performs a bulk synchronization of the panel's state, then
// tracks live state changes via unsolicited update messages while letting
// callers submit commands and receive notifications (§1).
//
// The wire codec lives in the message subpackage and the transport/framing
// layer lives in conn; this package wires both together with the element
// model, the domain handlers and the Notifier event bus.
package elkm1

import (
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

// EventHandler receives a decoded message.Message, a lifecycle payload, or
// nil for lifecycle events that carry no data (§4.2, §6).
type EventHandler func(event string, data any)

// Notifier is a multi-subscriber event bus keyed by event name: every wire
// message code plus the lifecycle events connected, disconnected, login,
// timeout, sync_complete and unknown (§4.2).
type Notifier struct {
	mu   sync.Mutex
	subs map[string][]EventHandler
}

// NewNotifier returns an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string][]EventHandler)}
}

func funcPointer(h EventHandler) uintptr {
	return reflect.ValueOf(h).Pointer()
}

// Attach registers h for event. It is idempotent: attaching the same
// function value twice for the same event is a no-op, matching the
// underlying dict-of-list-of-callables semantics (§4.2). Identity is
// compared by code pointer, the Go analogue of Python's callable identity;
// two distinct closures wrapping the same logic are not deduplicated.
func (n *Notifier) Attach(event string, h EventHandler) {
	if h == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	p := funcPointer(h)
	for _, existing := range n.subs[event] {
		if funcPointer(existing) == p {
			return
		}
	}
	n.subs[event] = append(n.subs[event], h)
}

// Detach removes h from event's subscriber list. It is silent if h was
// never attached (§4.2).
func (n *Notifier) Detach(event string, h EventHandler) {
	if h == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	list := n.subs[event]
	p := funcPointer(h)
	for i, existing := range list {
		if funcPointer(existing) == p {
			n.subs[event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Notify calls every subscriber of event with data, in attachment order,
// over a snapshot of the subscriber list so that a subscriber may attach or
// detach during dispatch without disturbing the current round (§4.2). A
// subscriber that panics is logged and skipped; it never aborts dispatch to
// its peers (§7 SubscriberError).
func (n *Notifier) Notify(event string, data any) {
	n.mu.Lock()
	snapshot := make([]EventHandler, len(n.subs[event]))
	copy(snapshot, n.subs[event])
	n.mu.Unlock()

	for _, h := range snapshot {
		n.callSafely(event, h, data)
	}
}

func (n *Notifier) callSafely(event string, h EventHandler, data any) {
	defer func() {
		if r := recover(); r != nil {
			Logger.WithFields(logrus.Fields{"event": event, "panic": r}).
				Error("subscriber panicked, continuing dispatch")
		}
	}()
	h(event, data)
}
