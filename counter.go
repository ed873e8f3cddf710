package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Counter is one of the panel's general-purpose numeric variables (§3).
type Counter struct {
	entity

	Value int

	conn *conn.Connection
}

// Get requests a fresh reading of this counter.
func (c *Counter) Get() {
	c.conn.Send(message.PollCounter(c.index), false)
}

// Set writes the counter to value.
func (c *Counter) Set(value int) {
	c.conn.Send(message.WriteCounter(c.index, value), false)
}

// Counters holds all 64 Counter elements and their handlers (§4.5).
type Counters struct {
	counters [64]*Counter
	conn     *conn.Connection
	desc     *descFetch
}

func newCounters(c *conn.Connection, n *Notifier) *Counters {
	cs := &Counters{conn: c}
	for i := range cs.counters {
		cs.counters[i] = &Counter{entity: newEntity(i, "Counter"), conn: c}
	}
	cs.desc = newDescFetch(c, descCounter, len(cs.counters), cs.applyName)

	n.Attach(string(message.CodeCV), cs.onCV)
	n.Attach(string(message.CodeSD), cs.onSD)
	return cs
}

// Get returns the counter at base-0 index, or nil if out of range.
func (cs *Counters) Get(index int) *Counter {
	if index < 0 || index >= len(cs.counters) {
		return nil
	}
	return cs.counters[index]
}

// All returns every counter, in index order.
func (cs *Counters) All() []*Counter { return cs.counters[:] }

// sync launches the counter description walk; values are only requested
// for counters that turn out to be named (§4.5).
func (cs *Counters) sync() {
	cs.desc.start()
}

func (cs *Counters) applyName(unit int, name string) {
	counter := cs.counters[unit]
	wasConfigured := counter.Configured()
	counter.setName(counter, name, true)
	if !wasConfigured && counter.Configured() {
		cs.conn.Send(message.PollCounter(unit), false)
	}
}

func (cs *Counters) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		cs.desc.handle(msg)
	}
}

func (cs *Counters) onCV(_ string, data any) {
	msg, ok := data.(message.CounterValue)
	if !ok {
		return
	}
	counter := cs.Get(msg.Counter)
	if counter == nil {
		return
	}
	setField(&counter.entity, counter, &counter.Value, msg.Value, "value", true)
}
