package elkm1

import (
	"fmt"
	"reflect"

	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Observer is called once a domain element's changeset closes: self is the
// concrete element (e.g. *Zone), changes holds every attribute mutated
// since the previous notification, keyed by field name (§3, §4.4).
type Observer func(self any, changes map[string]any)

// entity is the bookkeeping every domain element embeds: an immutable
// index, a human-readable name defaulting to "<Kind>-NNN", a configured
// flag that flips false->true exactly once (§4.4), a pending changeset and
// its observers (§3).
type entity struct {
	index      int
	name       string
	configured bool
	observers  []Observer
	changeset  map[string]any
}

func newEntity(index int, kind string) entity {
	return entity{index: index, name: fmt.Sprintf("%s-%03d", kind, index+1)}
}

// Index returns the element's immutable base-0 position within its
// collection.
func (e *entity) Index() int { return e.index }

// Name returns the element's current human-readable label.
func (e *entity) Name() string { return e.name }

// Configured reports whether a non-default description has ever been
// applied to this element (§4.4).
func (e *entity) Configured() bool { return e.configured }

// AddObserver registers o to be called whenever this element's changeset
// closes.
func (e *entity) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// RemoveObserver undoes a prior AddObserver, identified by function
// pointer (the same identity caveat as Notifier.Detach applies).
func (e *entity) RemoveObserver(o Observer) {
	target := reflect.ValueOf(o).Pointer()
	for i, existing := range e.observers {
		if reflect.ValueOf(existing).Pointer() == target {
			e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
			return
		}
	}
}

// stage records that key changed to value, to be delivered on the next
// flush.
func (e *entity) stage(key string, value any) {
	if e.changeset == nil {
		e.changeset = make(map[string]any)
	}
	e.changeset[key] = value
}

// flush delivers the accumulated changeset to every observer, then clears
// it, iff it is non-empty (§4.4's setattr/close_changeset contract).
func (e *entity) flush(self any) {
	if len(e.changeset) == 0 {
		return
	}
	changes := e.changeset
	e.changeset = nil
	for _, o := range e.observers {
		o(self, changes)
	}
}

// setName applies a description-walk result: the name is staged only when
// it actually differs, and the configured flag transitions monotonically
// false->true the first time a non-default name lands (§4.4).
func (e *entity) setName(self any, name string, close bool) {
	if e.name != name {
		e.name = name
		e.stage("name", name)
	}
	if !e.configured {
		e.configured = true
	}
	if close {
		e.flush(self)
	}
}

// setField is the generic form of the source's reflective setattr:
// compare-assign-stage-flush against a single named field (§3, §4.4's
// "setattr with unchanged value is a no-op" invariant). Handlers pass a
// pointer to the element's typed field and the changeset key naming it.
func setField[T comparable](e *entity, self any, field *T, value T, key string, closeChangeset bool) {
	if *field != value {
		*field = value
		e.stage(key, value)
	}
	if closeChangeset {
		e.flush(self)
	}
}

// descType identifies which of the panel's description tables a
// descFetch walks (elkm1_lib/const.py's TextDescriptions, carried per
// SPEC_FULL.md's SUPPLEMENTED FEATURES).
type descType int

const (
	descZone descType = iota
	descArea
	descUser
	descKeypad
	descOutput
	descTask
	_ // TELEPHONE: no Go element represents it
	descLight
	_ // ALARM_DURATION: no Go element represents it
	descSetting
	descCounter
	descThermostat
)

// userDescriptionPattern matches the panel's placeholder user descriptions
// ("USER 001".."USER 203"), which are always returned regardless of how
// many user codes are actually configured and must be skipped rather than
// applied as a real name (§4.4).
var userDescriptionPattern = func(s string) bool {
	if len(s) != 8 || s[:5] != "USER " {
		return false
	}
	for _, c := range s[5:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// descFetch implements the per-collection description walk state machine
// from §4.4: Idle -> Awaiting(type, 0) -> Awaiting(type, n+1) -> Idle, one
// sd request at a time, the next one sent at priority so it overtakes any
// unrelated traffic queued behind it.
type descFetch struct {
	conn   *conn.Connection
	typ    descType
	count  int
	active bool

	// apply stores a description for unit on the collection's element.
	apply func(unit int, name string)
}

func newDescFetch(c *conn.Connection, typ descType, count int, apply func(unit int, name string)) *descFetch {
	return &descFetch{conn: c, typ: typ, count: count, apply: apply}
}

// start begins (or restarts) the walk at unit 0.
func (d *descFetch) start() {
	d.active = true
	d.conn.Send(message.RequestDescription(int(d.typ), 0), false)
}

// handle processes one SD decode, advancing the walk or returning it to
// Idle per §4.4. Descriptions for a different desc_type, or arriving while
// Idle, are ignored — every collection's descFetch sees every SD and
// filters on its own type, matching the source's per-collection
// subscription to the shared "SD" event.
func (d *descFetch) handle(msg message.Description) {
	if !d.active || descType(msg.DescType) != d.typ {
		return
	}
	if msg.Unit < 0 || msg.Unit >= d.count {
		d.active = false
		return
	}

	name := msg.Name
	if d.typ == descUser && userDescriptionPattern(name) {
		// leave the element's default name in place (§4.4)
	} else {
		d.apply(msg.Unit, name)
	}

	d.conn.Send(message.RequestDescription(int(d.typ), msg.Unit+1), true)
}
