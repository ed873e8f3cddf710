package elkm1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// testConn returns a real, unconnected conn.Connection. Send/SendRaw only
// touch the in-memory write queue, so descFetch can be exercised without
// a live socket.
func testConn() *conn.Connection {
	return conn.NewConnection(conn.Config{Scheme: conn.SchemeTCP, Host: "test"}, nil, nil)
}

func TestSetFieldNoopOnUnchangedValue(t *testing.T) {
	e := newEntity(0, "Zone")
	var status int
	setField(&e, "self", &status, 0, "status", true)
	assert.Empty(t, e.changeset, "setattr with unchanged value must not stage anything")
}

func TestSetFieldStagesAndFlushesOnClose(t *testing.T) {
	e := newEntity(0, "Zone")
	var received map[string]any
	e.AddObserver(func(self any, changes map[string]any) {
		received = changes
	})

	var status int
	setField(&e, "self", &status, 1, "status", false)
	assert.Nil(t, received, "observer must not fire before close")
	assert.Equal(t, 1, e.changeset["status"])

	var other int
	setField(&e, "self", &other, 2, "other", true)
	require.NotNil(t, received)
	assert.Equal(t, 1, received["status"])
	assert.Equal(t, 2, received["other"])
	assert.Empty(t, e.changeset, "changeset must clear after flush")
}

func TestSetNameTransitionsConfiguredOnce(t *testing.T) {
	e := newEntity(4, "Zone")
	assert.False(t, e.Configured())
	assert.Equal(t, "Zone-005", e.Name())

	e.setName("self", "Front Door", true)
	assert.True(t, e.Configured())
	assert.Equal(t, "Front Door", e.Name())

	var flushes int
	e.AddObserver(func(any, map[string]any) { flushes++ })
	e.setName("self", "Front Door", true)
	assert.Zero(t, flushes, "re-applying the same name must not notify")
}

func TestRemoveObserverStopsFutureDelivery(t *testing.T) {
	e := newEntity(0, "Zone")
	var calls int
	obs := func(any, map[string]any) { calls++ }
	e.AddObserver(obs)
	e.RemoveObserver(obs)

	var v int
	setField(&e, "self", &v, 1, "v", true)
	assert.Zero(t, calls)
}

func TestDescFetchTerminatesOutOfRange(t *testing.T) {
	applied := map[int]string{}
	d := newDescFetch(testConn(), descZone, 2, func(unit int, name string) {
		applied[unit] = name
	})

	d.start()
	d.handle(message.Description{DescType: int(descZone), Unit: 0, Name: "Front Door"})
	d.handle(message.Description{DescType: int(descZone), Unit: 1, Name: "Garage"})
	d.handle(message.Description{DescType: int(descZone), Unit: 2, Name: "Zone-003"}) // out of range: terminates

	assert.False(t, d.active, "walk must return to Idle once the panel echoes an out-of-range unit")
	assert.Equal(t, "Front Door", applied[0])
	assert.Equal(t, "Garage", applied[1])
	assert.NotContains(t, applied, 2)
}

func TestDescFetchSkipsPlaceholderUserNames(t *testing.T) {
	applied := map[int]string{}
	d := newDescFetch(testConn(), descUser, 3, func(unit int, name string) {
		applied[unit] = name
	})

	d.start()
	d.handle(message.Description{DescType: int(descUser), Unit: 0, Name: "USER 001"})
	d.handle(message.Description{DescType: int(descUser), Unit: 1, Name: "Alice"})

	assert.NotContains(t, applied, 0, "placeholder USER NNN names must be skipped")
	assert.Equal(t, "Alice", applied[1])
}

func TestDescFetchIgnoresOtherTypesAndIdleTraffic(t *testing.T) {
	applied := map[int]string{}
	d := newDescFetch(testConn(), descZone, 5, func(unit int, name string) {
		applied[unit] = name
	})

	// Not active yet: an SD arriving before start() must be ignored.
	d.handle(message.Description{DescType: int(descZone), Unit: 0, Name: "Should be ignored"})
	assert.Empty(t, applied)

	d.start()
	// A description for a different collection's desc_type must be ignored.
	d.handle(message.Description{DescType: int(descArea), Unit: 0, Name: "Wrong Type"})
	assert.Empty(t, applied)
}
