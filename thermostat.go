package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Thermostat is an Omnistat/other thermostat bridged through the panel
// (§3).
type Thermostat struct {
	entity

	Mode         message.ThermostatMode
	Hold         bool
	Fan          message.ThermostatFan
	CurrentTemp  int
	HeatSetpoint int
	CoolSetpoint int
	Humidity     int

	conn *conn.Connection
}

// Set writes a single thermostat field (mode, hold, fan or a setpoint).
func (t *Thermostat) Set(field message.ThermostatField, value int) {
	t.conn.Send(message.ThermostatSet(t.index, field, value), false)
}

// Thermostats holds all 16 Thermostat elements and their handlers (§4.5).
type Thermostats struct {
	thermostats [16]*Thermostat
	conn        *conn.Connection
	desc        *descFetch
}

func newThermostats(c *conn.Connection, n *Notifier) *Thermostats {
	ts := &Thermostats{conn: c}
	for i := range ts.thermostats {
		ts.thermostats[i] = &Thermostat{entity: newEntity(i, "Thermostat"), conn: c}
	}
	ts.desc = newDescFetch(c, descThermostat, len(ts.thermostats), ts.applyName)

	n.Attach(string(message.CodeST), ts.onST)
	n.Attach(string(message.CodeTR), ts.onTR)
	n.Attach(string(message.CodeSD), ts.onSD)
	return ts
}

// Get returns the thermostat at base-0 index, or nil if out of range.
func (ts *Thermostats) Get(index int) *Thermostat {
	if index < 0 || index >= len(ts.thermostats) {
		return nil
	}
	return ts.thermostats[index]
}

// All returns every thermostat, in index order.
func (ts *Thermostats) All() []*Thermostat { return ts.thermostats[:] }

// sync launches the thermostat description walk; only thermostats that
// turn out to be named get polled, since unconfigured units don't answer
// tr (§4.5).
func (ts *Thermostats) sync() {
	ts.desc.start()
}

// applyName records a description and, the first time a thermostat
// transitions from unconfigured to configured, polls it for a full
// reading, mirroring the source's _got_desc override.
func (ts *Thermostats) applyName(unit int, name string) {
	t := ts.thermostats[unit]
	wasConfigured := t.Configured()
	t.setName(t, name, true)
	if !wasConfigured && t.Configured() {
		ts.conn.Send(message.RequestThermostat(unit), false)
	}
}

func (ts *Thermostats) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		ts.desc.handle(msg)
	}
}

func (ts *Thermostats) onST(_ string, data any) {
	msg, ok := data.(message.SingleTemp)
	if !ok || msg.Group != message.TempGroupThermostat {
		return
	}
	t := ts.Get(msg.Index)
	if t == nil {
		return
	}
	setField(&t.entity, t, &t.CurrentTemp, msg.Temp, "current_temp", true)
}

func (ts *Thermostats) onTR(_ string, data any) {
	msg, ok := data.(message.ThermostatReport)
	if !ok {
		return
	}
	t := ts.Get(msg.Index)
	if t == nil {
		return
	}
	setField(&t.entity, t, &t.Mode, msg.Mode, "mode", false)
	setField(&t.entity, t, &t.Hold, msg.Hold, "hold", false)
	setField(&t.entity, t, &t.Fan, msg.Fan, "fan", false)
	setField(&t.entity, t, &t.CurrentTemp, msg.CurrentTemp, "current_temp", false)
	setField(&t.entity, t, &t.HeatSetpoint, msg.HeatSetpoint, "heat_setpoint", false)
	setField(&t.entity, t, &t.CoolSetpoint, msg.CoolSetpoint, "cool_setpoint", false)
	setField(&t.entity, t, &t.Humidity, msg.Humidity, "humidity", true)
}
