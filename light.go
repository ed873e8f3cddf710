package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Light is a single X10/PLC lighting load controlled by housecode (§3).
type Light struct {
	entity

	Status int // 0-99

	conn *conn.Connection
}

// Level sets the light to level: 0 turns it off, 98+ turns it fully on,
// anything between uses function code 9 (preset dim) with the given ramp
// time, matching the source's three-way dispatch.
func (l *Light) Level(level int, seconds int) {
	switch {
	case level <= 0:
		if msg, err := message.TurnOffLight(l.index); err == nil {
			l.conn.Send(msg, false)
		}
	case level >= 98:
		if msg, err := message.TurnOnLight(l.index); err == nil {
			l.conn.Send(msg, false)
		}
	default:
		if msg, err := message.SetLight(l.index, 9, level, seconds); err == nil {
			l.conn.Send(msg, false)
		}
	}
}

// Toggle flips the light between off and its last-known level.
func (l *Light) Toggle() {
	if msg, err := message.ToggleLight(l.index); err == nil {
		l.conn.Send(msg, false)
	}
}

// Lights holds all 256 Light elements and their handlers (§4.5).
type Lights struct {
	lights [256]*Light
	conn   *conn.Connection
	desc   *descFetch
}

func newLights(c *conn.Connection, n *Notifier) *Lights {
	ls := &Lights{conn: c}
	for i := range ls.lights {
		ls.lights[i] = &Light{entity: newEntity(i, "Light"), conn: c}
	}
	ls.desc = newDescFetch(c, descLight, len(ls.lights), ls.applyName)

	n.Attach(string(message.CodePC), ls.onPC)
	n.Attach(string(message.CodePS), ls.onPS)
	n.Attach(string(message.CodeSD), ls.onSD)
	return ls
}

// Get returns the light at base-0 index, or nil if out of range.
func (ls *Lights) Get(index int) *Light {
	if index < 0 || index >= len(ls.lights) {
		return nil
	}
	return ls.lights[index]
}

// All returns every light, in index order.
func (ls *Lights) All() []*Light { return ls.lights[:] }

// sync polls all 4 banks of light levels, then launches the light
// description walk (§4.5).
func (ls *Lights) sync() {
	for bank := 0; bank < 4; bank++ {
		ls.conn.Send(message.PollLightBank(bank), false)
	}
	ls.desc.start()
}

func (ls *Lights) applyName(unit int, name string) {
	ls.lights[unit].setName(ls.lights[unit], name, true)
}

func (ls *Lights) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		ls.desc.handle(msg)
	}
}

func (ls *Lights) onPC(_ string, data any) {
	msg, ok := data.(message.LightStatus)
	if !ok {
		return
	}
	light := ls.Get(msg.Index)
	if light == nil {
		return
	}
	setField(&light.entity, light, &light.Status, msg.Status, "status", true)
}

func (ls *Lights) onPS(_ string, data any) {
	msg, ok := data.(message.LightBank)
	if !ok {
		return
	}
	base := msg.Bank * 64
	for i, status := range msg.Status {
		light := ls.lights[base+i]
		setField(&light.entity, light, &light.Status, status, "status", true)
	}
}
