package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Setting is one of the panel's custom values, each displayed as a plain
// number, a timer or a time-of-day (§3).
type Setting struct {
	entity

	ValueFormat message.SettingFormat
	Value       int

	conn *conn.Connection
}

// Set writes the setting's value using its current ValueFormat.
func (s *Setting) Set(value int) {
	if s.ValueFormat == message.SettingFormatTimeOfDay {
		msg, err := message.WriteSettingTimeOfDay(s.index, value/256, value%256)
		if err != nil {
			return
		}
		s.conn.Send(msg, false)
		return
	}
	s.conn.Send(message.WriteSettingNumber(s.index, value), false)
}

// Settings holds all 20 Setting elements and their handlers (§4.5).
type Settings struct {
	settings [20]*Setting
	conn     *conn.Connection
	desc     *descFetch
}

func newSettings(c *conn.Connection, n *Notifier) *Settings {
	ss := &Settings{conn: c}
	for i := range ss.settings {
		ss.settings[i] = &Setting{entity: newEntity(i, "Setting"), conn: c}
	}
	ss.desc = newDescFetch(c, descSetting, len(ss.settings), ss.applyName)

	n.Attach(string(message.CodeCR), ss.onCR)
	n.Attach(string(message.CodeSD), ss.onSD)
	return ss
}

// Get returns the setting at base-0 index, or nil if out of range.
func (ss *Settings) Get(index int) *Setting {
	if index < 0 || index >= len(ss.settings) {
		return nil
	}
	return ss.settings[index]
}

// All returns every setting, in index order.
func (ss *Settings) All() []*Setting { return ss.settings[:] }

// sync requests all custom values, then launches the setting description
// walk (§4.5).
func (ss *Settings) sync() {
	ss.conn.Send(message.RequestAllCustomValues(), false)
	ss.desc.start()
}

func (ss *Settings) applyName(unit int, name string) {
	ss.settings[unit].setName(ss.settings[unit], name, true)
}

func (ss *Settings) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		ss.desc.handle(msg)
	}
}

// onCR applies either a single custom value or, when the panel reports the
// "all units" run, every configured setting at once (§4.5).
func (ss *Settings) onCR(_ string, data any) {
	msg, ok := data.(message.CustomValue)
	if !ok {
		return
	}
	if msg.All {
		for i, v := range msg.Values {
			setting := ss.settings[i]
			setField(&setting.entity, setting, &setting.ValueFormat, v.Format, "value_format", false)
			setField(&setting.entity, setting, &setting.Value, v.Value, "value", true)
		}
		return
	}
	setting := ss.Get(msg.Index)
	if setting == nil {
		return
	}
	v := msg.Values[0]
	setField(&setting.entity, setting, &setting.ValueFormat, v.Format, "value_format", false)
	setField(&setting.entity, setting, &setting.Value, v.Value, "value", true)
}
