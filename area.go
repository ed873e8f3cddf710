package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Area is one of up to 8 logically partitioned groups of zones that
// arm/disarm together (§3).
type Area struct {
	entity

	ArmedStatus message.ArmedStatus
	ArmUpState  message.ArmUpState
	AlarmState  message.AlarmState
	AlarmMemory bool
	IsExit      bool
	Timer1      int
	Timer2      int
	LastLog     message.LogEntry
	ChimeMode   message.ChimeMode

	conn *conn.Connection
}

// IsArmed implements the §3 invariant: is_armed iff armed_status is not
// DISARMED.
func (a *Area) IsArmed() bool { return a.ArmedStatus.IsArmed() }

// InAlarmState implements the §3 invariant excluding the three
// "no real alarm" states.
func (a *Area) InAlarmState() bool { return a.AlarmState.InRealAlarm() }

// Arm arms (or, with message.ArmLevelDisarm, disarms) the area at level
// using code.
func (a *Area) Arm(level message.ArmLevel, code int) {
	a.conn.Send(message.Arm(level, a.index, code), false)
}

// Disarm disarms the area using code.
func (a *Area) Disarm(code int) {
	a.Arm(message.ArmLevelDisarm, code)
}

// DisplayMessage shows a two-line message on every keypad assigned to this
// area.
func (a *Area) DisplayMessage(clear int, beep bool, timeout int, line1, line2 string) {
	a.conn.Send(message.DisplayMessage(a.index, clear, beep, timeout, line1, line2), false)
}

// Bypass bypasses every zone in the area using code.
func (a *Area) Bypass(code int) {
	a.conn.Send(message.Bypass(message.BypassAllZone, a.index, code), false)
}

// ClearBypass clears every zone bypass in the area using code.
func (a *Area) ClearBypass(code int) {
	a.conn.Send(message.Bypass(-1, a.index, code), false)
}

// Areas holds all 8 Area elements and the handlers that keep them in sync
// with the panel (§4.5).
type Areas struct {
	areas [8]*Area
	conn  *conn.Connection
	desc  *descFetch
}

func newAreas(c *conn.Connection, n *Notifier) *Areas {
	as := &Areas{conn: c}
	for i := range as.areas {
		as.areas[i] = &Area{entity: newEntity(i, "Area"), conn: c}
	}
	as.desc = newDescFetch(c, descArea, len(as.areas), as.applyName)

	n.Attach(string(message.CodeAS), as.onAS)
	n.Attach(string(message.CodeAM), as.onAM)
	n.Attach(string(message.CodeEE), as.onEE)
	n.Attach(string(message.CodeKF), as.onKF)
	n.Attach(string(message.CodeLD), as.onLD)
	n.Attach(string(message.CodeSD), as.onSD)
	return as
}

// Get returns the area at base-0 index, or nil if out of range.
func (as *Areas) Get(index int) *Area {
	if index < 0 || index >= len(as.areas) {
		return nil
	}
	return as.areas[index]
}

// All returns every area, in index order.
func (as *Areas) All() []*Area { return as.areas[:] }

// sync requests current arming status and launches the area description
// walk (§4.4).
func (as *Areas) sync() {
	as.conn.Send(message.RequestArmingStatus(), false)
	as.desc.start()
}

func (as *Areas) applyName(unit int, name string) {
	as.areas[unit].setName(as.areas[unit], name, true)
}

func (as *Areas) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		as.desc.handle(msg)
	}
}

// onAS applies an AS arming-status report; when any area's alarm state
// changed, or any area has a nonzero alarm state, it requests a fresh AZ
// per-zone alarm refresh (§4.5, §8 ex. 2).
func (as *Areas) onAS(_ string, data any) {
	msg, ok := data.(message.ArmingStatus)
	if !ok {
		return
	}
	refreshAlarmTriggers := false
	for i, area := range as.areas {
		setField(&area.entity, area, &area.ArmedStatus, msg.Armed[i], "armed_status", false)
		setField(&area.entity, area, &area.ArmUpState, msg.ArmUp[i], "arm_up_state", false)
		if area.AlarmState != msg.Alarm[i] || msg.Alarm[i] != message.AlarmStateNoAlarmActive {
			refreshAlarmTriggers = true
		}
		setField(&area.entity, area, &area.AlarmState, msg.Alarm[i], "alarm_state", true)
	}
	if refreshAlarmTriggers {
		as.conn.Send(message.RequestAlarmByZone(), false)
	}
}

func (as *Areas) onAM(_ string, data any) {
	msg, ok := data.(message.AlarmMemory)
	if !ok {
		return
	}
	for i, area := range as.areas {
		setField(&area.entity, area, &area.AlarmMemory, msg.Area[i], "alarm_memory", true)
	}
}

func (as *Areas) onEE(_ string, data any) {
	msg, ok := data.(message.EntryExitTimer)
	if !ok {
		return
	}
	area := as.Get(msg.Area)
	if area == nil {
		return
	}
	setField(&area.entity, area, &area.ArmedStatus, msg.ArmedStatus, "armed_status", false)
	setField(&area.entity, area, &area.Timer1, msg.Timer1, "timer1", false)
	setField(&area.entity, area, &area.Timer2, msg.Timer2, "timer2", false)
	setField(&area.entity, area, &area.IsExit, msg.IsExit, "is_exit", true)
}

func (as *Areas) onKF(_ string, data any) {
	msg, ok := data.(message.KeypadFunction)
	if !ok {
		return
	}
	for i, area := range as.areas {
		setField(&area.entity, area, &area.ChimeMode, msg.ChimeMode[i], "chime_mode", true)
	}
}

// onLD applies an event-log entry to the area it names. The panel only
// emits LD when global setting G35 enables logging (§4.1).
func (as *Areas) onLD(_ string, data any) {
	msg, ok := data.(message.LogEntry)
	if !ok {
		return
	}
	area := as.Get(msg.Area)
	if area == nil {
		return
	}
	setField(&area.entity, area, &area.LastLog, msg, "last_log", true)
}
