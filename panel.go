package elkm1

import (
	"time"

	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Panel is the singleton element representing the overall controller:
// firmware versions, clock, remote-programming status, trouble summary
// and global temperature/code-length settings (§3).
type Panel struct {
	entity

	MainFirmware  string
	XEPFirmware   string
	RealTimeClock string
	RPStatus      message.RPStatus
	SystemTrouble string
	TempUnits     message.TempUnits
	CodeLength    int

	conn *conn.Connection
}

func newPanel(c *conn.Connection, n *Notifier) *Panel {
	p := &Panel{entity: newEntity(0, "Panel"), conn: c}
	p.setName(p, "ElkM1", false)

	n.Attach(string(message.CodeVN), p.onVN)
	n.Attach(string(message.CodeXK), p.onClock)
	n.Attach(string(message.CodeRR), p.onClock)
	n.Attach(string(message.CodeRP), p.onRP)
	n.Attach(string(message.CodeSS), p.onSS)
	n.Attach(string(message.CodeUA), p.onUA)
	return p
}

// sync requests firmware version, temperatures and system trouble status
// (§4.5). UA is deliberately not requested here; it is reserved as the
// Facade's sync-complete sentinel.
func (p *Panel) sync() {
	p.conn.Send(message.RequestVersion(), false)
	p.conn.Send(message.RequestTemperatures(), false)
	p.conn.Send(message.RequestSystemTrouble(), false)
}

// SpeakWord has the panel's voice module speak a single word by index.
func (p *Panel) SpeakWord(word int) {
	p.conn.Send(message.SpeakWord(word), false)
}

// SpeakPhrase has the panel's voice module speak a canned phrase by
// index.
func (p *Panel) SpeakPhrase(phrase int) {
	p.conn.Send(message.SpeakPhrase(phrase), false)
}

// SetTime writes t to the panel's real-time clock.
func (p *Panel) SetTime(t time.Time) {
	wd := int(t.Weekday()) + 1 // panel's weekday is 1=Sunday
	p.conn.Send(message.SetTime(t.Second(), t.Minute(), t.Hour(), wd, t.Day(), int(t.Month()), t.Year()%100), false)
}

func (p *Panel) onVN(_ string, data any) {
	msg, ok := data.(message.Version)
	if !ok {
		return
	}
	setField(&p.entity, p, &p.MainFirmware, msg.MainFirmware, "main_firmware", false)
	setField(&p.entity, p, &p.XEPFirmware, msg.XEPFirmware, "xep_firmware", true)
}

// onClock applies both RR and XK identically per the resolved §9 Open
// Question; the Connection has already reset its own heartbeat on the
// inbound bytes, so only the element state is updated here.
func (p *Panel) onClock(_ string, data any) {
	msg, ok := data.(message.RealTimeClock)
	if !ok {
		return
	}
	setField(&p.entity, p, &p.RealTimeClock, msg.ClockString, "real_time_clock", true)
}

// onRP pauses the connection's write queue while a remote-programming
// session is active and resumes it once the session ends (§4.3, §4.5).
func (p *Panel) onRP(_ string, data any) {
	msg, ok := data.(message.RemoteProgramming)
	if !ok {
		return
	}
	if msg.Status == message.RPDisconnected {
		p.conn.Resume()
	} else {
		p.conn.Pause()
	}
	setField(&p.entity, p, &p.RPStatus, msg.Status, "remote_programming_status", true)
}

func (p *Panel) onSS(_ string, data any) {
	msg, ok := data.(message.SystemTrouble)
	if !ok {
		return
	}
	setField(&p.entity, p, &p.SystemTrouble, msg.Summary(), "system_trouble_status", true)
}

func (p *Panel) onUA(_ string, data any) {
	msg, ok := data.(message.UserAreas)
	if !ok {
		return
	}
	setField(&p.entity, p, &p.CodeLength, msg.CodeLength, "user_code_length", false)
	setField(&p.entity, p, &p.TempUnits, msg.TempUnits, "temperature_units", true)
}
