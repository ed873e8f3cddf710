package elkm1

import (
	"time"

	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Keypad is a user-interface terminal associated with an area (§3).
type Keypad struct {
	entity

	Area            int
	Temperature     int // degrees, sentinel -40 = unknown
	LastUser        int
	LastUserTime    time.Time
	Code            string
	LastKeypress    byte
	LastFunctionKey byte

	conn *conn.Connection
}

// Keypads holds all 16 Keypad elements and their handlers (§4.5).
type Keypads struct {
	keypads [16]*Keypad
	conn    *conn.Connection
	desc    *descFetch
}

func newKeypads(c *conn.Connection, n *Notifier) *Keypads {
	ks := &Keypads{conn: c}
	for i := range ks.keypads {
		ks.keypads[i] = &Keypad{entity: newEntity(i, "Keypad"), Temperature: -40, LastUser: -1, conn: c}
	}
	ks.desc = newDescFetch(c, descKeypad, len(ks.keypads), ks.applyName)

	n.Attach(string(message.CodeIC), ks.onIC)
	n.Attach(string(message.CodeKA), ks.onKA)
	n.Attach(string(message.CodeKC), ks.onKC)
	n.Attach(string(message.CodeKF), ks.onKF)
	n.Attach(string(message.CodeLW), ks.onLW)
	n.Attach(string(message.CodeST), ks.onST)
	n.Attach(string(message.CodeSD), ks.onSD)
	return ks
}

// Get returns the keypad at base-0 index, or nil if out of range.
func (ks *Keypads) Get(index int) *Keypad {
	if index < 0 || index >= len(ks.keypads) {
		return nil
	}
	return ks.keypads[index]
}

// All returns every keypad, in index order.
func (ks *Keypads) All() []*Keypad { return ks.keypads[:] }

func (ks *Keypads) sync() {
	ks.conn.Send(message.RequestKeypadAreas(), false)
	ks.desc.start()
}

func (ks *Keypads) applyName(unit int, name string) {
	ks.keypads[unit].setName(ks.keypads[unit], name, true)
}

func (ks *Keypads) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		ks.desc.handle(msg)
	}
}

// onIC applies a user-code entry attempt. The code is replaced by "****"
// once a valid user index is known (successful entry); the raw digits are
// retained only for an invalid entry (§4.5). LastUserTime is stamped with
// the current time unconditionally so that an IC notification always
// fires even when Code and LastUser happen to repeat the previous values.
func (ks *Keypads) onIC(_ string, data any) {
	msg, ok := data.(message.UserCodeEntered)
	if !ok {
		return
	}
	kp := ks.Get(msg.Keypad)
	if kp == nil {
		return
	}
	code := msg.EnteredCode
	if msg.User >= 0 {
		code = "****"
	}
	setField(&kp.entity, kp, &kp.LastUserTime, time.Now(), "last_user_time", false)
	setField(&kp.entity, kp, &kp.Code, code, "code", false)
	setField(&kp.entity, kp, &kp.LastUser, msg.User, "last_user", true)
}

func (ks *Keypads) onKA(_ string, data any) {
	msg, ok := data.(message.KeypadAreas)
	if !ok {
		return
	}
	for _, kp := range ks.keypads {
		if msg.Area[kp.index] >= 0 {
			setField(&kp.entity, kp, &kp.Area, msg.Area[kp.index], "area", true)
		}
	}
}

func (ks *Keypads) onKC(_ string, data any) {
	msg, ok := data.(message.KeypadKeyChange)
	if !ok || msg.Key == 0 {
		return
	}
	kp := ks.Get(msg.Keypad)
	if kp == nil {
		return
	}
	setField(&kp.entity, kp, &kp.LastKeypress, msg.Key, "last_keypress", true)
}

func (ks *Keypads) onKF(_ string, data any) {
	msg, ok := data.(message.KeypadFunction)
	if !ok {
		return
	}
	kp := ks.Get(msg.Keypad)
	if kp == nil {
		return
	}
	setField(&kp.entity, kp, &kp.LastFunctionKey, msg.Key, "last_function_key", true)
}

func (ks *Keypads) onLW(_ string, data any) {
	msg, ok := data.(message.Temperatures)
	if !ok {
		return
	}
	for i := 0; i < 16; i++ {
		if msg.Keypad[i] > -40 {
			kp := ks.keypads[i]
			setField(&kp.entity, kp, &kp.Temperature, msg.Keypad[i], "temperature", true)
		}
	}
}

func (ks *Keypads) onST(_ string, data any) {
	msg, ok := data.(message.SingleTemp)
	if !ok || msg.Group != message.TempGroupKeypad {
		return
	}
	kp := ks.Get(msg.Index)
	if kp == nil {
		return
	}
	setField(&kp.entity, kp, &kp.Temperature, msg.Temp, "temperature", true)
}
