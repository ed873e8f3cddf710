package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Output is a relay-driven physical output, e.g. a siren or door strike
// (§3).
type Output struct {
	entity

	OutputOn bool

	conn *conn.Connection
}

// TurnOff de-energizes the output.
func (o *Output) TurnOff() {
	o.conn.Send(message.TurnOffOutput(o.index), false)
}

// TurnOn energizes the output for seconds (0 = indefinitely).
func (o *Output) TurnOn(seconds int) {
	o.conn.Send(message.TurnOnOutput(o.index, seconds), false)
}

// Toggle flips the output's current state.
func (o *Output) Toggle() {
	o.conn.Send(message.ToggleOutput(o.index), false)
}

// Outputs holds all 208 Output elements and their handlers (§4.5).
type Outputs struct {
	outputs [208]*Output
	conn    *conn.Connection
	desc    *descFetch
}

func newOutputs(c *conn.Connection, n *Notifier) *Outputs {
	os := &Outputs{conn: c}
	for i := range os.outputs {
		os.outputs[i] = &Output{entity: newEntity(i, "Output"), conn: c}
	}
	// The panel only carries descriptions for the first 64 outputs even
	// though up to 208 physical outputs exist (elkm1_lib/const.py's
	// TextDescriptions.OUTPUT entry); the walk must stop there rather
	// than at len(os.outputs).
	os.desc = newDescFetch(c, descOutput, 64, os.applyName)

	n.Attach(string(message.CodeCC), os.onCC)
	n.Attach(string(message.CodeCS), os.onCS)
	n.Attach(string(message.CodeSD), os.onSD)
	return os
}

// Get returns the output at base-0 index, or nil if out of range.
func (os *Outputs) Get(index int) *Output {
	if index < 0 || index >= len(os.outputs) {
		return nil
	}
	return os.outputs[index]
}

// All returns every output, in index order.
func (os *Outputs) All() []*Output { return os.outputs[:] }

// sync requests the current state of every output, then launches the
// output description walk (§4.5).
func (os *Outputs) sync() {
	os.conn.Send(message.RequestOutputStatus(), false)
	os.desc.start()
}

func (os *Outputs) applyName(unit int, name string) {
	os.outputs[unit].setName(os.outputs[unit], name, true)
}

func (os *Outputs) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		os.desc.handle(msg)
	}
}

func (os *Outputs) onCC(_ string, data any) {
	msg, ok := data.(message.OutputStatus)
	if !ok {
		return
	}
	output := os.Get(msg.Output)
	if output == nil {
		return
	}
	setField(&output.entity, output, &output.OutputOn, msg.On, "output_on", true)
}

func (os *Outputs) onCS(_ string, data any) {
	msg, ok := data.(message.OutputBank)
	if !ok {
		return
	}
	for i, on := range msg.On {
		output := os.outputs[i]
		setField(&output.entity, output, &output.OutputOn, on, "output_on", true)
	}
}
