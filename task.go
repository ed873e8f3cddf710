package elkm1

import (
	"time"

	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Task is a panel-side macro: a named sequence of actions activated as a
// single unit (§3).
type Task struct {
	entity

	LastChange time.Time

	conn *conn.Connection
}

// Activate runs the task.
func (t *Task) Activate() {
	t.conn.Send(message.ActivateTask(t.index), false)
}

// Tasks holds all 32 Task elements and their handlers (§4.5).
type Tasks struct {
	tasks [32]*Task
	conn  *conn.Connection
	desc  *descFetch
}

func newTasks(c *conn.Connection, n *Notifier) *Tasks {
	ts := &Tasks{conn: c}
	for i := range ts.tasks {
		ts.tasks[i] = &Task{entity: newEntity(i, "Task"), conn: c}
	}
	ts.desc = newDescFetch(c, descTask, len(ts.tasks), ts.applyName)

	n.Attach(string(message.CodeTC), ts.onTC)
	n.Attach(string(message.CodeSD), ts.onSD)
	return ts
}

// Get returns the task at base-0 index, or nil if out of range.
func (ts *Tasks) Get(index int) *Task {
	if index < 0 || index >= len(ts.tasks) {
		return nil
	}
	return ts.tasks[index]
}

// All returns every task, in index order.
func (ts *Tasks) All() []*Task { return ts.tasks[:] }

// sync launches the task description walk (§4.5).
func (ts *Tasks) sync() {
	ts.desc.start()
}

func (ts *Tasks) applyName(unit int, name string) {
	ts.tasks[unit].setName(ts.tasks[unit], name, true)
}

func (ts *Tasks) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		ts.desc.handle(msg)
	}
}

func (ts *Tasks) onTC(_ string, data any) {
	msg, ok := data.(message.TaskChange)
	if !ok {
		return
	}
	t := ts.Get(msg.Task)
	if t == nil {
		return
	}
	setField(&t.entity, t, &t.LastChange, time.Now(), "last_change", true)
}
