package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// User is a named access-code holder. The panel carries no other state
// for a user beyond its description (§3).
type User struct {
	entity
}

// Users holds all 203 User elements; unlike other collections it handles
// no message code other than SD; the placeholder-name skip for
// unconfigured users lives centrally in descFetch.handle (§4.4, §4.5).
type Users struct {
	users [203]*User
	conn  *conn.Connection
	desc  *descFetch
}

func newUsers(c *conn.Connection, n *Notifier) *Users {
	us := &Users{conn: c}
	for i := range us.users {
		us.users[i] = &User{entity: newEntity(i, "User")}
	}
	us.desc = newDescFetch(c, descUser, len(us.users), us.applyName)
	n.Attach(string(message.CodeSD), us.onSD)
	return us
}

// Get returns the user at base-0 index, or nil if out of range.
func (us *Users) Get(index int) *User {
	if index < 0 || index >= len(us.users) {
		return nil
	}
	return us.users[index]
}

// All returns every user, in index order.
func (us *Users) All() []*User { return us.users[:] }

// sync launches the user description walk (§4.5).
func (us *Users) sync() {
	us.desc.start()
}

func (us *Users) applyName(unit int, name string) {
	us.users[unit].setName(us.users[unit], name, true)
}

func (us *Users) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		us.desc.handle(msg)
	}
}
