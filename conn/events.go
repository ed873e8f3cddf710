package conn

import "github.com/gwww/elkm1/message"

// EventKind identifies what happened on a Connection, independent of
// any decoded message (§4.2's lifecycle events).
type EventKind int

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventLine
	EventLoginBanner
	EventTimeout
)

// Event is delivered to Handler for everything the Connection itself
// observes: lifecycle transitions, raw inbound lines (for the facade to
// decode) and per-request timeouts. It never carries a decoded
// message.Message; that layering belongs to the package built on top.
type Event struct {
	Kind EventKind

	Line  string        // EventLine
	Login message.LoginEvent // EventLoginBanner

	TimeoutCode message.Code // EventTimeout
}

// Handler receives every Event a Connection produces. It runs on the
// Connection's internal goroutines (Run for connect/disconnect, the
// reader for lines and login banners, the writer for timeouts) and must
// not block.
type Handler func(Event)
