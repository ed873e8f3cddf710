package elkm1

import (
	"context"
	"sync"

	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Elk is the Facade: it wires the Connection, Notifier and every
// collection together, owns login sequencing, and drives the startup
// synchronization protocol (§4.6).
type Elk struct {
	notifier *Notifier
	conn     *conn.Connection
	cfg      conn.Config

	Panel       *Panel
	Zones       *Zones
	Lights      *Lights
	Areas       *Areas
	Tasks       *Tasks
	Keypads     *Keypads
	Outputs     *Outputs
	Thermostats *Thermostats
	Counters    *Counters
	Settings    *Settings
	Users       *Users

	mu       sync.Mutex
	loggedIn bool
	cancel   context.CancelFunc
}

// New builds an Elk Facade for the connection described by url (see
// conn.ParseURL for the accepted schemes).
func New(url string) (*Elk, error) {
	cfg, err := conn.ParseURL(url)
	if err != nil {
		return nil, err
	}

	e := &Elk{notifier: NewNotifier(), cfg: cfg}
	e.conn = conn.NewConnection(cfg, e.handleConnEvent, Logger)

	e.Panel = newPanel(e.conn, e.notifier)
	e.Zones = newZones(e.conn, e.notifier)
	e.Lights = newLights(e.conn, e.notifier)
	e.Areas = newAreas(e.conn, e.notifier)
	e.Tasks = newTasks(e.conn, e.notifier)
	e.Keypads = newKeypads(e.conn, e.notifier)
	e.Outputs = newOutputs(e.conn, e.notifier)
	e.Thermostats = newThermostats(e.conn, e.notifier)
	e.Counters = newCounters(e.conn, e.notifier)
	e.Settings = newSettings(e.conn, e.notifier)
	e.Users = newUsers(e.conn, e.notifier)

	e.notifier.Attach(message.EventConnected, e.onConnected)
	e.notifier.Attach(message.EventLogin, e.onLogin)
	e.notifier.Attach(string(message.CodeIE), e.onInstallerExit)
	e.notifier.Attach(string(message.CodeVN), e.onFirstVN)
	return e, nil
}

// AddHandler subscribes h to event (a message.Code string or one of the
// lifecycle event constants in package message).
func (e *Elk) AddHandler(event string, h EventHandler) { e.notifier.Attach(event, h) }

// RemoveHandler undoes a prior AddHandler.
func (e *Elk) RemoveHandler(event string, h EventHandler) { e.notifier.Detach(event, h) }

// Send encodes and queues msg on the underlying connection.
func (e *Elk) Send(msg message.Encoded) { e.conn.Send(msg, false) }

// IsConnected reports whether the transport currently has a live socket.
func (e *Elk) IsConnected() bool { return e.conn.IsConnected() }

// Connect starts the connection's dial/reconnect loop in the background
// and returns immediately.
func (e *Elk) Connect() {
	e.mu.Lock()
	if e.cancel != nil {
		e.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()

	go func() {
		if err := e.conn.Run(ctx); err != nil {
			Logger.WithError(err).Debug("connection loop exited")
		}
	}()
}

// Disconnect tears down the connection permanently; no further reconnect
// is attempted (§4.3).
func (e *Elk) Disconnect() {
	e.conn.Disconnect()
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Unlock()
}

// handleConnEvent is the conn.Handler bridging transport-level events
// into the Notifier's event-name keyspace, and decoding every raw line
// into a typed message before dispatch (§4.1, §4.2, §6).
func (e *Elk) handleConnEvent(ev conn.Event) {
	switch ev.Kind {
	case conn.EventConnected:
		e.notifier.Notify(message.EventConnected, nil)
	case conn.EventDisconnected:
		e.notifier.Notify(message.EventDisconnected, nil)
	case conn.EventLoginBanner:
		e.notifier.Notify(message.EventLogin, ev.Login)
	case conn.EventTimeout:
		Logger.WithField("msg_code", ev.TimeoutCode).Warn("timed out waiting for response")
		e.notifier.Notify(message.EventTimeout, ev.TimeoutCode)
	case conn.EventLine:
		e.handleLine(ev.Line)
	}
}

// handleLine decodes one raw line and dispatches it by its message code,
// per §7's policy that framing and decode errors are logged and
// swallowed rather than torn down the connection.
func (e *Elk) handleLine(line string) {
	msg, err := message.Decode(line)
	if err != nil {
		Logger.WithError(err).WithField("line", line).Warn("dropping unparseable line")
		return
	}
	e.notifier.Notify(string(msg.Code()), msg)
}

// onConnected sends TLS credentials raw (for TLS schemes) and then runs
// the full synchronization sequence (§4.6).
func (e *Elk) onConnected(_ string, _ any) {
	e.mu.Lock()
	e.loggedIn = false
	e.mu.Unlock()
	if e.cfg.UsesTLS() {
		e.conn.SendRaw(e.cfg.Userid, true)
		e.conn.SendRaw(e.cfg.Password, true)
	}
	e.sync()
}

// sync calls every collection's sync() in a fixed order, then sends the
// ua(0) sentinel and arms a one-shot handler that emits sync_complete
// exactly once per sync round (§4.6, §8 ex. 6).
func (e *Elk) sync() {
	e.Panel.sync()
	e.Zones.sync()
	e.Lights.sync()
	e.Areas.sync()
	e.Tasks.sync()
	e.Keypads.sync()
	e.Outputs.sync()
	e.Thermostats.sync()
	e.Counters.sync()
	e.Settings.sync()
	e.Users.sync()

	e.notifier.Attach(string(message.CodeUA), e.onSyncSentinel)
	e.conn.Send(message.UserAreasSentinel(), false)
}

// onSyncSentinel recognizes the echoed ua(0) sentinel, emits
// sync_complete exactly once, then detaches itself so that application
// traffic on "ua" never re-triggers it (§4.6, §8 ex. 6).
func (e *Elk) onSyncSentinel(_ string, data any) {
	msg, ok := data.(message.UserAreas)
	if !ok || msg.User != 0 {
		return
	}
	e.notifier.Detach(string(message.CodeUA), e.onSyncSentinel)
	e.notifier.Notify(message.EventSyncComplete, nil)
}

// onInstallerExit triggers a fresh sync once installer programming ends
// (§4.6).
func (e *Elk) onInstallerExit(_ string, _ any) {
	e.sync()
}

// onFirstVN synthesizes a login{succeeded:true} event on a non-TLS
// connection's first post-connect traffic, since that scheme has no
// explicit login handshake to observe (§4.6, §8 ex. 7).
func (e *Elk) onFirstVN(_ string, _ any) {
	e.mu.Lock()
	already := e.loggedIn
	e.loggedIn = true
	e.mu.Unlock()
	if already {
		return
	}
	if !e.cfg.UsesTLS() {
		e.notifier.Notify(message.EventLogin, message.LoginEvent{Succeeded: true})
	}
}

// onLogin disconnects and suppresses reconnect on a failed login
// (§4.6, §4.8, §7 AuthFailure).
func (e *Elk) onLogin(_ string, data any) {
	ev, ok := data.(message.LoginEvent)
	if !ok || ev.Succeeded {
		return
	}
	Logger.Error("login failed, disconnecting")
	e.Disconnect()
}
