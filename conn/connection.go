package conn

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"

	"github.com/gwww/elkm1/message"
)

// queuedWrite is one outbound line waiting on the write queue, along with
// the response code the writer should wait for before dequeuing the next
// entry, if any (§6.2).
type queuedWrite struct {
	line      string
	expect    message.Code
	hasExpect bool
}

// session holds the state scoped to a single connected socket: the
// in-flight response wait and, for network schemes, the heartbeat signal.
// It is discarded and rebuilt on every reconnect.
type session struct {
	mu           sync.Mutex
	hasAwaiting  bool
	awaitingCode message.Code
	responseCh   chan struct{}

	heartbeat chan struct{} // nil on the serial scheme (§6.4)
}

func (s *session) noteResponse(code message.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasAwaiting && s.awaitingCode == code {
		select {
		case <-s.responseCh:
		default:
			close(s.responseCh)
		}
	}
}

func (s *session) noteHeartbeat() {
	if s.heartbeat == nil {
		return
	}
	select {
	case s.heartbeat <- struct{}{}:
	default:
	}
}

// Connection manages the socket/serial transport to a panel: dialing,
// reconnect backoff, line buffering, the write queue and its response
// timeout, and the 120-second heartbeat (§5, §6). It knows nothing about
// message semantics beyond the MM code needed to match a response;
// everything it observes is reported to Handler as an Event, leaving
// decode to the caller.
type Connection struct {
	cfg     Config
	handler Handler
	log     *logrus.Entry

	qmu    sync.Mutex
	queue  []queuedWrite
	paused bool
	kick   chan struct{}

	connMu sync.Mutex
	rwc    io.ReadWriteCloser

	stop     chan struct{}
	stopOnce sync.Once
}

// NewConnection constructs a Connection for cfg. handler is called
// synchronously from the connection's internal goroutines for every
// lifecycle and line event; it must not block and must not call back
// into Send/SendRaw without dispatching to another goroutine if it does
// anything beyond quick bookkeeping.
func NewConnection(cfg Config, handler Handler, log *logrus.Logger) *Connection {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Connection{
		cfg:     cfg,
		handler: handler,
		log:     log.WithField("component", "conn"),
		kick:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (c *Connection) emit(ev Event) {
	if c.handler != nil {
		c.handler(ev)
	}
}

// Run dials the panel and services it until ctx is canceled or Disconnect
// is called, reconnecting with exponential backoff (§6.5) whenever the
// session ends for any other reason. It returns nil on a clean shutdown
// and ctx.Err() when ctx is the cause.
func (c *Connection) Run(ctx context.Context) error {
	backoff := BackoffMin
	for {
		if stopped, err := c.checkStop(ctx); stopped {
			return err
		}

		rwc, heartbeat, err := c.dial(ctx)
		if err != nil {
			c.log.WithError(err).Warnf("error connecting to elk, retrying in %s", backoff)
			select {
			case <-time.After(backoff):
			case <-c.stop:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
			if backoff > BackoffMax {
				backoff = BackoffMax
			}
			continue
		}
		backoff = BackoffMin

		c.emit(Event{Kind: EventConnected})
		if err := c.runSession(ctx, rwc, heartbeat); err != nil {
			c.log.WithError(err).Debug("session ended")
		}
		c.emit(Event{Kind: EventDisconnected})
	}
}

func (c *Connection) checkStop(ctx context.Context) (bool, error) {
	select {
	case <-c.stop:
		return true, nil
	case <-ctx.Done():
		return true, ctx.Err()
	default:
		return false, nil
	}
}

// dial opens the transport: TCP, TLS over TCP, or serial, per cfg.Scheme.
// The 30-second connect timeout mirrors the original library's dial
// timeout, bounding how long a single attempt can hang before backoff
// kicks in. The second return value reports whether the heartbeat applies
// to this transport (disabled for serial, which has no keep-alive
// equivalent).
func (c *Connection) dial(ctx context.Context) (io.ReadWriteCloser, bool, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if c.cfg.UsesSerial() {
		mode := &serial.Mode{BaudRate: c.cfg.Baud}
		port, err := serial.Open(c.cfg.Device, mode)
		if err != nil {
			return nil, false, err
		}
		return port, false, nil
	}

	var d net.Dialer
	raw, err := d.DialContext(dialCtx, "tcp", c.cfg.Addr())
	if err != nil {
		return nil, false, err
	}
	if !c.cfg.UsesTLS() {
		return raw, true, nil
	}

	tlsConn := tls.Client(raw, tlsConfig(c.cfg.Scheme))
	if err := tlsConn.HandshakeContext(dialCtx); err != nil {
		raw.Close()
		return nil, false, err
	}
	return tlsConn, true, nil
}

// runSession services one connected socket until its readLoop, writeLoop
// or heartbeatLoop returns, then tears the socket down. Each loop is
// independent; the first to exit cancels the others via gctx, and a
// dedicated watcher closes the socket on that cancellation so a loop
// blocked in a read or write unblocks promptly (§5's departure from
// hand-rolled channel-close choreography toward errgroup+context).
func (c *Connection) runSession(ctx context.Context, rwc io.ReadWriteCloser, heartbeat bool) error {
	c.connMu.Lock()
	c.rwc = rwc
	c.connMu.Unlock()
	var closeOnce sync.Once
	closeRWC := func() { closeOnce.Do(func() { rwc.Close() }) }
	defer func() {
		c.connMu.Lock()
		c.rwc = nil
		c.connMu.Unlock()
		closeRWC()
	}()

	s := &session{}
	if heartbeat {
		s.heartbeat = make(chan struct{}, 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readLoop(gctx, rwc, s) })
	g.Go(func() error { return c.writeLoop(gctx, rwc, s) })
	if heartbeat {
		g.Go(func() error { return c.heartbeatLoop(gctx, s) })
	}
	g.Go(func() error {
		<-gctx.Done()
		closeRWC()
		return nil
	})
	return g.Wait()
}

// readLoop reads raw bytes (ISO-8859-1, so byte-for-byte the same as the
// wire) and splits them into CRLF-terminated lines, resetting the
// heartbeat on every read and matching response codes before handing the
// line to Handler (§4.1, §6.2, §6.4).
func (c *Connection) readLoop(ctx context.Context, r io.Reader, s *session) error {
	buf := make([]byte, 4096)
	var pending []byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.noteHeartbeat()
			pending = append(pending, buf[:n]...)
			for {
				i := bytes.Index(pending, []byte("\r\n"))
				if i < 0 {
					break
				}
				line := string(pending[:i])
				pending = pending[i+2:]
				c.handleLine(line, s)
			}
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Connection) handleLine(line string, s *session) {
	c.log.Debugf("got_data %q", line)
	if ev, ignore, ok := message.MatchLoginBanner(line); ok {
		if !ignore {
			c.emit(Event{Kind: EventLoginBanner, Login: ev})
		}
		return
	}
	if code, ok := message.PeekCode(line); ok {
		s.noteResponse(code)
	}
	c.emit(Event{Kind: EventLine, Line: line})
}

// writeLoop drains the write queue in FIFO order (respecting priority
// entries pushed to the front), writing one line at a time and, when it
// declared a response code, waiting up to ResponseTimeout before giving
// up and emitting EventTimeout — enforcing at most one outstanding
// response at a time (§6.2).
func (c *Connection) writeLoop(ctx context.Context, w io.Writer, s *session) error {
	for {
		entry, ok := c.nextQueued(ctx)
		if !ok {
			return ctx.Err()
		}

		c.log.Debugf("write_data %q", entry.line)
		if _, err := io.WriteString(w, entry.line+"\r\n"); err != nil {
			return err
		}

		if !entry.hasExpect {
			continue
		}

		respCh := make(chan struct{})
		s.mu.Lock()
		s.hasAwaiting = true
		s.awaitingCode = entry.expect
		s.responseCh = respCh
		s.mu.Unlock()

		select {
		case <-respCh:
		case <-time.After(ResponseTimeout):
			c.emit(Event{Kind: EventTimeout, TimeoutCode: entry.expect})
		case <-ctx.Done():
			return ctx.Err()
		}

		s.mu.Lock()
		s.hasAwaiting = false
		s.mu.Unlock()
	}
}

func (c *Connection) nextQueued(ctx context.Context) (queuedWrite, bool) {
	for {
		c.qmu.Lock()
		if !c.paused && len(c.queue) > 0 {
			e := c.queue[0]
			c.queue = c.queue[1:]
			c.qmu.Unlock()
			return e, true
		}
		c.qmu.Unlock()

		select {
		case <-c.kick:
		case <-ctx.Done():
			return queuedWrite{}, false
		}
	}
}

func (c *Connection) wake() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// heartbeatLoop declares the connection dead, returning an error to tear
// down the session for reconnect, if no byte is read within
// HeartbeatInterval. It is suspended (never times out) while the
// connection is Paused, matching remote-programming pause semantics
// (§4.3, §6.4).
func (c *Connection) heartbeatLoop(ctx context.Context, s *session) error {
	timer := time.NewTimer(HeartbeatInterval)
	defer timer.Stop()
	for {
		select {
		case <-s.heartbeat:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(HeartbeatInterval)
		case <-timer.C:
			c.qmu.Lock()
			paused := c.paused
			c.qmu.Unlock()
			if paused {
				timer.Reset(HeartbeatInterval)
				continue
			}
			return errHeartbeatTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Send encodes e onto the write queue, at the front when priority is true
// (used by the description-fetch state machine's sequential re-requests,
// §4.4). A Paused connection silently drops the send, matching the
// original library's behavior during remote programming (§4.3).
func (c *Connection) Send(e message.Encoded, priority bool) {
	c.enqueue(queuedWrite{line: e.Frame(), expect: e.Expect, hasExpect: e.HasExpect}, priority)
}

// SendRaw queues msg verbatim, with no checksum framing applied. It is
// used for the TLS schemes' raw credential line sent immediately after
// connecting (§4.1, §6.3).
func (c *Connection) SendRaw(msg string, priority bool) {
	c.enqueue(queuedWrite{line: msg}, priority)
}

func (c *Connection) enqueue(e queuedWrite, priority bool) {
	c.qmu.Lock()
	if c.paused {
		c.qmu.Unlock()
		return
	}
	if priority {
		c.queue = append([]queuedWrite{e}, c.queue...)
	} else {
		c.queue = append(c.queue, e)
	}
	c.qmu.Unlock()
	c.wake()
}

// Pause drops the write queue and stops accepting new sends until Resume,
// tied to the panel entering a non-disconnected remote-programming state
// (§4.3).
func (c *Connection) Pause() {
	c.qmu.Lock()
	c.queue = nil
	c.paused = true
	c.qmu.Unlock()
}

// Resume re-enables sending after Pause.
func (c *Connection) Resume() {
	c.qmu.Lock()
	c.paused = false
	c.qmu.Unlock()
	c.wake()
}

// IsConnected reports whether a socket is currently established.
func (c *Connection) IsConnected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.rwc != nil
}

// Disconnect sticks the connection in a closed state: Run returns, the
// current socket (if any) is closed, and no further reconnect is
// attempted.
func (c *Connection) Disconnect() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.connMu.Lock()
	if c.rwc != nil {
		c.rwc.Close()
	}
	c.connMu.Unlock()
}
