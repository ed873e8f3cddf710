// Package conn implements the transport and framing layer (connection
// establishment, line buffering, the write queue, heartbeat and
// reconnect) described in §5 and §6. It knows nothing about message
// semantics beyond the MM code needed to match a response to an
// outstanding request; decoding lives in package message and the
// facade built on top of this package.
package conn

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Scheme selects the transport and, for network schemes, the TLS
// posture. See §5.1.
type Scheme string

const (
	SchemeTCP       Scheme = "elk"
	SchemeTLS       Scheme = "elks"
	SchemeTLSv1_0   Scheme = "elksv1_0"
	SchemeTLSv1_2   Scheme = "elksv1_2"
	SchemeTLSv1_3   Scheme = "elksv1_3"
	SchemeSerial    Scheme = "serial"
)

// DefaultPort and DefaultPortTLS are used for network schemes when the
// URL omits a port: 2101 for plaintext, 2601 for any TLS scheme (§5.1).
const (
	DefaultPort    = 2101
	DefaultPortTLS = 2601
)

// DefaultBaud is used for the serial scheme when the URL omits one.
const DefaultBaud = 115200

// HeartbeatInterval is the inactivity threshold past which the
// connection is declared dead and torn down for reconnect (§6.4).
// Disabled for the serial scheme, which has no equivalent keep-alive.
const HeartbeatInterval = 120 * time.Second

// ResponseTimeout bounds how long the writer waits for a response to a
// request carrying an expected response code before giving up and
// emitting a timeout event (§6.2).
const ResponseTimeout = 5 * time.Second

// BackoffMin and BackoffMax bound the reconnect backoff (§6.5): it
// starts at BackoffMin and doubles on each consecutive failure, capped
// at BackoffMax, and resets to BackoffMin after a successful connect.
const (
	BackoffMin = 1 * time.Second
	BackoffMax = 60 * time.Second
)

// Config is the parsed, validated form of a connection URL. ParseURL
// applies defaults for anything the URL left unspecified.
type Config struct {
	Scheme Scheme

	// Network schemes.
	Host string
	Port int

	// serial scheme.
	Device string
	Baud   int

	// Credentials sent raw as the first outbound lines on a TLS
	// connection. They are not sent on other schemes.
	Userid   string
	Password string
}

// ParseURL parses a connection string of the form
// "elk://host[:port]", "elks://host[:port]", "elksv1_0://host[:port]",
// "elksv1_2://host[:port]", "elksv1_3://host[:port]", or
// "serial://device[:baud]" (§5.1). Userid and Password, when present,
// come from the URL's userinfo.
func ParseURL(raw string) (Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("conn: parse %q: %w", raw, err)
	}

	scheme := Scheme(strings.ToLower(u.Scheme))
	switch scheme {
	case SchemeTCP, SchemeTLS, SchemeTLSv1_0, SchemeTLSv1_2, SchemeTLSv1_3:
		return parseNetworkURL(scheme, u)
	case SchemeSerial:
		return parseSerialURL(u)
	default:
		return Config{}, fmt.Errorf("conn: unrecognized scheme %q", u.Scheme)
	}
}

func parseNetworkURL(scheme Scheme, u *url.URL) (Config, error) {
	host := u.Hostname()
	if host == "" {
		return Config{}, fmt.Errorf("conn: %q missing host", u.String())
	}

	port := DefaultPort
	if scheme != SchemeTCP {
		port = DefaultPortTLS
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Config{}, fmt.Errorf("conn: bad port %q: %w", p, err)
		}
		port = n
	}

	c := Config{Scheme: scheme, Host: host, Port: port}
	if u.User != nil {
		c.Userid = u.User.Username()
		c.Password, _ = u.User.Password()
	}
	return c, nil
}

func parseSerialURL(u *url.URL) (Config, error) {
	device := u.Hostname()
	if device == "" {
		// url.Parse treats "serial:///dev/ttyUSB0" oddly; fall back to
		// Opaque/Path for device paths that don't look like a host.
		device = u.Path
	}
	if device == "" {
		return Config{}, fmt.Errorf("conn: %q missing device", u.String())
	}

	baud := DefaultBaud
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Config{}, fmt.Errorf("conn: bad baud %q: %w", p, err)
		}
		baud = n
	}

	return Config{Scheme: SchemeSerial, Device: device, Baud: baud}, nil
}

// UsesTLS reports whether c's scheme requires a TLS handshake.
func (c Config) UsesTLS() bool {
	switch c.Scheme {
	case SchemeTLS, SchemeTLSv1_0, SchemeTLSv1_2, SchemeTLSv1_3:
		return true
	default:
		return false
	}
}

// UsesSerial reports whether c's scheme is the serial transport.
func (c Config) UsesSerial() bool {
	return c.Scheme == SchemeSerial
}

// Addr returns "host:port" for network schemes.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
