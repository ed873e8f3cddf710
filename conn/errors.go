package conn

import "errors"

// errHeartbeatTimeout is returned internally by heartbeatLoop to tear the
// session down for reconnect; it never reaches a caller of Run.
var errHeartbeatTimeout = errors.New("conn: heartbeat timeout")
