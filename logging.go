package elkm1

import "github.com/sirupsen/logrus"

// Logger is used for every non-fatal error kind from §7 — FramingError,
// DecodeError, Timeout and SubscriberError are logged here rather than
// returned, matching the "report as event, don't fail the call" policy.
// Callers may replace it wholesale to route logs elsewhere.
var Logger = logrus.StandardLogger()
