package counter

import "errors"

// ErrNotReady is reported by the readiness check once the hub is closed.
var ErrNotReady = errors.New("membership hub is closed")
