package counter

import "context"

// Ready returns a readiness check that fails once the hub is closed.
func Ready(hub Hub) func(context.Context) error {
	return func(context.Context) error {
		if hub.Closed() {
			return ErrNotReady
		}
		return nil
	}
}
