//go:build !linux

package notify

import "fmt"

// New fails on platforms without a session bus. Notification bridging is
// only supported where a freedesktop notification daemon can exist.
func New() (Notifier, error) {
	return nil, fmt.Errorf("%w: no session bus on this platform", ErrBridgeUnavailable)
}
