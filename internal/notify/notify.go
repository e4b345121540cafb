// Package notify talks to the desktop notification daemon over the D-Bus
// session bus (org.freedesktop.Notifications).
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	methodNotify             = dbusNotifyInterface + ".Notify"
	methodCloseNotification  = dbusNotifyInterface + ".CloseNotification"
	signalNotificationClosed = dbusNotifyInterface + ".NotificationClosed"
	signalActionInvoked      = dbusNotifyInterface + ".ActionInvoked"

	signalBufferSize = 10
)

var (
	// ErrBridgeUnavailable means the session bus or the daemon object handle
	// could not be set up. Fatal to construction.
	ErrBridgeUnavailable = errors.New("notification service unavailable")

	// ErrRemoteCallFailed means the daemon rejected a call or is unreachable.
	// The affected notification is simply not shown.
	ErrRemoteCallFailed = errors.New("notify call failed")

	// ErrUnexpectedReply means the daemon's reply did not match the protocol.
	ErrUnexpectedReply = errors.New("unexpected Notify reply")
)

// UnexpectedReplyError reports a Notify reply with the wrong number of
// positional arguments. The protocol defines exactly one (the assigned id).
type UnexpectedReplyError struct {
	Args int
}

func (e *UnexpectedReplyError) Error() string {
	return fmt.Sprintf("unexpected Notify reply: got %d arguments, want 1", e.Args)
}

func (e *UnexpectedReplyError) Is(target error) bool {
	return target == ErrUnexpectedReply
}

// Request carries the positional arguments of a Notify call, in wire order.
type Request struct {
	AppName string
	// ReplacesID 0 asks the daemon to assign a fresh id; a non-zero value
	// atomically replaces that notification.
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // (key, label) pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // ms, -1 = daemon default, 0 = never expire
}

// Reason explains why the daemon closed a notification.
type Reason uint32

const (
	ReasonExpired         Reason = 1
	ReasonDismissedByUser Reason = 2
	ReasonClosedByCall    Reason = 3
	ReasonUnknown         Reason = 4
)

func (r Reason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonDismissedByUser:
		return "dismissed-by-user"
	case ReasonClosedByCall:
		return "closed-by-call"
	case ReasonUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("reason(%d)", uint32(r))
	}
}

// ClosedSignal is emitted by the daemon when a notification leaves the screen.
type ClosedSignal struct {
	ID     uint32
	Reason Reason
}

// ActionSignal is emitted when the user activates a notification action.
type ActionSignal struct {
	ID  uint32
	Key string
}

// Notifier is the daemon-facing side of the bridge. The blocking calls
// suspend only the calling goroutine; the rest of the host keeps running.
type Notifier interface {
	// Notify issues the Notify call and returns the daemon-assigned id.
	Notify(ctx context.Context, req Request) (uint32, error)
	// CloseNotification asks the daemon to retire a notification by id.
	CloseNotification(ctx context.Context, id uint32) error
	// NotificationClosed delivers close signals. Must be drained.
	NotificationClosed() <-chan ClosedSignal
	// ActionInvoked delivers action signals. Must be drained.
	ActionInvoked() <-chan ActionSignal
	// Close tears down the signal subscription.
	Close() error
}
