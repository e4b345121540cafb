//go:build linux

package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// dbusNotifier sends notifications via D-Bus and listens for the daemon's
// NotificationClosed/ActionInvoked signals.
type dbusNotifier struct {
	conn   *dbus.Conn
	obj    dbus.BusObject
	signal chan *dbus.Signal
	closed chan ClosedSignal
	action chan ActionSignal
	done   chan struct{}
}

// New connects to the session bus and binds the notification daemon's
// well-known name and object path. No bus traffic happens until the first
// call. Returns an error wrapping ErrBridgeUnavailable if the bus cannot be
// reached.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connect session bus: %v", ErrBridgeUnavailable, err)
	}

	n := &dbusNotifier{
		conn:   conn,
		obj:    conn.Object(dbusNotifyDest, dbusNotifyPath),
		signal: make(chan *dbus.Signal, signalBufferSize),
		closed: make(chan ClosedSignal, signalBufferSize),
		action: make(chan ActionSignal, signalBufferSize),
		done:   make(chan struct{}),
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbusNotifyPath),
		dbus.WithMatchInterface(dbusNotifyInterface),
	); err != nil {
		return nil, fmt.Errorf("%w: subscribe to daemon signals: %v", ErrBridgeUnavailable, err)
	}

	conn.Signal(n.signal)
	go n.watchSignals()

	return n, nil
}

// Notify issues the Notify call and decodes the single uint32 reply.
//
//	UINT32 Notify(app_name, replaces_id, app_icon, summary, body,
//	              actions, hints, expire_timeout)
//
// The call blocks the calling goroutine until the daemon replies; ctx may
// cancel the wait.
func (n *dbusNotifier) Notify(ctx context.Context, req Request) (uint32, error) {
	actions := req.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := req.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}

	// replaces_id must go out typed as uint32: daemons reject a zero sent
	// with any other signature.
	call := n.obj.CallWithContext(ctx, methodNotify, 0,
		req.AppName,
		req.ReplacesID,
		req.AppIcon,
		req.Summary,
		req.Body,
		actions,
		hints,
		req.ExpireTimeout,
	)
	return decodeNotifyReply(call)
}

// decodeNotifyReply enforces the reply contract: exactly one uint32 argument.
func decodeNotifyReply(call *dbus.Call) (uint32, error) {
	if call.Err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRemoteCallFailed, call.Err)
	}
	if len(call.Body) != 1 {
		return 0, &UnexpectedReplyError{Args: len(call.Body)}
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	return id, nil
}

// CloseNotification forcefully closes a notification by id. The daemon
// answers with a NotificationClosed signal.
func (n *dbusNotifier) CloseNotification(ctx context.Context, id uint32) error {
	call := n.obj.CallWithContext(ctx, methodCloseNotification, 0, id)
	if call.Err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteCallFailed, call.Err)
	}
	return nil
}

func (n *dbusNotifier) NotificationClosed() <-chan ClosedSignal {
	return n.closed
}

func (n *dbusNotifier) ActionInvoked() <-chan ActionSignal {
	return n.action
}

// watchSignals translates raw bus signals into typed channels until Close.
func (n *dbusNotifier) watchSignals() {
	for {
		select {
		case sig, ok := <-n.signal:
			if !ok {
				return
			}
			n.dispatch(sig)
		case <-n.done:
			return
		}
	}
}

func (n *dbusNotifier) dispatch(sig *dbus.Signal) {
	switch sig.Name {
	case signalNotificationClosed:
		if len(sig.Body) != 2 {
			return
		}
		id, okID := sig.Body[0].(uint32)
		reason, okReason := sig.Body[1].(uint32)
		if !okID || !okReason {
			return
		}
		select {
		case n.closed <- ClosedSignal{ID: id, Reason: Reason(reason)}:
		case <-n.done:
		}
	case signalActionInvoked:
		if len(sig.Body) != 2 {
			return
		}
		id, okID := sig.Body[0].(uint32)
		key, okKey := sig.Body[1].(string)
		if !okID || !okKey {
			return
		}
		select {
		case n.action <- ActionSignal{ID: id, Key: key}:
		case <-n.done:
		}
	}
}

// Close unsubscribes from daemon signals and stops the watch goroutine.
// It does not close the shared session bus connection.
func (n *dbusNotifier) Close() error {
	close(n.done)
	err := n.conn.RemoveMatchSignal(
		dbus.WithMatchObjectPath(dbusNotifyPath),
		dbus.WithMatchInterface(dbusNotifyInterface),
	)
	n.conn.RemoveSignal(n.signal)
	return err
}
