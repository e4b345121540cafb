// Package bridge presents web engine notifications on the desktop and
// tracks the daemon-assigned ids of everything it has put on screen.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/webnotify/internal/notify"
	"github.com/llehouerou/webnotify/internal/webengine"
)

// ErrPresentationFailed means a notification could not be shown on the
// desktop. The engine-side handle stays marked as shown but is never
// registered.
var ErrPresentationFailed = errors.New("notification presentation failed")

// Options tune the wire identity of presented notifications. The zero value
// selects the defaults.
type Options struct {
	AppName       string // app_name argument, default "qutebrowser"
	AppIcon       string // app_icon argument, default "qutebrowser"
	OriginHintKey string // hints key for the origin, default "x-qutebrowser-origin"
	ExpireTimeout int32  // expire_timeout argument, default -1 (daemon decides)
	MaxImageSize  uint   // icon downscale limit in px, 0 = no scaling
}

const (
	defaultAppName       = "qutebrowser"
	defaultAppIcon       = "qutebrowser"
	defaultOriginHintKey = "x-qutebrowser-origin"
	defaultExpireTimeout = int32(-1)
)

func (o Options) withDefaults() Options {
	if o.AppName == "" {
		o.AppName = defaultAppName
	}
	if o.AppIcon == "" {
		o.AppIcon = defaultAppIcon
	}
	if o.OriginHintKey == "" {
		o.OriginHintKey = defaultOriginHintKey
	}
	if o.ExpireTimeout == 0 {
		o.ExpireTimeout = defaultExpireTimeout
	}
	return o
}

// Bridge routes notification requests from an embedding engine to the
// desktop notification daemon. Construct one per process and install it on
// each profile with SetAsPresenter.
type Bridge struct {
	notifier notify.Notifier
	opts     Options
	logger   *slog.Logger

	mu     sync.Mutex
	active map[uint32]webengine.Notification
}

// New wires a bridge to an established notifier. A nil logger falls back to
// slog.Default().
func New(notifier notify.Notifier, opts Options, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		notifier: notifier,
		opts:     opts.withDefaults(),
		logger:   logger,
		active:   make(map[uint32]webengine.Notification),
	}
}

// SetAsPresenter installs the bridge as the exclusive notification handler
// for a profile. The installed callback re-registers itself on every
// invocation before doing anything else: engine runtimes may release a
// presenter after a single delivery, and the re-install must happen even
// when the presentation itself fails.
func (b *Bridge) SetAsPresenter(profile webengine.Profile) {
	var present func(webengine.Notification)
	present = func(n webengine.Notification) {
		profile.SetNotificationPresenter(present)
		if err := b.Present(context.Background(), n); err != nil {
			b.logger.Error("presenting notification", "origin", n.Origin(), "error", err)
		}
	}
	profile.SetNotificationPresenter(present)
}

// Present shows one notification on the desktop. The handle is marked shown
// before any bus traffic; on success the daemon-assigned id is registered.
// Failures surface as errors wrapping ErrPresentationFailed and leave the
// registry untouched.
func (b *Bridge) Present(ctx context.Context, n webengine.Notification) error {
	n.Show()

	hints := map[string]dbus.Variant{
		// Kept in the hints so daemon rules can treat origins differently.
		b.opts.OriginHintKey: dbus.MakeVariant(n.Origin()),
	}
	if icon := n.Icon(); icon != nil {
		hints[notify.HintImageData] = notify.EncodeImage(icon, b.opts.MaxImageSize).Variant()
	}

	id, err := b.notifier.Notify(ctx, notify.Request{
		AppName:       b.opts.AppName,
		ReplacesID:    0,
		AppIcon:       b.opts.AppIcon,
		Summary:       n.Title(),
		Body:          n.Message(),
		Actions:       []string{},
		Hints:         hints,
		ExpireTimeout: b.opts.ExpireTimeout,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPresentationFailed, err)
	}
	if id == 0 {
		// 0 is the "assign me an id" sentinel; a daemon must never hand
		// it back, and it must never key the registry.
		return fmt.Errorf("%w: daemon returned reserved id 0", ErrPresentationFailed)
	}

	b.mu.Lock()
	b.active[id] = n
	b.mu.Unlock()

	b.logger.Debug("notification presented", "id", id, "origin", n.Origin())
	return nil
}

// CloseNotification retires a presented notification: tells the daemon to
// close it and removes the registry entry.
func (b *Bridge) CloseNotification(ctx context.Context, id uint32) error {
	if err := b.notifier.CloseNotification(ctx, id); err != nil {
		return err
	}
	b.retire(id, notify.ReasonClosedByCall)
	return nil
}

// Run consumes the daemon's close and action signals until ctx is cancelled
// or the notifier shuts down. Closed notifications leave the registry and
// have their engine handle retired.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-b.notifier.NotificationClosed():
			if !ok {
				return nil
			}
			b.retire(sig.ID, sig.Reason)
		case sig, ok := <-b.notifier.ActionInvoked():
			if !ok {
				return nil
			}
			// Actions are never offered (the actions list is always
			// empty), so any invocation is daemon noise.
			b.logger.Debug("ignoring action signal", "id", sig.ID, "key", sig.Key)
		}
	}
}

func (b *Bridge) retire(id uint32, reason notify.Reason) {
	b.mu.Lock()
	n, ok := b.active[id]
	if ok {
		delete(b.active, id)
	}
	b.mu.Unlock()

	if !ok {
		return
	}
	n.Close()
	b.logger.Debug("notification closed", "id", id, "reason", reason.String())
}

// Active returns the registered handle for id, if any.
func (b *Bridge) Active(id uint32) (webengine.Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.active[id]
	return n, ok
}

// Len reports how many notifications are currently registered.
func (b *Bridge) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.active)
}
