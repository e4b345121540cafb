package webengine

import (
	"image"
	"sync"
)

// StaticNotification is an in-memory Notification used by the demo binary
// and tests. It records Show and Close calls.
type StaticNotification struct {
	mu      sync.Mutex
	title   string
	message string
	origin  string
	icon    image.Image
	shown   int
	closed  int
}

// NewStaticNotification builds a notification with the given content.
// icon may be nil.
func NewStaticNotification(title, message, origin string, icon image.Image) *StaticNotification {
	return &StaticNotification{
		title:   title,
		message: message,
		origin:  origin,
		icon:    icon,
	}
}

func (n *StaticNotification) Title() string     { return n.title }
func (n *StaticNotification) Message() string   { return n.message }
func (n *StaticNotification) Origin() string    { return n.origin }
func (n *StaticNotification) Icon() image.Image { return n.icon }

func (n *StaticNotification) Show() {
	n.mu.Lock()
	n.shown++
	n.mu.Unlock()
}

func (n *StaticNotification) Close() {
	n.mu.Lock()
	n.closed++
	n.mu.Unlock()
}

// Shown reports how many times Show was called.
func (n *StaticNotification) Shown() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shown
}

// Closed reports how many times Close was called.
func (n *StaticNotification) Closed() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

// MemoryProfile is an in-memory Profile. It mimics engine runtimes that
// release a presenter callback after a single delivery: Deliver consumes the
// installed presenter, so it must re-install itself to receive the next
// notification.
type MemoryProfile struct {
	mu        sync.Mutex
	presenter func(Notification)
	installs  int
}

func (p *MemoryProfile) SetNotificationPresenter(presenter func(Notification)) {
	p.mu.Lock()
	p.presenter = presenter
	p.installs++
	p.mu.Unlock()
}

// Deliver hands a notification to the installed presenter, dropping the
// presenter first. Returns false when no presenter is installed.
func (p *MemoryProfile) Deliver(n Notification) bool {
	p.mu.Lock()
	presenter := p.presenter
	p.presenter = nil
	p.mu.Unlock()

	if presenter == nil {
		return false
	}
	presenter(n)
	return true
}

// Installs reports how many times a presenter has been installed.
func (p *MemoryProfile) Installs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.installs
}

// HasPresenter reports whether a presenter is currently installed.
func (p *MemoryProfile) HasPresenter() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.presenter != nil
}
