// Package webengine defines the contracts the bridge consumes from an
// embedding web content engine: the notification handle handed to a
// presenter, and the profile a presenter is installed on.
package webengine

import "image"

// Notification is an engine-side notification request. The bridge holds a
// non-owning reference while presenting and as a registry value.
type Notification interface {
	// Title returns the summary text.
	Title() string
	// Message returns the body text.
	Message() string
	// Origin returns the requesting origin in display form.
	Origin() string
	// Icon returns the notification icon, or nil when there is none.
	Icon() image.Image
	// Show marks the notification as displayed. Local side effect only.
	Show()
	// Close marks the notification as retired on the engine side.
	Close()
}

// Profile is the embedding target notifications originate from. Installing a
// presenter routes all subsequent notification requests to it.
type Profile interface {
	SetNotificationPresenter(presenter func(Notification))
}
