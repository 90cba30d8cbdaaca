package ui

import "sync"

// Routes the pages navigate to.
const (
	RouteHome      = "/"
	RouteAgents    = "/agents"
	RouteAuth      = "/auth"
	RouteDashboard = "/dashboard"
)

type Variant string

const (
	VariantDefault     Variant = ""
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant,omitempty"`
}

// Notifier shows a transient message. Fire and forget.
type Notifier interface {
	Notify(n Notification)
}

// Navigator moves the client to another route.
type Navigator interface {
	Navigate(path string)
}

// Outbox collects what a page emitted during one request so the HTTP layer
// can hand it back to the client.
type Outbox struct {
	mu            sync.Mutex
	notifications []Notification
	redirect      string
}

func (o *Outbox) Notify(n Notification) {
	o.mu.Lock()
	o.notifications = append(o.notifications, n)
	o.mu.Unlock()
}

func (o *Outbox) Navigate(path string) {
	o.mu.Lock()
	o.redirect = path
	o.mu.Unlock()
}

func (o *Outbox) Notifications() []Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Notification, len(o.notifications))
	copy(out, o.notifications)
	return out
}

// Redirect returns the last navigation target, or "" when the page stayed.
func (o *Outbox) Redirect() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.redirect
}
