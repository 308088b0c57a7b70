// Package headless provides a presenter that only remembers what it was told,
// for the command line and MCP front ends
package headless

import (
	"sync"

	"chemint/internal/logging"
	"chemint/internal/ports"
)

// Notification is a message sent to the user
type Notification struct {
	Severity ports.Severity
	Message  string
}

// Presenter implements ports.Presenter by recording the latest menu
type Presenter struct {
	mu            sync.Mutex
	menu          ports.Menu
	notifications []Notification
	log           logging.Logger
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter creates a presenter. Notifications are also logged when l is not nil.
func NewPresenter(l logging.Logger) *Presenter {
	if l == nil {
		l = logging.NewNop()
	}
	return &Presenter{log: l}
}

func (p *Presenter) UpdateMenu(menu ports.Menu) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.menu = menu.Clone()
}

func (p *Presenter) UpdateContent(content ports.Content) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.menu.Apply(content)
}

func (p *Presenter) SendNotification(severity ports.Severity, message string) {
	p.mu.Lock()
	p.notifications = append(p.notifications, Notification{Severity: severity, Message: message})
	p.mu.Unlock()

	fields := []logging.Field{logging.String("severity", severity.String()), logging.String("message", message)}
	switch severity {
	case ports.SeverityError:
		p.log.Error("notification", fields...)
	case ports.SeverityWarning:
		p.log.Warn("notification", fields...)
	default:
		p.log.Info("notification", fields...)
	}
}

// Menu returns a copy of the current menu
func (p *Presenter) Menu() ports.Menu {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.menu.Clone()
}

// Notifications returns every notification received so far
func (p *Presenter) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Notification(nil), p.notifications...)
}

// Drain returns and forgets the notifications received so far
func (p *Presenter) Drain() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.notifications
	p.notifications = nil
	return out
}

// Last returns the most recent notification
func (p *Presenter) Last() (Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.notifications) == 0 {
		return Notification{}, false
	}
	return p.notifications[len(p.notifications)-1], true
}
