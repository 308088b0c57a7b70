package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

type menuMsg struct{ menu ports.Menu }

type contentMsg struct{ content ports.Content }

type notificationMsg struct {
	severity ports.Severity
	message  string
}

type linesMsg struct{ lines []domain.Line }

// sender is the part of *tea.Program the presenter needs
type sender interface {
	Send(msg tea.Msg)
}

// Presenter implements ports.Presenter by forwarding updates to a running
// bubbletea program. Messages are queued so callers never wait on the UI.
type Presenter struct {
	mu      sync.Mutex
	queue   []tea.Msg
	program sender
	wake    chan struct{}
	done    chan struct{}
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter creates a presenter. Messages sent before Attach are kept.
func NewPresenter() *Presenter {
	return &Presenter{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Attach starts delivering messages to program
func (p *Presenter) Attach(program sender) {
	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
	go p.pump()
	p.signal()
}

// Close stops delivery
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}

func (p *Presenter) UpdateMenu(menu ports.Menu) {
	p.enqueue(menuMsg{menu: menu.Clone()})
}

func (p *Presenter) UpdateContent(content ports.Content) {
	p.enqueue(contentMsg{content: content})
}

func (p *Presenter) SendNotification(severity ports.Severity, message string) {
	p.enqueue(notificationMsg{severity: severity, message: message})
}

// ShowLines forwards the drawn scene lines
func (p *Presenter) ShowLines(lines []domain.Line) {
	p.enqueue(linesMsg{lines: lines})
}

func (p *Presenter) enqueue(msg tea.Msg) {
	p.mu.Lock()
	p.queue = append(p.queue, msg)
	p.mu.Unlock()
	p.signal()
}

func (p *Presenter) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Presenter) pump() {
	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}

		p.mu.Lock()
		batch := p.queue
		p.queue = nil
		program := p.program
		p.mu.Unlock()

		for _, msg := range batch {
			program.Send(msg)
		}
	}
}
