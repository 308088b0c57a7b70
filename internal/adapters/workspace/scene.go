package workspace

import (
	"sync"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

// Scene keeps the drawn interaction lines in memory
type Scene struct {
	mu       sync.Mutex
	lines    []domain.Line
	onChange func([]domain.Line)
}

var _ ports.Scene = (*Scene)(nil)

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// OnChange registers a callback invoked with a copy of the lines after every change
func (s *Scene) OnChange(fn func([]domain.Line)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Scene) DrawLines(lines []domain.Line) {
	s.mu.Lock()
	s.lines = append(s.lines, lines...)
	s.notifyLocked()
}

func (s *Scene) ClearLines() {
	s.mu.Lock()
	s.lines = nil
	s.notifyLocked()
}

func (s *Scene) Lines() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Line(nil), s.lines...)
}

// notifyLocked releases the lock before calling out
func (s *Scene) notifyLocked() {
	fn := s.onChange
	snapshot := append([]domain.Line(nil), s.lines...)
	s.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
