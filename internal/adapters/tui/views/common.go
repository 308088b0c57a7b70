package views

import "chemint/internal/ports"

// Status is the last notification shown in the status line
type Status struct {
	Message  string
	Severity ports.Severity
}

// Set replaces the status
func (s *Status) Set(severity ports.Severity, msg string) {
	s.Message = msg
	s.Severity = severity
}

// Clear removes the status
func (s *Status) Clear() {
	s.Message = ""
	s.Severity = ports.SeverityMessage
}

// View renders the status with a style matching its severity
func (s Status) View() string {
	return RenderMessage(s.Message, s.Severity)
}
