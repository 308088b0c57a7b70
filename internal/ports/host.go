package ports

import (
	"context"

	"chemint/internal/domain"
)

// StructureSource is the host side that owns the structures shown in the menu
type StructureSource interface {
	// ListStructures returns shallow references to every structure, in host order.
	// An empty workspace yields an empty slice, not an error.
	ListStructures(ctx context.Context) ([]domain.Structure, error)

	// FetchStructures returns deep copies for the given indices, in the same order
	FetchStructures(ctx context.Context, indices []int) ([]domain.Structure, error)

	// Watch calls onUpdate with a deep copy every time a structure changes
	// outside the menu. It blocks until ctx is done.
	Watch(ctx context.Context, onUpdate func(domain.Structure)) error
}

// Scene holds the interaction lines currently displayed by the host
type Scene interface {
	DrawLines(lines []domain.Line)
	ClearLines()
	Lines() []domain.Line
}

// Severity of a user-visible notification
type Severity int

const (
	SeverityMessage Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "message"
	}
}

// Presenter displays the menu. Calls are fire-and-forget: implementations
// must not block the caller waiting for the UI.
type Presenter interface {
	UpdateMenu(menu Menu)
	UpdateContent(content Content)
	SendNotification(severity Severity, message string)
}
