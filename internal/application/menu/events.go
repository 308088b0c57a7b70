package menu

import (
	"context"
	"fmt"
	"strings"

	"chemint/internal/logging"
)

// EventKind is the kind of user interaction a presenter reports
type EventKind int

const (
	StructurePressed EventKind = iota
	LigandPressed
	CategoryVisibilityPressed
	CategoryColorPicked
	CategoryColorCycled
	ToggleAllPressed
	SubmitPressed
)

func (k EventKind) String() string {
	switch k {
	case StructurePressed:
		return "structure_pressed"
	case LigandPressed:
		return "ligand_pressed"
	case CategoryVisibilityPressed:
		return "category_visibility_pressed"
	case CategoryColorPicked:
		return "category_color_picked"
	case CategoryColorCycled:
		return "category_color_cycled"
	case ToggleAllPressed:
		return "toggle_all_pressed"
	case SubmitPressed:
		return "submit_pressed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a user interaction with the menu
type Event struct {
	Kind   EventKind
	Target string // button ID or category name
	Value  string // picked color for CategoryColorPicked
}

type handlerFunc func(ctx context.Context, ev Event) error

// eventTable maps every event kind to the operation it triggers
func (c *Controller) eventTable() map[EventKind]handlerFunc {
	return map[EventKind]handlerFunc{
		StructurePressed: func(ctx context.Context, ev Event) error {
			return c.ToggleStructure(ctx, ev.Target)
		},
		LigandPressed: func(ctx context.Context, ev Event) error {
			return c.ToggleLigand(ctx, ev.Target)
		},
		CategoryVisibilityPressed: func(ctx context.Context, ev Event) error {
			return c.ToggleCategoryVisibility(ctx, ev.Target)
		},
		CategoryColorPicked: func(ctx context.Context, ev Event) error {
			return c.SetCategoryColor(ctx, ev.Target, ev.Value)
		},
		CategoryColorCycled: func(ctx context.Context, ev Event) error {
			return c.CycleCategoryColor(ctx, ev.Target)
		},
		ToggleAllPressed: func(ctx context.Context, _ Event) error {
			return c.ToggleAll(ctx)
		},
		SubmitPressed: func(ctx context.Context, _ Event) error {
			return c.Submit(ctx)
		},
	}
}

// Dispatch routes an event to its handler. Handlers already notify the
// user, so the returned error is for logging only.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	h, ok := c.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("no handler for %s", ev.Kind)
	}
	if err := h(ctx, ev); err != nil {
		c.log.Debug("event failed", logging.String("event", ev.Kind.String()), logging.String("target", ev.Target), logging.Err(err))
		return err
	}
	return nil
}

// ParseEventKind maps the names printed by EventKind.String back to kinds
func ParseEventKind(name string) (EventKind, error) {
	for k := StructurePressed; k <= SubmitPressed; k++ {
		if k.String() == strings.ToLower(strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", name)
}
