package views

import (
	"strings"

	"chemint/internal/adapters/tui/styles"
	"chemint/internal/ports"
)

// PaneRow is one row of a pane
type PaneRow struct {
	Text     string
	Selected bool
	Unusable bool
	Checkbox bool   // draw Selected as a checkbox instead of a highlight
	Swatch   string // #rrggbb, optional
}

// Pane is a titled list with a cursor
type Pane struct {
	Title   string
	Rows    []PaneRow
	Window  *Window
	Focused bool
	Width   int
	Empty   string // shown when there are no rows
}

// ListRows converts a button list into pane rows
func ListRows(l ports.List) []PaneRow {
	rows := make([]PaneRow, len(l.Items))
	for i, b := range l.Items {
		rows[i] = PaneRow{Text: b.Text, Selected: b.Selected, Unusable: b.Unusable}
	}
	return rows
}

// InteractionRows converts the settings list into pane rows
func InteractionRows(l ports.InteractionList) []PaneRow {
	rows := make([]PaneRow, len(l.Rows))
	for i, r := range l.Rows {
		rows[i] = PaneRow{
			Text:     r.Label + " (" + r.Color + ")",
			Selected: r.Visible,
			Checkbox: true,
			Swatch:   r.ColorHex,
		}
	}
	return rows
}

// View renders the pane
func (p Pane) View() string {
	var b strings.Builder
	b.WriteString(styles.PaneTitle.Render(p.Title))
	b.WriteString("\n")

	if len(p.Rows) == 0 {
		b.WriteString(styles.MutedText.Render(p.Empty))
	} else {
		start, end := 0, len(p.Rows)
		cursor := -1
		if p.Window != nil {
			start, end = p.Window.VisibleRange()
			cursor = p.Window.Cursor()
		}
		for i := start; i < end; i++ {
			b.WriteString(p.renderRow(p.Rows[i], p.Focused && i == cursor))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	style := styles.Pane
	if p.Focused {
		style = styles.PaneFocused
	}
	if p.Width > 0 {
		style = style.Width(p.Width)
	}
	return style.Render(b.String())
}

func (p Pane) renderRow(r PaneRow, atCursor bool) string {
	text := r.Text
	if r.Checkbox {
		if r.Selected {
			text = styles.CheckOn + text
		} else {
			text = styles.CheckOff + text
		}
	}

	var line string
	switch {
	case atCursor:
		line = styles.RowCursor.Render(text)
	case r.Unusable:
		line = styles.RowUnusable.Render(text)
	case r.Selected && !r.Checkbox:
		line = styles.RowSelected.Render("● " + text)
	default:
		line = styles.Row.Render(text)
	}
	if r.Swatch != "" {
		line = styles.Swatch(r.Swatch) + " " + line
	}
	return line
}
