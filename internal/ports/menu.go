package ports

// ContentID names a widget of the menu
type ContentID string

const (
	StructureListID   ContentID = "structures"
	LigandListID      ContentID = "ligands"
	InteractionListID ContentID = "interactions"
	SubmitButtonID    ContentID = "submit"
	ToggleAllButtonID ContentID = "toggle_all"
)

// Content is a widget that can be refreshed on its own
type Content interface {
	ContentID() ContentID
}

// Button is a pressable, optionally toggled widget
type Button struct {
	ID       string
	Text     string
	Selected bool
	Unusable bool // greyed out while a request is pending
}

// ButtonContent wraps a standalone button (submit, toggle all)
type ButtonContent struct {
	Widget ContentID
	Button Button
}

func (b ButtonContent) ContentID() ContentID { return b.Widget }

// List is a vertical list of buttons
type List struct {
	ID    ContentID
	Items []Button
}

func (l List) ContentID() ContentID { return l.ID }

// Selected returns the selected buttons
func (l List) Selected() []Button {
	var out []Button
	for _, b := range l.Items {
		if b.Selected {
			out = append(out, b)
		}
	}
	return out
}

// InteractionRow is one row of the interaction settings list
type InteractionRow struct {
	Category string
	Label    string
	Visible  bool
	Color    string
	ColorHex string
}

// InteractionList is the settings list, one row per category
type InteractionList struct {
	Rows []InteractionRow
}

func (InteractionList) ContentID() ContentID { return InteractionListID }

// Menu is a full snapshot of the plugin menu
type Menu struct {
	Title        string
	Structures   List
	Ligands      List
	Interactions InteractionList
	Submit       Button
	ToggleAll    Button
}

// Clone returns a deep copy safe to hand to another goroutine
func (m Menu) Clone() Menu {
	m.Structures = m.Structures.Clone()
	m.Ligands = m.Ligands.Clone()
	m.Interactions.Rows = append([]InteractionRow(nil), m.Interactions.Rows...)
	return m
}

// Clone returns a copy of the list with its own items slice
func (l List) Clone() List {
	l.Items = append([]Button(nil), l.Items...)
	return l
}

// Apply replaces the widget content refers to
func (m *Menu) Apply(content Content) {
	switch c := content.(type) {
	case List:
		switch c.ID {
		case StructureListID:
			m.Structures = c.Clone()
		case LigandListID:
			m.Ligands = c.Clone()
		}
	case InteractionList:
		m.Interactions.Rows = append([]InteractionRow(nil), c.Rows...)
	case ButtonContent:
		switch c.Widget {
		case SubmitButtonID:
			m.Submit = c.Button
		case ToggleAllButtonID:
			m.ToggleAll = c.Button
		}
	}
}
