package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"chemint/internal/adapters/tui/styles"
	"chemint/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// CloseHelpMsg asks the app to return to the menu
type CloseHelpMsg struct{}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseHelpMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("Chemical Interactions Help").
		Muted("Pick a complex, pick a ligand, then calculate.").
		BlankLine()

	v.Section("Navigation")
	v.Raw(helpLine("j / k / ↑ / ↓", "Move up/down"))
	v.Raw(helpLine("tab / shift+tab", "Switch pane"))
	v.BlankLine()

	v.Section("Actions")
	v.Raw(helpLine("enter / space", "Select complex or ligand, show/hide category"))
	v.Raw(helpLine("c", "Cycle the color of a category"))
	v.Raw(helpLine("a", "Hide or show every category"))
	v.Raw(helpLine("s", "Calculate interactions"))
	v.Raw(helpLine("y", "Copy the drawn lines"))
	v.Raw(helpLine("e", "Open the selected complex in a viewer"))
	v.BlankLine()

	v.Section("General")
	v.Raw(helpLine("?", "Toggle help"))
	v.Raw(helpLine("q / Ctrl+C", "Quit"))
	v.BlankLine()

	v.Section("Colors")
	names := make([]string, 0, len(domain.Palette))
	for _, c := range domain.Palette {
		names = append(names, styles.Swatch(c.RGB.Hex())+" "+c.Name)
	}
	v.Line("  " + strings.Join(names, "  "))
	v.BlankLine()

	v.Raw(styles.HelpDesc.Render("Press ") + styles.HelpKey.Render("esc") +
		styles.HelpDesc.Render(" or ") + styles.HelpKey.Render("?") +
		styles.HelpDesc.Render(" to close"))

	return v.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
