// Package tui is the terminal front end of the interactions menu
package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chemint/internal/adapters/editor"
	"chemint/internal/adapters/tui/styles"
	"chemint/internal/adapters/tui/views"
	"chemint/internal/application"
	"chemint/internal/domain"
	"chemint/internal/ports"
)

// Controller is the menu logic the TUI drives
type Controller interface {
	Load(ctx context.Context) error
	ToggleStructure(ctx context.Context, id string) error
	ToggleLigand(ctx context.Context, id string) error
	ToggleCategoryVisibility(ctx context.Context, category string) error
	CycleCategoryColor(ctx context.Context, category string) error
	ToggleAll(ctx context.Context) error
	Submit(ctx context.Context) error
	SelectedStructure() (domain.Structure, bool)
}

// PathResolver returns the file a structure was loaded from
type PathResolver func(index int) (string, error)

// ViewState represents the current view
type ViewState int

const (
	ViewMenu ViewState = iota
	ViewHelp
)

type paneID int

const (
	paneStructures paneID = iota
	paneLigands
	paneInteractions
	paneCount
)

const maxLineRows = 12

type actionDoneMsg struct{ err error }

type editorFinishedMsg struct{ err error }

// App is the main TUI application model
type App struct {
	ctx    context.Context
	ctrl   Controller
	viewer *editor.Opener
	paths  PathResolver
	copy   func(string) error

	state   ViewState
	help    *views.HelpModel
	menu    ports.Menu
	lines   []domain.Line
	focus   paneID
	windows [paneCount]*views.Window
	status  views.Status
	spinner spinner.Model

	width  int
	height int
}

// NewApp creates a new TUI application. viewer and paths may be nil.
func NewApp(ctx context.Context, ctrl Controller, viewer *editor.Opener, paths PathResolver) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	a := &App{
		ctx:     ctx,
		ctrl:    ctrl,
		viewer:  viewer,
		paths:   paths,
		copy:    clipboard.WriteAll,
		help:    views.NewHelpModel(),
		spinner: s,
	}
	for i := range a.windows {
		a.windows[i] = views.NewWindow(10)
	}
	return a
}

// Init loads the structures and starts the spinner
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.run(a.ctrl.Load))
}

// run executes a controller call off the event loop
func (a *App) run(fn func(ctx context.Context) error) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return actionDoneMsg{err: fn(ctx)}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.SetSize(msg.Width, msg.Height)
		a.resizeWindows()
		return a, nil

	case menuMsg:
		a.menu = msg.menu
		a.syncWindows()
		return a, nil

	case contentMsg:
		a.menu.Apply(msg.content)
		a.syncWindows()
		return a, nil

	case notificationMsg:
		a.status.Set(msg.severity, msg.message)
		return a, nil

	case linesMsg:
		a.lines = msg.lines
		return a, nil

	case actionDoneMsg:
		if msg.err != nil {
			a.status.Set(ports.SeverityError, application.UserMessage(msg.err))
		}
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.status.Set(ports.SeverityError, msg.err.Error())
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case views.CloseHelpMsg:
		a.state = ViewMenu
		return a, nil
	}

	if a.state == ViewHelp {
		_, cmd := a.help.Update(msg)
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	a.status.Clear()
	w := a.windows[a.focus]

	switch {
	case key.Matches(msg, views.MenuKeys.Quit):
		return tea.Quit

	case key.Matches(msg, views.MenuKeys.Help):
		a.state = ViewHelp
		return nil

	case key.Matches(msg, views.MenuKeys.Up):
		w.Up()
		return nil

	case key.Matches(msg, views.MenuKeys.Down):
		w.Down()
		return nil

	case key.Matches(msg, views.MenuKeys.NextPane):
		a.focus = (a.focus + 1) % paneCount
		return nil

	case key.Matches(msg, views.MenuKeys.PrevPane):
		a.focus = (a.focus + paneCount - 1) % paneCount
		return nil

	case key.Matches(msg, views.MenuKeys.Toggle):
		return a.toggleAtCursor()

	case key.Matches(msg, views.MenuKeys.Color):
		if a.focus != paneInteractions {
			return nil
		}
		if row, ok := a.interactionAtCursor(); ok {
			category := row.Category
			return a.run(func(ctx context.Context) error {
				return a.ctrl.CycleCategoryColor(ctx, category)
			})
		}
		return nil

	case key.Matches(msg, views.MenuKeys.ToggleAll):
		return a.run(a.ctrl.ToggleAll)

	case key.Matches(msg, views.MenuKeys.Calculate):
		if a.menu.Submit.Unusable {
			return nil
		}
		return a.run(a.ctrl.Submit)

	case key.Matches(msg, views.MenuKeys.Copy):
		return a.copyLines()

	case key.Matches(msg, views.MenuKeys.Open):
		return a.openViewer()
	}
	return nil
}

func (a *App) toggleAtCursor() tea.Cmd {
	cursor := a.windows[a.focus].Cursor()

	switch a.focus {
	case paneStructures:
		if cursor >= len(a.menu.Structures.Items) {
			return nil
		}
		id := a.menu.Structures.Items[cursor].ID
		return a.run(func(ctx context.Context) error {
			return a.ctrl.ToggleStructure(ctx, id)
		})

	case paneLigands:
		if cursor >= len(a.menu.Ligands.Items) || a.menu.Ligands.Items[cursor].Unusable {
			return nil
		}
		id := a.menu.Ligands.Items[cursor].ID
		return a.run(func(ctx context.Context) error {
			return a.ctrl.ToggleLigand(ctx, id)
		})

	case paneInteractions:
		row, ok := a.interactionAtCursor()
		if !ok {
			return nil
		}
		category := row.Category
		return a.run(func(ctx context.Context) error {
			return a.ctrl.ToggleCategoryVisibility(ctx, category)
		})
	}
	return nil
}

func (a *App) interactionAtCursor() (ports.InteractionRow, bool) {
	cursor := a.windows[paneInteractions].Cursor()
	if cursor >= len(a.menu.Interactions.Rows) {
		return ports.InteractionRow{}, false
	}
	return a.menu.Interactions.Rows[cursor], true
}

func (a *App) copyLines() tea.Cmd {
	if len(a.lines) == 0 {
		a.status.Set(ports.SeverityWarning, "No lines to copy")
		return nil
	}
	if err := a.copy(views.LinesSummary(a.lines)); err != nil {
		a.status.Set(ports.SeverityError, fmt.Sprintf("Copy failed: %v", err))
		return nil
	}
	a.status.Set(ports.SeveritySuccess, fmt.Sprintf("Copied %d lines", len(a.lines)))
	return nil
}

func (a *App) openViewer() tea.Cmd {
	if a.viewer == nil || a.paths == nil {
		return nil
	}
	s, ok := a.ctrl.SelectedStructure()
	if !ok {
		a.status.Set(ports.SeverityWarning, "Please Select a Complex")
		return nil
	}
	path, err := a.paths(s.Index)
	if err != nil {
		a.status.Set(ports.SeverityError, err.Error())
		return nil
	}

	cmd, err := a.viewer.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (a *App) syncWindows() {
	a.windows[paneStructures].SetTotal(len(a.menu.Structures.Items))
	a.windows[paneLigands].SetTotal(len(a.menu.Ligands.Items))
	a.windows[paneInteractions].SetTotal(len(a.menu.Interactions.Rows))
}

func (a *App) resizeWindows() {
	// title, buttons, lines pane, status and help take the rest
	rows := a.height - maxLineRows - 14
	for _, w := range a.windows {
		w.SetHeight(rows)
	}
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}

	paneWidth := 0
	if a.width > 0 {
		paneWidth = max(20, (a.width-10)/3)
	}
	panes := []views.Pane{
		{Title: "Complexes", Rows: views.ListRows(a.menu.Structures), Empty: "No structures found"},
		{Title: "Ligands", Rows: views.ListRows(a.menu.Ligands), Empty: "Select a complex first"},
		{Title: "Interactions", Rows: views.InteractionRows(a.menu.Interactions)},
	}
	rendered := make([]string, len(panes))
	for i := range panes {
		panes[i].Window = a.windows[i]
		panes[i].Focused = paneID(i) == a.focus
		panes[i].Width = paneWidth
		rendered[i] = panes[i].View()
	}

	buttons := views.RenderButton(a.menu.Submit) + " " + views.RenderButton(a.menu.ToggleAll)
	if a.menu.Submit.Unusable {
		buttons += " " + a.spinner.View()
	}

	title := a.menu.Title
	if title == "" {
		title = "Loading..."
	}

	v := views.NewViewBuilder().
		Title(title).
		Line(lipgloss.JoinHorizontal(lipgloss.Top, rendered...)).
		BlankLine().
		Line(buttons).
		BlankLine().
		Line(views.RenderLines(a.lines, maxLineRows)).
		BlankLine()
	if a.status.Message != "" {
		v.Line(a.status.View())
	}
	v.Help(views.MenuKeys.NextPane, views.MenuKeys.Toggle, views.MenuKeys.Calculate,
		views.MenuKeys.Color, views.MenuKeys.Help, views.MenuKeys.Quit)
	return v.String()
}
