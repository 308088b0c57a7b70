// Package menu implements the interactions menu: structure and ligand
// selection, per-category line settings and the calculate flow.
package menu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chemint/internal/application"
	"chemint/internal/application/commands"
	"chemint/internal/domain"
	"chemint/internal/logging"
	"chemint/internal/ports"
)

// Title shown at the top of the menu
const Title = "Chemical Interactions"

// Deps are the host-side collaborators of the controller
type Deps struct {
	Source     ports.StructureSource
	Presenter  ports.Presenter
	Scene      ports.Scene
	Codec      ports.StructureCodec
	Extractor  ports.LigandExtractor
	Calculator ports.InteractionCalculator
	Settings   ports.SettingsStore // optional
	Logger     logging.Logger      // optional
}

type structureEntry struct {
	button ports.Button
	index  int
}

type ligandEntry struct {
	button ports.Button
	ligand domain.Ligand
}

// selection tracks what the user picked. Every change bumps generation so
// that results of requests started for an older selection can be dropped.
type selection struct {
	structure  int // -1 when none
	ligand     *domain.Ligand
	generation uint64
	calculated bool // a calculation was submitted for this selection
}

// Controller owns the menu state. All exported methods are safe for
// concurrent use; host calls that may block run without holding the lock.
type Controller struct {
	source    ports.StructureSource
	presenter ports.Presenter
	scene     ports.Scene
	codec     ports.StructureCodec
	extractor ports.LigandExtractor
	calc      ports.InteractionCalculator
	store     ports.SettingsStore
	log       logging.Logger

	mu         sync.Mutex
	set        *domain.WorkingSet
	settings   *domain.SettingsTable
	structures []structureEntry
	ligands    []ligandEntry
	submit     ports.Button
	toggleAll  ports.Button
	selection  selection
	// structureGen changes only with the structure selection; pending
	// ligand extractions compare against it
	structureGen uint64
	extracting   bool
	calculating  bool

	handlers map[EventKind]handlerFunc
}

// NewController creates a controller and loads persisted category settings
func NewController(deps Deps) *Controller {
	log := deps.Logger
	if log == nil {
		log = logging.NewNop()
	}
	c := &Controller{
		source:    deps.Source,
		presenter: deps.Presenter,
		scene:     deps.Scene,
		codec:     deps.Codec,
		extractor: deps.Extractor,
		calc:      deps.Calculator,
		store:     deps.Settings,
		log:       log.Named("menu"),
		set:       domain.NewWorkingSet(nil),
		settings:  domain.NewSettingsTable(),
		toggleAll: ports.Button{ID: string(ports.ToggleAllButtonID), Text: application.HideAllText, Selected: true},
		selection: selection{structure: -1},
	}
	if c.store != nil {
		saved, err := c.store.LoadSettings()
		if err != nil {
			c.log.Warn("failed to load category settings", logging.Err(err))
		} else {
			c.settings.Apply(saved)
		}
	}
	c.refreshSubmitLocked()
	c.handlers = c.eventTable()
	return c
}

func submitButton() ports.Button {
	return ports.Button{ID: string(ports.SubmitButtonID), Text: application.SubmitText}
}

// Load lists the host structures and renders the menu with them
func (c *Controller) Load(ctx context.Context) error {
	structures, err := c.source.ListStructures(ctx)
	if err != nil {
		c.presenter.SendNotification(ports.SeverityError, "Failed to list structures")
		return fmt.Errorf("failed to list structures: %w", err)
	}
	return c.Render(ctx, structures)
}

// Render resets the working set to structures and shows the full menu.
// Any previous selection is dropped.
func (c *Controller) Render(ctx context.Context, structures []domain.Structure) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set.Reset(structures)
	c.selection = selection{structure: -1, generation: c.selection.generation + 1}
	// Lines of the dropped selection cannot be recomputed
	c.scene.ClearLines()
	c.structureGen++
	c.extracting = false
	c.refreshSubmitLocked()
	c.structures = c.structureEntries(-1)
	c.ligands = c.ligandEntries(c.set.All(), nil, "")

	m := c.menuLocked()
	c.presenter.UpdateContent(m.Structures)
	c.presenter.UpdateContent(m.Ligands)
	c.presenter.UpdateMenu(m)
	c.log.Debug("menu rendered", logging.Int("structures", c.set.Len()))
	return nil
}

// ToggleStructure flips the structure button with the given ID.
// At most one structure is selected at a time. Selecting a structure fetches
// its atoms when needed, extracts its ligands and rebuilds the ligand list.
func (c *Controller) ToggleStructure(ctx context.Context, id string) error {
	c.mu.Lock()
	pos := c.findStructure(id)
	if pos < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: structure button %s", application.ErrNotFound, id)
	}

	prev := c.selection
	prevSelected := c.selectedStructure()
	nowSelected := !c.structures[pos].button.Selected
	for i := range c.structures {
		c.structures[i].button.Selected = i == pos && nowSelected
	}
	c.selection = selection{structure: -1, generation: c.selection.generation + 1}
	c.structureGen++
	gen := c.structureGen

	if !nowSelected {
		c.extracting = false
		c.refreshSubmitLocked()
		c.ligands = c.ligandEntries(c.set.All(), nil, "")
		c.publishSelectionLocked()
		c.mu.Unlock()
		return nil
	}

	index := c.structures[pos].index
	c.selection.structure = index
	c.extracting = true
	c.refreshSubmitLocked()
	c.presenter.UpdateContent(c.structureList())
	c.presenter.UpdateContent(c.submitContent())
	s, _ := c.set.Get(index)
	c.mu.Unlock()

	deep, err := c.ensureDeep(ctx, s)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.structureGen {
			return nil
		}
		c.restoreSelectionLocked(prev, prevSelected)
		c.presenter.SendNotification(ports.SeverityError, fmt.Sprintf("Failed to load %s", s.Name))
		c.log.Error("deep fetch failed", logging.Int("structure", index), logging.Err(err))
		return err
	}

	var ligands []domain.Ligand
	res, extractErr := commands.NewExtractLigandsCommand(c.codec, c.extractor, deep).Execute(ctx)
	if extractErr == nil {
		ligands = res.Ligands
		c.log.Debug(res.Message)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.structureGen {
		c.log.Debug("dropping stale ligand extraction", logging.Int("structure", index))
		return nil
	}
	c.extracting = false
	c.refreshSubmitLocked()
	// ligands picked from the previous list while extracting no longer apply
	c.selection.ligand = nil
	c.selection.generation++
	c.ligands = c.ligandEntries(c.set.Except(index), ligands, "")
	c.publishSelectionLocked()
	if extractErr != nil {
		c.presenter.SendNotification(ports.SeverityWarning, fmt.Sprintf("Failed to extract ligands from %s", deep.Name))
		c.log.Error("ligand extraction failed", logging.Int("structure", index), logging.Err(extractErr))
		return extractErr
	}
	return nil
}

// ToggleLigand flips the ligand button with the given ID. At most one
// ligand is selected at a time.
func (c *Controller) ToggleLigand(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos := c.findLigand(id)
	if pos < 0 {
		return fmt.Errorf("%w: ligand button %s", application.ErrNotFound, id)
	}
	nowSelected := !c.ligands[pos].button.Selected
	for i := range c.ligands {
		c.ligands[i].button.Selected = i == pos && nowSelected
	}
	c.selection.ligand = nil
	if nowSelected {
		lig := c.ligands[pos].ligand
		c.selection.ligand = &lig
	}
	c.selection.generation++
	c.selection.calculated = false
	c.presenter.UpdateContent(c.ligandList())
	return nil
}

// ToggleCategoryVisibility shows or hides the lines of one category
func (c *Controller) ToggleCategoryVisibility(ctx context.Context, category string) error {
	c.mu.Lock()
	visible, err := c.settings.ToggleVisible(category)
	if err != nil {
		c.mu.Unlock()
		c.presenter.SendNotification(ports.SeverityError, application.UserMessage(err))
		return err
	}
	c.settingsChangedLocked()
	c.mu.Unlock()

	c.log.Debug("category visibility changed", logging.String("category", category), logging.Bool("visible", visible))
	return c.RecomputeLines(ctx)
}

// SetCategoryColor changes the line color of one category
func (c *Controller) SetCategoryColor(ctx context.Context, category, color string) error {
	c.mu.Lock()
	if err := c.settings.SetColor(category, color); err != nil {
		c.mu.Unlock()
		c.presenter.SendNotification(ports.SeverityError, application.UserMessage(err))
		return err
	}
	c.settingsChangedLocked()
	c.mu.Unlock()

	return c.RecomputeLines(ctx)
}

// CycleCategoryColor moves a category to the next palette color
func (c *Controller) CycleCategoryColor(ctx context.Context, category string) error {
	c.mu.Lock()
	cat, ok := c.settings.Get(category)
	c.mu.Unlock()
	if !ok {
		err := fmt.Errorf("%w: %s", application.ErrUnknownCategory, category)
		c.presenter.SendNotification(ports.SeverityError, err.Error())
		return err
	}
	return c.SetCategoryColor(ctx, category, domain.NextColor(cat.Color).Name)
}

// ToggleAll flips the toggle-all button and sets every category to its state
func (c *Controller) ToggleAll(ctx context.Context) error {
	c.mu.Lock()
	c.toggleAll.Selected = !c.toggleAll.Selected
	if c.toggleAll.Selected {
		c.toggleAll.Text = application.HideAllText
	} else {
		c.toggleAll.Text = application.ShowAllText
	}
	c.settings.SetAllVisible(c.toggleAll.Selected)
	c.persistLocked()
	c.presenter.UpdateMenu(c.menuLocked())
	c.mu.Unlock()

	return c.RecomputeLines(ctx)
}

// Submit validates the selection and runs the interaction calculation.
// Validation failures are reported to the user and are not errors.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.extracting || c.calculating {
		c.mu.Unlock()
		c.log.Debug("submit ignored while busy")
		return nil
	}
	selected := 0
	if c.selection.structure >= 0 {
		selected = 1
	}
	if err := application.ValidateStructureSelection(selected); err != nil {
		c.mu.Unlock()
		c.presenter.SendNotification(ports.SeverityError, application.UserMessage(err))
		return nil
	}
	if err := application.ValidateLigandSelection(c.selection.ligand != nil); err != nil {
		c.mu.Unlock()
		c.presenter.SendNotification(ports.SeverityError, application.UserMessage(err))
		return nil
	}

	c.selection.calculated = true
	j := c.jobLocked()
	c.calculating = true
	c.refreshSubmitLocked()
	c.presenter.UpdateContent(c.submitContent())
	c.mu.Unlock()

	res, err := c.calculate(ctx, j)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.calculating = false
	c.refreshSubmitLocked()
	c.presenter.UpdateContent(c.submitContent())
	if err != nil {
		c.reportCalculationErrorLocked(err)
		return err
	}
	if res == nil {
		return nil
	}
	c.presenter.SendNotification(ports.SeveritySuccess, fmt.Sprintf("Drew %d interaction lines", len(res.Lines)))
	return nil
}

// RecomputeLines recalculates and redraws the lines for the current selection.
// It does nothing until a calculation has been submitted for that selection.
func (c *Controller) RecomputeLines(ctx context.Context) error {
	c.mu.Lock()
	if !c.selection.calculated || c.selection.structure < 0 || c.selection.ligand == nil {
		c.mu.Unlock()
		return nil
	}
	j := c.jobLocked()
	c.mu.Unlock()

	_, err := c.calculate(ctx, j)
	if err != nil {
		c.mu.Lock()
		c.reportCalculationErrorLocked(err)
		c.mu.Unlock()
		return err
	}
	return nil
}

// OnStructureUpdated stores a structure edited outside the menu, relabels
// the lists and recomputes lines. Unknown structures are ignored.
func (c *Controller) OnStructureUpdated(ctx context.Context, s domain.Structure) error {
	c.mu.Lock()
	if !c.set.Replace(s) {
		c.mu.Unlock()
		c.log.Debug("ignoring update of unknown structure", logging.Int("structure", s.Index))
		return nil
	}
	c.structures = c.structureEntries(c.selectedStructure())
	c.relabelLigandsLocked()
	c.publishSelectionLocked()
	c.mu.Unlock()

	return c.RecomputeLines(ctx)
}

// WatchStructures forwards host-side structure updates to OnStructureUpdated
// until ctx is done
func (c *Controller) WatchStructures(ctx context.Context) error {
	return c.source.Watch(ctx, func(s domain.Structure) {
		if err := c.OnStructureUpdated(ctx, s); err != nil {
			c.log.Warn("structure update failed", logging.Int("structure", s.Index), logging.Err(err))
		}
	})
}

// Menu returns a snapshot of the menu
func (c *Controller) Menu() ports.Menu {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menuLocked()
}

// Lines returns the lines currently drawn in the scene
func (c *Controller) Lines() []domain.Line {
	return c.scene.Lines()
}

// Categories returns the current category settings in display order
func (c *Controller) Categories() []domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.Snapshot()
}

// SelectedStructure returns the selected structure, if any
func (c *Controller) SelectedStructure() (domain.Structure, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection.structure < 0 {
		return domain.Structure{}, false
	}
	return c.set.Get(c.selection.structure)
}

// SelectedLigand returns the selected ligand, if any
func (c *Controller) SelectedLigand() (domain.Ligand, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection.ligand == nil {
		return domain.Ligand{}, false
	}
	return *c.selection.ligand, true
}

// job is a calculation bound to the selection generation it was started for
type job struct {
	generation uint64
	structure  int
	ligand     domain.Ligand
	settings   []domain.Category
}

func (c *Controller) jobLocked() job {
	return job{
		generation: c.selection.generation,
		structure:  c.selection.structure,
		ligand:     *c.selection.ligand,
		settings:   c.settings.Snapshot(),
	}
}

// calculate runs j and draws its lines. A nil result with a nil error
// means the selection changed while the job ran and nothing was drawn.
func (c *Controller) calculate(ctx context.Context, j job) (*commands.CalculateResult, error) {
	c.mu.Lock()
	s, ok := c.set.Get(j.structure)
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: structure %d", application.ErrNotFound, j.structure)
	}

	deep, err := c.ensureDeep(ctx, s)
	if err != nil {
		return nil, err
	}

	cmd := commands.NewCalculateCommand(c.calc, &generationScene{c: c, generation: j.generation}, deep, &j.ligand, j.settings)
	if j.ligand.Owner != j.structure {
		c.mu.Lock()
		owner, ok := c.set.Get(j.ligand.Owner)
		c.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("%w: structure %d", application.ErrNotFound, j.ligand.Owner)
		}
		ownerDeep, err := c.ensureDeep(ctx, owner)
		if err != nil {
			return nil, err
		}
		cmd.WithLigandStructure(&ownerDeep)
	}

	res, err := cmd.Execute(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	stale := j.generation != c.selection.generation
	c.mu.Unlock()
	if stale {
		c.log.Debug("dropping stale calculation", logging.Uint64("generation", j.generation))
		return nil, nil
	}
	c.log.Info(res.Message, logging.Int("structure", j.structure), logging.String("ligand", j.ligand.Key()))
	return res, nil
}

// ensureDeep returns s with atomic data, fetching it from the host at most
// once per structure. The fetched copy is stored in the working set.
func (c *Controller) ensureDeep(ctx context.Context, s domain.Structure) (domain.Structure, error) {
	if !s.IsShallow() {
		return s, nil
	}
	fetched, err := c.source.FetchStructures(ctx, []int{s.Index})
	if err != nil {
		return domain.Structure{}, &application.FetchError{Index: s.Index, Err: err}
	}
	if len(fetched) != 1 || fetched[0].Index != s.Index || fetched[0].IsShallow() {
		return domain.Structure{}, &application.FetchError{Index: s.Index, Err: application.ErrShallowStructure}
	}
	deep := fetched[0]

	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.set.Get(s.Index); ok && cur.IsShallow() {
		c.set.Replace(deep)
	} else if ok {
		// A concurrent fetch or host update won.
		deep = cur
	}
	return deep, nil
}

// generationScene drops draws for a selection that is no longer current
type generationScene struct {
	c          *Controller
	generation uint64
}

func (g *generationScene) DrawLines(lines []domain.Line) {
	g.c.mu.Lock()
	defer g.c.mu.Unlock()
	if g.generation == g.c.selection.generation {
		g.c.scene.DrawLines(lines)
	}
}

func (g *generationScene) ClearLines() {
	g.c.mu.Lock()
	defer g.c.mu.Unlock()
	if g.generation == g.c.selection.generation {
		g.c.scene.ClearLines()
	}
}

func (g *generationScene) Lines() []domain.Line {
	return g.c.scene.Lines()
}

func (c *Controller) reportCalculationErrorLocked(err error) {
	if application.IsUserError(err) {
		c.presenter.SendNotification(ports.SeverityError, application.UserMessage(err))
		return
	}
	var fetchErr *application.FetchError
	if errors.As(err, &fetchErr) {
		c.presenter.SendNotification(ports.SeverityError, fmt.Sprintf("Failed to load structure %d", fetchErr.Index))
	} else {
		c.presenter.SendNotification(ports.SeverityError, "Interaction calculation failed")
	}
	c.log.Error("calculation failed", logging.Err(err))
}

func (c *Controller) restoreSelectionLocked(prev selection, prevSelected int) {
	for i := range c.structures {
		c.structures[i].button.Selected = c.structures[i].index == prevSelected
	}
	for i := range c.ligands {
		c.ligands[i].button.Selected = prev.ligand != nil && c.ligands[i].ligand.Key() == prev.ligand.Key()
	}
	prev.generation = c.selection.generation + 1
	c.selection = prev
	c.extracting = false
	c.refreshSubmitLocked()
	c.publishSelectionLocked()
}

// refreshSubmitLocked derives the submit button from the pending work
func (c *Controller) refreshSubmitLocked() {
	switch {
	case c.extracting:
		c.submit = ports.Button{ID: string(ports.SubmitButtonID), Text: application.ExtractingText, Unusable: true}
	case c.calculating:
		c.submit = ports.Button{ID: string(ports.SubmitButtonID), Text: application.CalculatingText, Unusable: true}
	default:
		c.submit = submitButton()
	}
}

func (c *Controller) settingsChangedLocked() {
	c.persistLocked()
	c.presenter.UpdateContent(c.interactionList())
}

func (c *Controller) persistLocked() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveSettings(c.settings.Saved()); err != nil {
		c.log.Warn("failed to save category settings", logging.Err(err))
	}
}

func (c *Controller) publishSelectionLocked() {
	c.presenter.UpdateContent(c.structureList())
	c.presenter.UpdateContent(c.ligandList())
	c.presenter.UpdateContent(c.submitContent())
}

func (c *Controller) selectedStructure() int {
	for _, e := range c.structures {
		if e.button.Selected {
			return e.index
		}
	}
	return -1
}

func (c *Controller) selectedLigandKey() string {
	if c.selection.ligand == nil {
		return ""
	}
	return c.selection.ligand.Key()
}

func (c *Controller) findStructure(id string) int {
	for i, e := range c.structures {
		if e.button.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) findLigand(id string) int {
	for i, e := range c.ligands {
		if e.button.ID == id {
			return i
		}
	}
	return -1
}

// structureEntries builds one button per structure in working set order,
// pressing the one whose index is selected
func (c *Controller) structureEntries(selected int) []structureEntry {
	all := c.set.All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	labels := domain.UniqueLabels(names)

	entries := make([]structureEntry, len(all))
	for i, s := range all {
		entries[i] = structureEntry{
			index: s.Index,
			button: ports.Button{
				ID:       s.ButtonID(),
				Text:     labels[i],
				Selected: s.Index == selected,
			},
		}
	}
	return entries
}

// ligandEntries lists the other structures first, then the extracted residues.
// Labels are unique across the whole list.
func (c *Controller) ligandEntries(others []domain.Structure, residues []domain.Ligand, selectedKey string) []ligandEntry {
	ligands := make([]domain.Ligand, 0, len(others)+len(residues))
	for _, s := range others {
		ligands = append(ligands, domain.WholeLigand(s.Shallow()))
	}
	ligands = append(ligands, residues...)

	names := make([]string, len(ligands))
	for i, l := range ligands {
		names[i] = l.DisplayName()
	}
	labels := domain.UniqueLabels(names)

	entries := make([]ligandEntry, len(ligands))
	seen := make(map[string]int, len(ligands))
	for i, l := range ligands {
		id := "ligand:" + l.Key()
		if n := seen[id]; n > 0 {
			id = fmt.Sprintf("%s#%d", id, n)
		}
		seen["ligand:"+l.Key()]++
		entries[i] = ligandEntry{
			ligand: l,
			button: ports.Button{ID: id, Text: labels[i], Selected: selectedKey != "" && l.Key() == selectedKey},
		}
	}
	return entries
}

// relabelLigandsLocked refreshes whole-structure ligand names after a rename,
// keeping extracted residues and the current ligand selection
func (c *Controller) relabelLigandsLocked() {
	var others []domain.Structure
	if c.selection.structure >= 0 {
		others = c.set.Except(c.selection.structure)
	} else {
		others = c.set.All()
	}
	var residues []domain.Ligand
	for _, e := range c.ligands {
		if !e.ligand.Whole {
			residues = append(residues, e.ligand)
		}
	}
	c.ligands = c.ligandEntries(others, residues, c.selectedLigandKey())
}

func (c *Controller) structureList() ports.List {
	items := make([]ports.Button, len(c.structures))
	for i, e := range c.structures {
		items[i] = e.button
	}
	return ports.List{ID: ports.StructureListID, Items: items}
}

func (c *Controller) ligandList() ports.List {
	items := make([]ports.Button, len(c.ligands))
	for i, e := range c.ligands {
		items[i] = e.button
	}
	return ports.List{ID: ports.LigandListID, Items: items}
}

func (c *Controller) interactionList() ports.InteractionList {
	cats := c.settings.Snapshot()
	rows := make([]ports.InteractionRow, len(cats))
	for i, cat := range cats {
		rows[i] = ports.InteractionRow{
			Category: cat.Name,
			Label:    cat.Label,
			Visible:  cat.Visible,
			Color:    cat.Color,
			ColorHex: cat.RGB().Hex(),
		}
	}
	return ports.InteractionList{Rows: rows}
}

func (c *Controller) submitContent() ports.ButtonContent {
	return ports.ButtonContent{Widget: ports.SubmitButtonID, Button: c.submit}
}

func (c *Controller) menuLocked() ports.Menu {
	return ports.Menu{
		Title:        Title,
		Structures:   c.structureList(),
		Ligands:      c.ligandList(),
		Interactions: c.interactionList(),
		Submit:       c.submit,
		ToggleAll:    c.toggleAll,
	}
}
