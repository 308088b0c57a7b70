package views

import (
	"strings"
	"testing"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

func TestWindow_FollowsCursor(t *testing.T) {
	w := NewWindow(3)
	w.SetTotal(10)

	for i := 0; i < 5; i++ {
		w.Down()
	}
	if w.Cursor() != 5 {
		t.Fatalf("cursor = %d, want 5", w.Cursor())
	}
	start, end := w.VisibleRange()
	if start != 3 || end != 6 {
		t.Errorf("VisibleRange() = %d, %d, want 3, 6", start, end)
	}

	w.SetCursor(0)
	start, end = w.VisibleRange()
	if start != 0 || end != 3 {
		t.Errorf("VisibleRange() after SetCursor(0) = %d, %d, want 0, 3", start, end)
	}
	if w.Up() {
		t.Error("Up() at top should report false")
	}
}

func TestWindow_ShrinkingListClampsCursor(t *testing.T) {
	w := NewWindow(4)
	w.SetTotal(8)
	w.SetCursor(7)

	w.SetTotal(2)
	if w.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", w.Cursor())
	}
	start, end := w.VisibleRange()
	if start != 0 || end != 2 {
		t.Errorf("VisibleRange() = %d, %d, want 0, 2", start, end)
	}

	w.SetTotal(0)
	if w.Cursor() != 0 || w.Down() {
		t.Error("empty window should keep cursor at 0")
	}
}

func TestInteractionRows(t *testing.T) {
	rows := InteractionRows(ports.InteractionList{Rows: []ports.InteractionRow{
		{Category: "hbond", Label: "Hydrogen Bonds", Visible: true, Color: "blue", ColorHex: "#0000ff"},
		{Category: "vdw", Label: "Van der Waals", Visible: false, Color: "white", ColorHex: "#ffffff"},
	}})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !rows[0].Checkbox || !rows[0].Selected || rows[0].Swatch != "#0000ff" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Selected {
		t.Error("hidden category rendered as visible")
	}
	if rows[0].Text != "Hydrogen Bonds (blue)" {
		t.Errorf("text = %q", rows[0].Text)
	}
}

func TestPane_ViewShowsEmptyText(t *testing.T) {
	p := Pane{Title: "Ligands", Empty: "Select a complex first"}
	out := p.View()
	if !strings.Contains(out, "Ligands") || !strings.Contains(out, "Select a complex first") {
		t.Errorf("View() = %q", out)
	}
}

func TestPane_ViewShowsVisibleRowsOnly(t *testing.T) {
	w := NewWindow(2)
	w.SetTotal(3)
	p := Pane{
		Title:  "Complexes",
		Window: w,
		Rows:   ListRows(ports.List{Items: []ports.Button{{Text: "1tyl"}, {Text: "2abc"}, {Text: "3xyz"}}}),
	}
	out := p.View()
	if !strings.Contains(out, "1tyl") || !strings.Contains(out, "2abc") {
		t.Errorf("visible rows missing: %q", out)
	}
	if strings.Contains(out, "3xyz") {
		t.Errorf("row outside the window rendered: %q", out)
	}
}

func sampleLines() []domain.Line {
	lig := domain.Endpoint{Atom: domain.Atom{Name: "N1", ResName: "STR", Chain: "A", ResSeq: 301}}
	asp := domain.Endpoint{Atom: domain.Atom{Name: "OD1", ResName: "ASP", Chain: "A", ResSeq: 25}}
	return []domain.Line{
		{Category: domain.CategoryHBond, From: lig, To: asp, Distance: 2.9, Color: domain.RGB{B: 255}},
		{Category: domain.CategoryHBond, From: lig, To: asp, Distance: 3.1, Color: domain.RGB{B: 255}},
		{Category: domain.CategoryIonic, From: lig, To: asp, Distance: 3.5, Color: domain.RGB{R: 255}},
	}
}

func TestLinesSummary(t *testing.T) {
	out := LinesSummary(sampleLines())
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !strings.Contains(rows[0], "A/STR301/N1") || !strings.Contains(rows[0], "A/ASP25/OD1") || !strings.Contains(rows[0], "2.90") {
		t.Errorf("row 0 = %q", rows[0])
	}
}

func TestRenderLines(t *testing.T) {
	if out := RenderLines(nil, 5); !strings.Contains(out, "No interaction lines") {
		t.Errorf("RenderLines(nil) = %q", out)
	}

	out := RenderLines(sampleLines(), 2)
	if !strings.Contains(out, "hbond 2, ionic 1") {
		t.Errorf("tally missing: %q", out)
	}
	if !strings.Contains(out, "1 more") {
		t.Errorf("overflow marker missing: %q", out)
	}
}

func TestRenderMessage(t *testing.T) {
	if RenderMessage("", ports.SeverityError) != "" {
		t.Error("empty message should render empty")
	}
	if !strings.Contains(RenderMessage("Drew 9 interaction lines", ports.SeveritySuccess), "Drew 9 interaction lines") {
		t.Error("message text lost")
	}
}
