package headless

import (
	"testing"

	"chemint/internal/ports"
)

func TestPresenter_UpdateContent(t *testing.T) {
	p := NewPresenter(nil)
	p.UpdateMenu(ports.Menu{
		Title:      "Chemical Interactions",
		Structures: ports.List{ID: ports.StructureListID, Items: []ports.Button{{ID: "structure:0", Text: "1tyl"}}},
	})

	p.UpdateContent(ports.List{ID: ports.LigandListID, Items: []ports.Button{{ID: "ligand:0:A:STR:301", Text: "STR"}}})
	p.UpdateContent(ports.ButtonContent{Widget: ports.SubmitButtonID, Button: ports.Button{Text: "Calculating...", Unusable: true}})
	p.UpdateContent(ports.InteractionList{Rows: []ports.InteractionRow{{Category: "hbond", Visible: true}}})

	m := p.Menu()
	if m.Title != "Chemical Interactions" {
		t.Errorf("title = %q", m.Title)
	}
	if len(m.Structures.Items) != 1 {
		t.Errorf("structure list was overwritten: %+v", m.Structures)
	}
	if len(m.Ligands.Items) != 1 || m.Ligands.Items[0].Text != "STR" {
		t.Errorf("ligands = %+v", m.Ligands.Items)
	}
	if !m.Submit.Unusable {
		t.Error("submit button not updated")
	}
	if len(m.Interactions.Rows) != 1 {
		t.Errorf("rows = %+v", m.Interactions.Rows)
	}
}

func TestPresenter_MenuIsACopy(t *testing.T) {
	p := NewPresenter(nil)
	items := []ports.Button{{ID: "structure:0"}}
	p.UpdateMenu(ports.Menu{Structures: ports.List{ID: ports.StructureListID, Items: items}})

	items[0].Selected = true
	if p.Menu().Structures.Items[0].Selected {
		t.Error("presenter shares the caller's slice")
	}
}

func TestPresenter_Notifications(t *testing.T) {
	p := NewPresenter(nil)
	if _, ok := p.Last(); ok {
		t.Fatal("Last() on empty presenter should report false")
	}

	p.SendNotification(ports.SeverityWarning, "No ligands found")
	p.SendNotification(ports.SeveritySuccess, "Drew 9 interaction lines")

	last, ok := p.Last()
	if !ok || last.Message != "Drew 9 interaction lines" || last.Severity != ports.SeveritySuccess {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
	if got := p.Drain(); len(got) != 2 {
		t.Errorf("Drain() returned %d notifications, want 2", len(got))
	}
	if got := p.Notifications(); len(got) != 0 {
		t.Errorf("Notifications() after Drain = %d, want 0", len(got))
	}
}
