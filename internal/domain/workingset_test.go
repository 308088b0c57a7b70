package domain

import "testing"

func TestWorkingSet_Replace(t *testing.T) {
	ws := NewWorkingSet([]Structure{
		{Index: 1, Name: "1tyl"},
		{Index: 2, Name: "4hhb"},
	})
	before := ws.Version()

	deep := Structure{Index: 2, Name: "4hhb", Deep: true, Atoms: []Atom{{Serial: 1}}}
	if !ws.Replace(deep) {
		t.Fatal("expected replace to find index 2")
	}

	got, ok := ws.Get(2)
	if !ok || !got.Deep || len(got.Atoms) != 1 {
		t.Errorf("expected deep copy in working set, got %+v", got)
	}
	if ws.Version() == before {
		t.Error("expected version to change after replace")
	}

	if ws.Replace(Structure{Index: 9}) {
		t.Error("expected replace of unknown index to fail")
	}
}

func TestWorkingSet_ResetCopiesInput(t *testing.T) {
	input := []Structure{{Index: 1, Name: "a"}}
	ws := NewWorkingSet(input)
	input[0].Name = "mutated"

	got, _ := ws.Get(1)
	if got.Name != "a" {
		t.Errorf("working set should not alias input, got %q", got.Name)
	}
}

func TestWorkingSet_Except(t *testing.T) {
	ws := NewWorkingSet([]Structure{{Index: 1}, {Index: 2}, {Index: 3}})

	rest := ws.Except(2)
	if len(rest) != 2 || rest[0].Index != 1 || rest[1].Index != 3 {
		t.Errorf("unexpected result: %+v", rest)
	}
	if ws.Len() != 3 {
		t.Errorf("Except must not mutate the set")
	}
}
