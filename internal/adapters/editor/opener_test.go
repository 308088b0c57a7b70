package editor

import (
	"errors"
	"testing"
)

func noBinaries(string) (string, error) { return "", errors.New("not found") }

func TestCommand_PrefersViewerEnv(t *testing.T) {
	t.Setenv(ViewerEnv, "chimerax --nogui")
	t.Setenv("EDITOR", "nano")

	o := &Opener{lookPath: noBinaries}
	cmd, err := o.Command("/data/1tyl.pdb")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	want := []string{"chimerax", "--nogui", "/data/1tyl.pdb"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
}

func TestCommand_FallsBackToEditor(t *testing.T) {
	t.Setenv(ViewerEnv, "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")

	o := &Opener{lookPath: noBinaries}
	cmd, err := o.Command("a.pdb")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if cmd.Args[0] != "nano" {
		t.Errorf("viewer = %q, want nano", cmd.Args[0])
	}
}

func TestCommand_SearchesPath(t *testing.T) {
	t.Setenv(ViewerEnv, "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	o := &Opener{lookPath: func(name string) (string, error) {
		if name == "vi" {
			return "/usr/bin/vi", nil
		}
		return "", errors.New("not found")
	}}
	cmd, err := o.Command("a.pdb")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if cmd.Path != "/usr/bin/vi" {
		t.Errorf("path = %q, want /usr/bin/vi", cmd.Path)
	}
}

func TestCommand_NoViewer(t *testing.T) {
	t.Setenv(ViewerEnv, "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	o := &Opener{lookPath: noBinaries}
	if _, err := o.Command("a.pdb"); err == nil {
		t.Error("Command() expected error when nothing is installed")
	}
}
