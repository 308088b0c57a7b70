// Package editor opens structure files in an external viewer or editor
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ViewerEnv names the environment variable that overrides the viewer
const ViewerEnv = "CHEMINT_VIEWER"

// fallbacks are tried in order when no environment variable is set
var fallbacks = []string{"pymol", "chimerax", "vmd", "nvim", "vim", "vi", "less"}

// Opener launches the user's structure viewer
type Opener struct {
	lookPath func(string) (string, error)
}

// NewOpener creates a new opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath}
}

// OpenFile opens path and waits for the viewer to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening path, attached to the terminal.
// It suits bubbletea's ExecProcess.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	viewer := o.findViewer()
	if viewer == "" {
		return nil, fmt.Errorf("no viewer found: set $%s or $EDITOR", ViewerEnv)
	}

	// Allow "chimerax --nogui" style values
	parts := strings.Fields(viewer)
	args := append(parts[1:], path)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findViewer() string {
	for _, env := range []string{ViewerEnv, "VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}

	for _, name := range fallbacks {
		if path, err := o.lookPath(name); err == nil {
			return path
		}
	}
	return ""
}
