package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chemint/internal/ports"
)

// DefaultSelfTestLines is the line count expected for the bundled sample
// with its first ligand and default category settings
const DefaultSelfTestLines = 9

var ErrSelfTestFailed = errors.New("self-test failed")

// SelfTest drives a complete round through the controller: list the
// structures, fetch the first one deeply, select it with its ligand-th
// residue ligand, calculate and count the drawn lines. The outcome is
// reported to presenter; a mismatch wraps ErrSelfTestFailed.
func (r *Runtime) SelfTest(ctx context.Context, presenter ports.Presenter, ligand, expect int) (int, error) {
	count, err := r.selfTest(ctx, ligand)
	if err == nil && count != expect {
		err = fmt.Errorf("%w: expected %d lines, got %d", ErrSelfTestFailed, expect, count)
	}
	if err != nil {
		presenter.SendNotification(ports.SeverityError, "Self-test failed: "+err.Error())
		return count, err
	}
	presenter.SendNotification(ports.SeveritySuccess, fmt.Sprintf("Self-test passed: %d lines", count))
	return count, nil
}

func (r *Runtime) selfTest(ctx context.Context, ligand int) (int, error) {
	structures, err := r.Workspace.ListStructures(ctx)
	if err != nil {
		return 0, err
	}
	if len(structures) == 0 {
		return 0, fmt.Errorf("%w: no structures", ErrSelfTestFailed)
	}
	deep, err := r.Workspace.FetchStructures(ctx, []int{structures[0].Index})
	if err != nil {
		return 0, err
	}
	if len(deep) != 1 || len(deep[0].Atoms) == 0 {
		return 0, fmt.Errorf("%w: %s has no atoms", ErrSelfTestFailed, structures[0].Name)
	}

	if err := r.Controller.Load(ctx); err != nil {
		return 0, err
	}
	if err := r.Controller.ToggleStructure(ctx, structures[0].ButtonID()); err != nil {
		return 0, err
	}

	var residues []ports.Button
	for _, b := range r.Controller.Menu().Ligands.Items {
		if !strings.HasSuffix(b.ID, ":*") {
			residues = append(residues, b)
		}
	}
	if ligand < 0 || ligand >= len(residues) {
		return 0, fmt.Errorf("%w: %s has %d ligands, wanted #%d", ErrSelfTestFailed, structures[0].Name, len(residues), ligand)
	}
	if err := r.Controller.ToggleLigand(ctx, residues[ligand].ID); err != nil {
		return 0, err
	}
	if err := r.Controller.Submit(ctx); err != nil {
		return 0, err
	}
	return len(r.Scene.Lines()), nil
}
