package cmd

import (
	"context"
	"fmt"

	"chemint/internal/application"
	"chemint/internal/ports"
)

// selectStructure selects the complex named by ref and extracts its ligands
func selectStructure(ctx context.Context, ref string) (ports.Button, error) {
	b, err := application.ResolveButton(rt.Controller.Menu().Structures, ref)
	if err != nil {
		return ports.Button{}, fmt.Errorf("structure %w", err)
	}
	if b.Selected {
		return b, nil
	}
	if err := rt.Controller.ToggleStructure(ctx, b.ID); err != nil {
		return ports.Button{}, err
	}
	return b, nil
}

// selectLigand selects the ligand named by ref in the current ligand list
func selectLigand(ctx context.Context, ref string) (ports.Button, error) {
	b, err := application.ResolveButton(rt.Controller.Menu().Ligands, ref)
	if err != nil {
		return ports.Button{}, fmt.Errorf("ligand %w", err)
	}
	if b.Selected {
		return b, nil
	}
	if err := rt.Controller.ToggleLigand(ctx, b.ID); err != nil {
		return ports.Button{}, err
	}
	return b, nil
}

// calculate selects both sides and submits
func calculate(ctx context.Context, structureRef, ligandRef string) error {
	if _, err := selectStructure(ctx, structureRef); err != nil {
		return err
	}
	if _, err := selectLigand(ctx, ligandRef); err != nil {
		return err
	}
	return rt.Controller.Submit(ctx)
}
