package commands

import (
	"context"
	"fmt"

	"chemint/internal/application"
	"chemint/internal/domain"
	"chemint/internal/ports"
)

// CalculateResult contains the outcome of an interaction calculation
type CalculateResult struct {
	Interactions []domain.Interaction
	Lines        []domain.Line
	Message      string
}

// CalculateCommand detects interactions between a ligand and a structure
// and redraws the scene with the lines of the visible categories
type CalculateCommand struct {
	calc            ports.InteractionCalculator
	scene           ports.Scene
	Structure       domain.Structure
	Ligand          *domain.Ligand
	LigandStructure *domain.Structure
	Settings        []domain.Category
}

// NewCalculateCommand creates a new CalculateCommand
func NewCalculateCommand(calc ports.InteractionCalculator, scene ports.Scene, s domain.Structure, ligand *domain.Ligand, settings []domain.Category) *CalculateCommand {
	return &CalculateCommand{
		calc:      calc,
		scene:     scene,
		Structure: s,
		Ligand:    ligand,
		Settings:  settings,
	}
}

// WithLigandStructure sets the deep owner of a ligand taken from another structure
func (c *CalculateCommand) WithLigandStructure(s *domain.Structure) *CalculateCommand {
	c.LigandStructure = s
	return c
}

// Validate checks if the calculation can run
func (c *CalculateCommand) Validate() error {
	if err := application.ValidateDeep("structure", c.Structure); err != nil {
		return err
	}
	if err := application.ValidateLigandSelection(c.Ligand != nil); err != nil {
		return err
	}
	if c.Ligand.Owner != c.Structure.Index {
		if c.LigandStructure == nil {
			return &application.ValidationError{
				Field:   "ligand",
				Message: fmt.Sprintf("structure %d owning %s was not fetched", c.Ligand.Owner, c.Ligand.DisplayName()),
				Err:     application.ErrShallowStructure,
			}
		}
		if err := application.ValidateDeep("ligand", *c.LigandStructure); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the calculate command
func (c *CalculateCommand) Execute(ctx context.Context) (*CalculateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Ligand atoms are taken from the current owner so that edits made
	// after extraction are picked up.
	owner := c.Structure
	if c.Ligand.Owner != c.Structure.Index {
		owner = *c.LigandStructure
	}
	ligand := *c.Ligand
	ligand.Atoms = ligandAtoms(owner, ligand)
	if len(ligand.Atoms) == 0 {
		return nil, &application.ValidationError{
			Field:   "ligand",
			Message: fmt.Sprintf("%s no longer exists in %s", ligand.DisplayName(), owner.Name),
			Err:     application.ErrNotFound,
		}
	}

	interactions, err := c.calc.Calculate(ctx, ports.CalculationRequest{
		Structure:       c.Structure,
		Ligand:          ligand,
		LigandStructure: c.LigandStructure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate interactions: %w", err)
	}

	lines := domain.BuildLines(interactions, c.Settings)
	c.scene.ClearLines()
	c.scene.DrawLines(lines)

	return &CalculateResult{
		Interactions: interactions,
		Lines:        lines,
		Message:      fmt.Sprintf("Found %d interactions, showing %d lines", len(interactions), len(lines)),
	}, nil
}

func ligandAtoms(owner domain.Structure, ligand domain.Ligand) []domain.Atom {
	var atoms []domain.Atom
	for _, a := range owner.Atoms {
		if ligand.Contains(owner.Index, a) {
			atoms = append(atoms, a)
		}
	}
	return atoms
}
