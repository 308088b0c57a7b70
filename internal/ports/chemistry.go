package ports

import (
	"context"
	"io"

	"chemint/internal/domain"
)

// StructureCodec converts structures to and from the host file format (PDB)
type StructureCodec interface {
	Encode(w io.Writer, s domain.Structure) error
	Decode(r io.Reader) ([]domain.Atom, error)
}

// LigandExtractor finds ligand residues in a serialized structure.
// It may return an empty slice.
type LigandExtractor interface {
	ExtractLigands(r io.Reader, owner int) ([]domain.Ligand, error)
}

// CalculationRequest carries everything an interaction detector needs
type CalculationRequest struct {
	Structure domain.Structure // deep
	Ligand    domain.Ligand
	// LigandStructure is the deep owner of the ligand when it differs from Structure
	LigandStructure *domain.Structure
}

// InteractionCalculator detects interactions between a ligand and a structure
type InteractionCalculator interface {
	Calculate(ctx context.Context, req CalculationRequest) ([]domain.Interaction, error)
}

// SettingsStore persists per-category display settings between sessions
type SettingsStore interface {
	LoadSettings() ([]domain.SavedSetting, error)
	SaveSettings(settings []domain.SavedSetting) error
}
