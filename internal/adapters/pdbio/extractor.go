package pdbio

import (
	"io"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

// LigandExtractor finds ligand residues: HETATM groups that are not water
type LigandExtractor struct {
	codec *Codec
}

var _ ports.LigandExtractor = (*LigandExtractor)(nil)

// NewLigandExtractor creates a new LigandExtractor
func NewLigandExtractor(codec *Codec) *LigandExtractor {
	return &LigandExtractor{codec: codec}
}

// ExtractLigands returns the ligands of the PDB stream in file order
func (e *LigandExtractor) ExtractLigands(r io.Reader, owner int) ([]domain.Ligand, error) {
	atoms, err := e.codec.Decode(r)
	if err != nil {
		return nil, err
	}
	return GroupLigands(atoms, owner), nil
}

// GroupLigands groups hetero atoms by residue, skipping waters
func GroupLigands(atoms []domain.Atom, owner int) []domain.Ligand {
	var ligands []domain.Ligand
	byKey := make(map[string]int)
	for _, a := range atoms {
		if !a.Het || a.IsWater() {
			continue
		}
		key := a.ResidueKey()
		i, ok := byKey[key]
		if !ok {
			i = len(ligands)
			byKey[key] = i
			ligands = append(ligands, domain.Ligand{
				Owner:   owner,
				ResName: a.ResName,
				Chain:   a.Chain,
				ResSeq:  a.ResSeq,
			})
		}
		ligands[i].Atoms = append(ligands[i].Atoms, a)
	}
	return ligands
}
