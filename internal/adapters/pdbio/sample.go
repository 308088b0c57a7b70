package pdbio

import (
	_ "embed"
	"strings"

	"chemint/internal/domain"
)

// SampleName is the name of the bundled sample complex
const SampleName = "1str"

// samplePDB is a small complex: a few residues of chain A around the STR
// ligand, one water and one zinc ion
//
//go:embed sample.pdb
var samplePDB string

// Sample decodes the bundled sample complex
func Sample(index int) (domain.Structure, error) {
	atoms, err := NewCodec().Decode(strings.NewReader(samplePDB))
	if err != nil {
		return domain.Structure{}, err
	}
	return domain.Structure{Index: index, Name: SampleName, Deep: true, Atoms: atoms}, nil
}

// SamplePDB returns the raw bundled sample
func SamplePDB() string {
	return samplePDB
}
