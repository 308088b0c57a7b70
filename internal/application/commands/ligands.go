package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"chemint/internal/application"
	"chemint/internal/domain"
	"chemint/internal/ports"
)

// ExtractLigandsResult contains the ligands found in a structure
type ExtractLigandsResult struct {
	Ligands []domain.Ligand
	Message string
}

// ExtractLigandsCommand serializes a deep structure to a scoped temp file
// and runs the ligand extractor over it
type ExtractLigandsCommand struct {
	codec     ports.StructureCodec
	extractor ports.LigandExtractor
	Structure domain.Structure
}

// NewExtractLigandsCommand creates a new ExtractLigandsCommand
func NewExtractLigandsCommand(codec ports.StructureCodec, extractor ports.LigandExtractor, s domain.Structure) *ExtractLigandsCommand {
	return &ExtractLigandsCommand{
		codec:     codec,
		extractor: extractor,
		Structure: s,
	}
}

// Validate checks that the structure has atomic data
func (c *ExtractLigandsCommand) Validate() error {
	return application.ValidateDeep("structure", c.Structure)
}

// Execute runs the extract ligands command
func (c *ExtractLigandsCommand) Execute(ctx context.Context) (*ExtractLigandsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "chemint-*.pdb")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := c.codec.Encode(f, c.Structure); err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", c.Structure.Name, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind temp file: %w", err)
	}

	ligands, err := c.extractor.ExtractLigands(f, c.Structure.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ligands from %s: %w", c.Structure.Name, err)
	}

	return &ExtractLigandsResult{
		Ligands: ligands,
		Message: fmt.Sprintf("Found %d ligands in %s", len(ligands), c.Structure.Name),
	}, nil
}
