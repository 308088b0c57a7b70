// Package arpeggio runs the pdbe-arpeggio command line tool and maps its
// contact list back onto structure atoms
package arpeggio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"chemint/internal/domain"
	"chemint/internal/logging"
	"chemint/internal/ports"
)

const inputName = "input"

// runner executes a command and returns its combined output
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("arpeggio error: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("arpeggio error: %w", err)
	}
	return out, nil
}

// Detector implements ports.InteractionCalculator using pdbe-arpeggio
type Detector struct {
	command string
	codec   ports.StructureCodec
	log     logging.Logger
	run     runner
}

var _ ports.InteractionCalculator = (*Detector)(nil)

// Option configures the Detector
type Option func(*Detector)

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(d *Detector) {
		d.log = l
	}
}

// NewDetector creates a detector running command (e.g., "pdbe-arpeggio")
func NewDetector(command string, codec ports.StructureCodec, opts ...Option) *Detector {
	d := &Detector{
		command: command,
		codec:   codec,
		log:     logging.NewNop(),
		run:     execRunner,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsAvailable checks if the arpeggio command is installed and accessible
func (d *Detector) IsAvailable() bool {
	_, err := exec.LookPath(d.command)
	return err == nil
}

// Calculate writes the structure and ligand to a scratch directory, runs
// arpeggio on the ligand selection and parses the resulting contacts
func (d *Detector) Calculate(ctx context.Context, req ports.CalculationRequest) ([]domain.Interaction, error) {
	dir, err := os.MkdirTemp("", "chemint-arpeggio-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	in := prepareInput(req)
	path := filepath.Join(dir, inputName+".pdb")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create arpeggio input: %w", err)
	}
	if err := d.codec.Encode(f, in.structure); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write arpeggio input: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write arpeggio input: %w", err)
	}

	d.log.Debug("running arpeggio", logging.String("command", d.command), logging.String("selection", in.selector))
	if _, err := d.run(ctx, d.command, path, "-s", in.selector, "-o", dir); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, inputName+".json"))
	if err != nil {
		return nil, fmt.Errorf("arpeggio produced no contacts file: %w", err)
	}
	contacts, err := ParseContacts(data)
	if err != nil {
		return nil, err
	}
	return in.interactions(contacts), nil
}
