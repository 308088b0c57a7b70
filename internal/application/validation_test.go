package application

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateStructureSelection(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		wantErr  error
		errMsg   string
	}{
		{
			name:     "exactly one",
			selected: 1,
		},
		{
			name:     "none selected",
			selected: 0,
			wantErr:  ErrNoStructureSelected,
			errMsg:   "Please Select a Complex",
		},
		{
			name:     "several selected",
			selected: 2,
			wantErr:  ErrMultipleStructures,
			errMsg:   "Too many selected complexes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStructureSelection(tt.selected)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !IsUserError(err) {
				t.Error("expected a user error")
			}
			if !strings.Contains(UserMessage(err), tt.errMsg) {
				t.Errorf("expected message containing %q, got %q", tt.errMsg, UserMessage(err))
			}
		})
	}
}

func TestValidateLigandSelection(t *testing.T) {
	if err := ValidateLigandSelection(true); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateLigandSelection(false)
	if !errors.Is(err, ErrNoLigandSelected) {
		t.Fatalf("expected ErrNoLigandSelected, got %v", err)
	}
	if UserMessage(err) != "Please Select a Ligand" {
		t.Errorf("unexpected message %q", UserMessage(err))
	}
}

func TestValidateDeep(t *testing.T) {
	shallow := Structure{Index: 1, Name: "1tyl"}
	if err := ValidateDeep("structure", shallow); !errors.Is(err, ErrShallowStructure) {
		t.Errorf("expected ErrShallowStructure, got %v", err)
	}

	deep := Structure{Index: 1, Name: "1tyl", Deep: true, Atoms: []Atom{{Serial: 1}}}
	if err := ValidateDeep("structure", deep); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	err := &FetchError{Index: 3, Err: ErrNotFound}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected FetchError to unwrap to its cause")
	}
	if IsUserError(err) {
		t.Error("fetch failures are not user errors")
	}
}
