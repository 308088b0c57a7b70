package application

import "fmt"

// ValidateStructureSelection checks that exactly one structure is selected
func ValidateStructureSelection(selected int) error {
	switch {
	case selected == 0:
		return &ValidationError{
			Field:   "structure",
			Message: "Please Select a Complex",
			Err:     ErrNoStructureSelected,
		}
	case selected > 1:
		return &ValidationError{
			Field:   "structure",
			Message: fmt.Sprintf("Too many selected complexes (%d)", selected),
			Err:     ErrMultipleStructures,
		}
	}
	return nil
}

// ValidateLigandSelection checks that a ligand is selected
func ValidateLigandSelection(selected bool) error {
	if !selected {
		return &ValidationError{
			Field:   "ligand",
			Message: "Please Select a Ligand",
			Err:     ErrNoLigandSelected,
		}
	}
	return nil
}

// ValidateDeep checks that a structure carries atomic data
func ValidateDeep(field string, s Structure) error {
	if s.IsShallow() || len(s.Atoms) == 0 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s has no atomic data", s.Name),
			Err:     ErrShallowStructure,
		}
	}
	return nil
}
