package application

import "chemint/internal/domain"

// Re-export domain types for use by adapters
type (
	Structure   = domain.Structure
	Ligand      = domain.Ligand
	Atom        = domain.Atom
	Category    = domain.Category
	Interaction = domain.Interaction
	Line        = domain.Line
)

// Button texts shared by the menu and the presenters
const (
	SubmitText      = "Calculate"
	CalculatingText = "Calculating..."
	ExtractingText  = "Extracting Ligands..."
	HideAllText     = "Hide All"
	ShowAllText     = "Show All"
)
