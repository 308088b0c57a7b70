package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Endpoint is one end of an interaction: an atom inside a given structure
type Endpoint struct {
	Structure int // Structure.Index
	Atom      Atom
}

// Label formats the endpoint as "A/ASP25/OD1"
func (e Endpoint) Label() string {
	return fmt.Sprintf("%s/%s%d/%s", e.Atom.Chain, e.Atom.ResName, e.Atom.ResSeq, e.Atom.Name)
}

// Interaction is a detected contact of a given category between a ligand atom and a partner atom
type Interaction struct {
	Category string
	Ligand   Endpoint
	Partner  Endpoint
	Distance float64
}

// Line is the scene representation of one visible interaction
type Line struct {
	ID       uuid.UUID
	Category string
	Color    RGB
	From     Endpoint
	To       Endpoint
	Distance float64
}

// BuildLines turns interactions into lines, keeping only visible categories
// and coloring each line with its category color
func BuildLines(interactions []Interaction, settings []Category) []Line {
	byName := make(map[string]Category, len(settings))
	for _, c := range settings {
		byName[c.Name] = c
	}

	lines := make([]Line, 0, len(interactions))
	for _, in := range interactions {
		cat, ok := byName[in.Category]
		if !ok || !cat.Visible {
			continue
		}
		lines = append(lines, Line{
			ID:       uuid.New(),
			Category: in.Category,
			Color:    cat.RGB(),
			From:     in.Ligand,
			To:       in.Partner,
			Distance: in.Distance,
		})
	}
	return lines
}

// CountByCategory tallies lines per category
func CountByCategory(lines []Line) map[string]int {
	counts := make(map[string]int)
	for _, l := range lines {
		counts[l.Category]++
	}
	return counts
}
