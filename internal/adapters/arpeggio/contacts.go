package arpeggio

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

// AtomRef identifies an atom in arpeggio output
type AtomRef struct {
	Chain  string `json:"auth_asym_id"`
	ResSeq int    `json:"auth_seq_id"`
	Atom   string `json:"auth_atom_id"`
	Comp   string `json:"label_comp_id"`
}

// Contact is one entry of the arpeggio contacts file
type Contact struct {
	Begin    AtomRef  `json:"bgn"`
	End      AtomRef  `json:"end"`
	Types    []string `json:"contact"`
	Distance float64  `json:"distance"`
	Kind     string   `json:"type"` // atom-atom, atom-plane, plane-plane
}

// ParseContacts decodes an arpeggio contacts file
func ParseContacts(data []byte) ([]Contact, error) {
	var contacts []Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("failed to parse arpeggio contacts: %w", err)
	}
	return contacts, nil
}

// contact type names that differ from ours
var contactAliases = map[string]string{
	"carbonpi":  domain.CategoryCarbonPi,
	"cationpi":  domain.CategoryCationPi,
	"donorpi":   domain.CategoryDonorPi,
	"halogenpi": domain.CategoryHalogenPi,
}

// categoryOf maps an arpeggio contact type to a category name
func categoryOf(contactType string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(contactType))
	if alias, ok := contactAliases[name]; ok {
		return alias, true
	}
	return name, domain.IsCategory(name)
}

// input is the structure handed to arpeggio plus the way back from
// arpeggio atom references to our endpoints
type input struct {
	structure domain.Structure
	selector  string
	ligand    map[string]domain.Endpoint
	partner   map[string]domain.Endpoint
}

func refKey(chain string, resSeq int, atom string) string {
	return fmt.Sprintf("%s/%d/%s", chain, resSeq, atom)
}

// prepareInput merges a ligand owned by another structure into a free chain
// of the target so arpeggio sees a single file
func prepareInput(req ports.CalculationRequest) input {
	in := input{
		structure: req.Structure,
		ligand:    make(map[string]domain.Endpoint),
		partner:   make(map[string]domain.Endpoint),
	}

	sameOwner := req.Ligand.Owner == req.Structure.Index
	for _, a := range req.Structure.Atoms {
		key := refKey(a.Chain, a.ResSeq, a.Name)
		if sameOwner && req.Ligand.Contains(req.Structure.Index, a) {
			in.ligand[key] = domain.Endpoint{Structure: req.Structure.Index, Atom: a}
			continue
		}
		in.partner[key] = domain.Endpoint{Structure: req.Structure.Index, Atom: a}
	}

	if sameOwner && !req.Ligand.Whole {
		in.selector = req.Ligand.Selector()
		return in
	}

	chain := freeChain(req.Structure.Atoms)
	merged := req.Structure
	merged.Atoms = append([]domain.Atom(nil), req.Structure.Atoms...)
	for _, a := range req.Ligand.Atoms {
		copied := a
		copied.Chain = chain
		copied.Het = true
		copied.Serial = len(merged.Atoms) + 1
		merged.Atoms = append(merged.Atoms, copied)
		in.ligand[refKey(chain, a.ResSeq, a.Name)] = domain.Endpoint{Structure: req.Ligand.Owner, Atom: a}
	}
	in.structure = merged
	in.selector = fmt.Sprintf("/%s/", chain)
	return in
}

// freeChain returns the first chain identifier not used by atoms
func freeChain(atoms []domain.Atom) string {
	used := make(map[string]bool)
	for _, a := range atoms {
		used[a.Chain] = true
	}
	for _, c := range "ZYXWVUTSRQPONMLKJIHGFEDCBA0123456789" {
		if !used[string(c)] {
			return string(c)
		}
	}
	return "Z"
}

// resolve looks an arpeggio reference up in refs. Plane references list
// their ring atoms separated by commas; the first known one is used.
func resolve(refs map[string]domain.Endpoint, r AtomRef) (domain.Endpoint, bool) {
	for _, name := range strings.Split(r.Atom, ",") {
		if ep, ok := refs[refKey(r.Chain, r.ResSeq, strings.TrimSpace(name))]; ok {
			return ep, true
		}
	}
	return domain.Endpoint{}, false
}

// interactions keeps ligand-partner contacts with known categories
func (in input) interactions(contacts []Contact) []domain.Interaction {
	var out []domain.Interaction
	for _, c := range contacts {
		lig, ligOK := resolve(in.ligand, c.Begin)
		partner, partnerOK := resolve(in.partner, c.End)
		if !ligOK || !partnerOK {
			lig, ligOK = resolve(in.ligand, c.End)
			partner, partnerOK = resolve(in.partner, c.Begin)
		}
		if !ligOK || !partnerOK {
			continue
		}

		var cats []string
		for _, t := range c.Types {
			if cat, ok := categoryOf(t); ok && !slices.Contains(cats, cat) {
				cats = append(cats, cat)
			}
		}
		slices.SortFunc(cats, func(a, b string) int { return rank(a) - rank(b) })
		for _, cat := range cats {
			out = append(out, domain.Interaction{Category: cat, Ligand: lig, Partner: partner, Distance: c.Distance})
		}
	}
	return out
}

func rank(category string) int {
	return slices.IndexFunc(domain.DefaultCategories, func(c domain.Category) bool { return c.Name == category })
}
