package domain

import (
	"fmt"
	"math"
	"strings"
)

// Atom is a single atom of a structure, as read from an ATOM or HETATM record
type Atom struct {
	Serial  int    // PDB serial number
	Name    string // e.g., "CA", "OD1"
	ResName string // e.g., "ASP", "STR"
	Chain   string // e.g., "A"
	ResSeq  int
	Element string // e.g., "C", "Cl"
	Charge  int    // formal charge, 0 when unknown
	Het     bool   // true for HETATM records
	X, Y, Z float64
}

// ResidueKey identifies the residue an atom belongs to
func (a Atom) ResidueKey() string {
	return residueKey(a.Chain, a.ResSeq, a.ResName)
}

// IsHydrogen reports whether the atom is a hydrogen or deuterium
func (a Atom) IsHydrogen() bool {
	e := strings.ToUpper(a.Element)
	return e == "H" || e == "D"
}

// IsWater reports whether the atom belongs to a water molecule
func (a Atom) IsWater() bool {
	return IsWaterResidue(a.ResName)
}

// Distance returns the euclidean distance between two atoms
func (a Atom) Distance(b Atom) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Bond connects two atoms by serial number
type Bond struct {
	A int
	B int
}

// Structure is a molecular structure known to the host.
// A shallow structure carries only Index and Name; a deep one also carries atoms and bonds.
type Structure struct {
	Index  int    // stable identifier assigned by the host
	Name   string // display name, e.g., "1tyl"
	Source string // where the host loaded it from
	Deep   bool
	Atoms  []Atom
	Bonds  []Bond
}

// Shallow returns a copy of the structure stripped down to its identity
func (s Structure) Shallow() Structure {
	return Structure{Index: s.Index, Name: s.Name, Source: s.Source}
}

// IsShallow reports whether atomic data still has to be fetched
func (s Structure) IsShallow() bool {
	return !s.Deep
}

// ButtonID returns the widget identifier used for this structure in lists
func (s Structure) ButtonID() string {
	return fmt.Sprintf("structure:%d", s.Index)
}

// Ligand is a residue sub-structure extracted from a deep structure,
// or a whole top-level structure used as the ligand.
type Ligand struct {
	Owner   int    // Index of the structure the ligand belongs to
	ResName string // e.g., "STR"
	Chain   string
	ResSeq  int
	Whole   bool // the ligand is the whole Owner structure
	Atoms   []Atom
}

// Key identifies the ligand within its owner structure
func (l Ligand) Key() string {
	if l.Whole {
		return fmt.Sprintf("%d:*", l.Owner)
	}
	return fmt.Sprintf("%d:%s", l.Owner, residueKey(l.Chain, l.ResSeq, l.ResName))
}

// DisplayName is the label base used for ligand buttons
func (l Ligand) DisplayName() string {
	return l.ResName
}

// Selector returns the chain/residue selector understood by external detectors, e.g. "/A/301/"
func (l Ligand) Selector() string {
	return fmt.Sprintf("/%s/%d/", l.Chain, l.ResSeq)
}

// Contains reports whether the atom is part of this ligand
func (l Ligand) Contains(structureIndex int, a Atom) bool {
	if structureIndex != l.Owner {
		return false
	}
	if l.Whole {
		return true
	}
	return a.Chain == l.Chain && a.ResSeq == l.ResSeq && a.ResName == l.ResName
}

// WholeLigand builds a ligand covering every atom of the structure
func WholeLigand(s Structure) Ligand {
	return Ligand{
		Owner:   s.Index,
		ResName: s.Name,
		Whole:   true,
		Atoms:   s.Atoms,
	}
}

var waterNames = map[string]bool{"HOH": true, "WAT": true, "DOD": true, "H2O": true}

// IsWaterResidue reports whether the residue name denotes water
func IsWaterResidue(resName string) bool {
	return waterNames[strings.ToUpper(strings.TrimSpace(resName))]
}

func residueKey(chain string, resSeq int, resName string) string {
	return fmt.Sprintf("%s:%s:%d", chain, resName, resSeq)
}
