// Package detect finds interactions between a ligand and its surroundings
// from interatomic distances
package detect

import (
	"context"
	"math"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

// Distance thresholds in Angstrom
const (
	DefaultCutoff   = 5.0
	covalentMax     = 2.0
	clashFactor     = 0.75
	vdwTolerance    = 0.1
	hbondMax        = 3.5
	polarMax        = 4.0
	weakHBondMax    = 3.7
	ionicMax        = 4.0
	metalComplexMax = 2.8
	hydrophobicMax  = 4.0
	carbonylMax     = 3.6
)

// Geometric implements ports.InteractionCalculator with distance rules.
// Ring based categories are not detected.
type Geometric struct {
	cutoff float64
}

var _ ports.InteractionCalculator = (*Geometric)(nil)

// NewGeometric creates a detector considering atom pairs up to cutoff apart
func NewGeometric(cutoff float64) *Geometric {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &Geometric{cutoff: cutoff}
}

// Calculate returns interactions ordered by ligand atom, then partner atom,
// then category display order
func (g *Geometric) Calculate(ctx context.Context, req ports.CalculationRequest) ([]domain.Interaction, error) {
	ligand := heavyAtoms(req.Ligand.Atoms)
	partners := g.partners(req, ligand)

	var out []domain.Interaction
	for _, la := range ligand {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, pa := range partners {
			d := la.Distance(pa)
			if d > g.cutoff {
				continue
			}
			for _, cat := range Classify(la, pa, d) {
				out = append(out, domain.Interaction{
					Category: cat,
					Ligand:   domain.Endpoint{Structure: req.Ligand.Owner, Atom: la},
					Partner:  domain.Endpoint{Structure: req.Structure.Index, Atom: pa},
					Distance: d,
				})
			}
		}
	}
	return out, nil
}

// partners are the heavy, non-water atoms of the structure outside the ligand
// and inside the ligand bounding box grown by the cutoff
func (g *Geometric) partners(req ports.CalculationRequest, ligand []domain.Atom) []domain.Atom {
	if len(ligand) == 0 {
		return nil
	}
	lo, hi := bounds(ligand)
	var out []domain.Atom
	for _, a := range req.Structure.Atoms {
		if a.IsHydrogen() || a.IsWater() || req.Ligand.Contains(req.Structure.Index, a) {
			continue
		}
		if a.X < lo[0]-g.cutoff || a.X > hi[0]+g.cutoff ||
			a.Y < lo[1]-g.cutoff || a.Y > hi[1]+g.cutoff ||
			a.Z < lo[2]-g.cutoff || a.Z > hi[2]+g.cutoff {
			continue
		}
		out = append(out, a)
	}
	return out
}

func heavyAtoms(atoms []domain.Atom) []domain.Atom {
	out := make([]domain.Atom, 0, len(atoms))
	for _, a := range atoms {
		if !a.IsHydrogen() && !a.IsWater() {
			out = append(out, a)
		}
	}
	return out
}

func bounds(atoms []domain.Atom) (lo, hi [3]float64) {
	lo = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, a := range atoms {
		for i, v := range [3]float64{a.X, a.Y, a.Z} {
			lo[i] = math.Min(lo[i], v)
			hi[i] = math.Max(hi[i], v)
		}
	}
	return lo, hi
}
