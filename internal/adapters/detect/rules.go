package detect

import (
	"chemint/internal/domain"
)

// Classify returns the categories of an atom pair at distance d, in
// category display order. Pairs matching no rule are proximal.
func Classify(a, b domain.Atom, d float64) []string {
	ea, eb := domain.NormalizeElement(a.Element), domain.NormalizeElement(b.Element)
	metal := domain.IsMetal(ea) || domain.IsMetal(eb)

	if d < covalentMax && !metal {
		return []string{domain.CategoryCovalent}
	}

	var cats []string
	add := func(ok bool, cat string) {
		if ok {
			cats = append(cats, cat)
		}
	}

	polarPair := domain.IsPolarElement(ea) && domain.IsPolarElement(eb)
	add(polarPair && d <= hbondMax, domain.CategoryHBond)
	add(isPair(ea, eb, "C", "O") && d <= weakHBondMax, domain.CategoryWeakHBond)
	add(polarPair && d > hbondMax && d <= polarMax, domain.CategoryPolar)

	qa, qb := formalCharge(a), formalCharge(b)
	add(qa*qb < 0 && d <= ionicMax, domain.CategoryIonic)

	add(halogenBond(ea, eb, d), domain.CategoryXBond)
	add(metalComplex(ea, eb, d), domain.CategoryMetalComplex)
	add(hydrophobic(a, b, ea, eb) && d <= hydrophobicMax, domain.CategoryHydrophobic)
	add(carbonyl(a, b, ea, eb) && d <= carbonylMax, domain.CategoryCarbonyl)

	sum := domain.VdWRadius(ea) + domain.VdWRadius(eb)
	switch {
	case d < clashFactor*sum:
		cats = append(cats, domain.CategoryClash)
	case d < sum:
		cats = append(cats, domain.CategoryVdWClash)
	case d < sum+vdwTolerance:
		cats = append(cats, domain.CategoryVdW)
	}

	if len(cats) == 0 {
		return []string{domain.CategoryProximal}
	}
	return orderCategories(cats)
}

func isPair(ea, eb, x, y string) bool {
	return (ea == x && eb == y) || (ea == y && eb == x)
}

func halogenBond(ea, eb string, d float64) bool {
	acceptor := func(e string) bool { return e == "N" || e == "O" || e == "S" }
	switch {
	case domain.IsHalogen(ea) && acceptor(eb):
	case domain.IsHalogen(eb) && acceptor(ea):
	default:
		return false
	}
	return d <= domain.VdWRadius(ea)+domain.VdWRadius(eb)
}

func metalComplex(ea, eb string, d float64) bool {
	coordinating := func(e string) bool { return e == "N" || e == "O" || e == "S" }
	if !(domain.IsMetal(ea) && coordinating(eb)) && !(domain.IsMetal(eb) && coordinating(ea)) {
		return false
	}
	return d <= metalComplexMax
}

func hydrophobic(a, b domain.Atom, ea, eb string) bool {
	apolar := func(e string) bool { return e == "C" || e == "S" }
	return apolar(ea) && apolar(eb) && !isBackboneCarbonyl(a) && !isBackboneCarbonyl(b)
}

func carbonyl(a, b domain.Atom, ea, eb string) bool {
	return (ea == "O" && isBackboneCarbonyl(b)) || (eb == "O" && isBackboneCarbonyl(a))
}

func isBackboneCarbonyl(a domain.Atom) bool {
	return !a.Het && a.Name == "C"
}

// charged side chain atoms of standard residues
var residueCharges = map[string]map[string]int{
	"ASP": {"OD1": -1, "OD2": -1},
	"GLU": {"OE1": -1, "OE2": -1},
	"LYS": {"NZ": 1},
	"ARG": {"NE": 1, "NH1": 1, "NH2": 1},
	"HIS": {"ND1": 1, "NE2": 1},
}

// formalCharge prefers the charge read from the file, then residue
// conventions. Metal ions count as cations.
func formalCharge(a domain.Atom) int {
	if a.Charge != 0 {
		return a.Charge
	}
	if q, ok := residueCharges[a.ResName][a.Name]; ok && !a.Het {
		return q
	}
	if domain.IsMetal(a.Element) {
		return 1
	}
	return 0
}

var categoryRank = func() map[string]int {
	m := make(map[string]int, len(domain.DefaultCategories))
	for i, c := range domain.DefaultCategories {
		m[c.Name] = i
	}
	return m
}()

func orderCategories(cats []string) []string {
	// small slices; insertion sort keeps it allocation free
	for i := 1; i < len(cats); i++ {
		for j := i; j > 0 && categoryRank[cats[j]] < categoryRank[cats[j-1]]; j-- {
			cats[j], cats[j-1] = cats[j-1], cats[j]
		}
	}
	return cats
}
