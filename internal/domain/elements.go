package domain

import "strings"

// van der Waals radii in Angstrom (Bondi)
var vdwRadii = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"P":  1.80,
	"S":  1.80,
	"CL": 1.75,
	"BR": 1.85,
	"I":  1.98,
	"SE": 1.90,
	"NA": 2.27,
	"MG": 1.73,
	"K":  2.75,
	"CA": 2.31,
	"MN": 2.00,
	"FE": 2.00,
	"CO": 2.00,
	"NI": 1.63,
	"CU": 1.40,
	"ZN": 1.39,
}

const defaultVdWRadius = 1.70

var metals = map[string]bool{
	"NA": true, "MG": true, "K": true, "CA": true, "MN": true, "FE": true,
	"CO": true, "NI": true, "CU": true, "ZN": true, "CD": true, "HG": true,
}

var halogens = map[string]bool{"CL": true, "BR": true, "I": true}

// NormalizeElement upper-cases and trims an element symbol
func NormalizeElement(element string) string {
	return strings.ToUpper(strings.TrimSpace(element))
}

// VdWRadius returns the van der Waals radius of an element
func VdWRadius(element string) float64 {
	if r, ok := vdwRadii[NormalizeElement(element)]; ok {
		return r
	}
	return defaultVdWRadius
}

// IsMetal reports whether the element is a metal ion commonly found in structures
func IsMetal(element string) bool {
	return metals[NormalizeElement(element)]
}

// IsHalogen reports whether the element can act as a halogen bond donor
func IsHalogen(element string) bool {
	return halogens[NormalizeElement(element)]
}

// IsPolarElement reports whether the element is N or O
func IsPolarElement(element string) bool {
	e := NormalizeElement(element)
	return e == "N" || e == "O"
}
