package domain

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownCategory = errors.New("unknown interaction category")
	ErrUnknownColor    = errors.New("unknown color")
)

// RGB is a display color
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PaletteColor is a named color selectable in the interaction settings
type PaletteColor struct {
	Name string
	RGB  RGB
}

// Palette lists the selectable line colors, in dropdown order
var Palette = []PaletteColor{
	{"red", RGB{255, 0, 0}},
	{"orange", RGB{255, 128, 0}},
	{"yellow", RGB{255, 255, 0}},
	{"lime", RGB{128, 255, 0}},
	{"green", RGB{0, 200, 0}},
	{"teal", RGB{0, 128, 128}},
	{"cyan", RGB{0, 255, 255}},
	{"blue", RGB{0, 0, 255}},
	{"purple", RGB{128, 0, 255}},
	{"magenta", RGB{255, 0, 255}},
	{"pink", RGB{255, 153, 204}},
	{"brown", RGB{153, 76, 0}},
	{"white", RGB{255, 255, 255}},
	{"grey", RGB{128, 128, 128}},
	{"black", RGB{0, 0, 0}},
}

// LookupColor finds a palette color by name
func LookupColor(name string) (PaletteColor, bool) {
	for _, c := range Palette {
		if c.Name == name {
			return c, true
		}
	}
	return PaletteColor{}, false
}

// NextColor returns the palette entry following name, wrapping around
func NextColor(name string) PaletteColor {
	for i, c := range Palette {
		if c.Name == name {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

// Category names
const (
	CategoryCovalent     = "covalent"
	CategoryHBond        = "hbond"
	CategoryWeakHBond    = "weak_hbond"
	CategoryPolar        = "polar"
	CategoryWeakPolar    = "weak_polar"
	CategoryIonic        = "ionic"
	CategoryXBond        = "xbond"
	CategoryMetalComplex = "metal_complex"
	CategoryHydrophobic  = "hydrophobic"
	CategoryAromatic     = "aromatic"
	CategoryCarbonyl     = "carbonyl"
	CategoryCationPi     = "cation_pi"
	CategoryDonorPi      = "donor_pi"
	CategoryHalogenPi    = "halogen_pi"
	CategoryCarbonPi     = "carbon_pi"
	CategoryVdW          = "vdw"
	CategoryVdWClash     = "vdw_clash"
	CategoryClash        = "clash"
	CategoryProximal     = "proximal"
)

// Category is one class of non-covalent interaction with its display settings
type Category struct {
	Name           string // e.g., "hbond"
	Label          string // e.g., "Hydrogen Bonds"
	DefaultVisible bool
	DefaultColor   string // palette color name
	Visible        bool
	Color          string
}

// RGB returns the current display color
func (c Category) RGB() RGB {
	if pc, ok := LookupColor(c.Color); ok {
		return pc.RGB
	}
	return RGB{}
}

// DefaultCategories is the fixed set of supported interaction categories, in display order
var DefaultCategories = []Category{
	{Name: CategoryCovalent, Label: "Covalent", DefaultVisible: false, DefaultColor: "yellow"},
	{Name: CategoryHBond, Label: "Hydrogen Bonds", DefaultVisible: true, DefaultColor: "blue"},
	{Name: CategoryWeakHBond, Label: "Weak Hydrogen Bonds", DefaultVisible: true, DefaultColor: "cyan"},
	{Name: CategoryPolar, Label: "Polar", DefaultVisible: false, DefaultColor: "red"},
	{Name: CategoryWeakPolar, Label: "Weak Polar", DefaultVisible: false, DefaultColor: "pink"},
	{Name: CategoryIonic, Label: "Ionic", DefaultVisible: true, DefaultColor: "red"},
	{Name: CategoryXBond, Label: "Halogen Bonds", DefaultVisible: true, DefaultColor: "green"},
	{Name: CategoryMetalComplex, Label: "Metal Complex", DefaultVisible: true, DefaultColor: "grey"},
	{Name: CategoryHydrophobic, Label: "Hydrophobic", DefaultVisible: true, DefaultColor: "purple"},
	{Name: CategoryAromatic, Label: "Aromatic", DefaultVisible: true, DefaultColor: "magenta"},
	{Name: CategoryCarbonyl, Label: "Carbonyl", DefaultVisible: false, DefaultColor: "orange"},
	{Name: CategoryCationPi, Label: "Cation-Pi", DefaultVisible: true, DefaultColor: "orange"},
	{Name: CategoryDonorPi, Label: "Donor-Pi", DefaultVisible: false, DefaultColor: "pink"},
	{Name: CategoryHalogenPi, Label: "Halogen-Pi", DefaultVisible: false, DefaultColor: "lime"},
	{Name: CategoryCarbonPi, Label: "Carbon-Pi", DefaultVisible: false, DefaultColor: "teal"},
	{Name: CategoryVdW, Label: "Van der Waals", DefaultVisible: false, DefaultColor: "white"},
	{Name: CategoryVdWClash, Label: "VdW Clash", DefaultVisible: false, DefaultColor: "brown"},
	{Name: CategoryClash, Label: "Clash", DefaultVisible: false, DefaultColor: "black"},
	{Name: CategoryProximal, Label: "Proximal", DefaultVisible: false, DefaultColor: "grey"},
}

// IsCategory reports whether name is one of the supported categories
func IsCategory(name string) bool {
	return slices.ContainsFunc(DefaultCategories, func(c Category) bool { return c.Name == name })
}

// SavedSetting is a persisted override for one category
type SavedSetting struct {
	Name    string
	Visible bool
	Color   string
}

// SettingsTable holds the current settings for every category.
// The set of categories is fixed at construction.
type SettingsTable struct {
	categories []Category
}

// NewSettingsTable creates a table initialized from DefaultCategories
func NewSettingsTable() *SettingsTable {
	cats := make([]Category, len(DefaultCategories))
	for i, c := range DefaultCategories {
		c.Visible = c.DefaultVisible
		c.Color = c.DefaultColor
		cats[i] = c
	}
	return &SettingsTable{categories: cats}
}

// Apply overlays saved settings; unknown names and colors are ignored
func (t *SettingsTable) Apply(saved []SavedSetting) {
	for _, s := range saved {
		i := t.indexOf(s.Name)
		if i < 0 {
			continue
		}
		t.categories[i].Visible = s.Visible
		if _, ok := LookupColor(s.Color); ok {
			t.categories[i].Color = s.Color
		}
	}
}

// Get returns the settings for one category
func (t *SettingsTable) Get(name string) (Category, bool) {
	i := t.indexOf(name)
	if i < 0 {
		return Category{}, false
	}
	return t.categories[i], true
}

// ToggleVisible flips the visibility of a category and returns the new value
func (t *SettingsTable) ToggleVisible(name string) (bool, error) {
	i := t.indexOf(name)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	t.categories[i].Visible = !t.categories[i].Visible
	return t.categories[i].Visible, nil
}

// SetColor changes the color of a category
func (t *SettingsTable) SetColor(name, color string) error {
	i := t.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	if _, ok := LookupColor(color); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColor, color)
	}
	t.categories[i].Color = color
	return nil
}

// SetAllVisible sets every category to the same visibility
func (t *SettingsTable) SetAllVisible(visible bool) {
	for i := range t.categories {
		t.categories[i].Visible = visible
	}
}

// Visible reports whether lines of the category are drawn
func (t *SettingsTable) Visible(name string) bool {
	c, ok := t.Get(name)
	return ok && c.Visible
}

// Snapshot returns a copy of all categories in display order
func (t *SettingsTable) Snapshot() []Category {
	return append([]Category(nil), t.categories...)
}

// Saved returns the current settings in their persisted form
func (t *SettingsTable) Saved() []SavedSetting {
	out := make([]SavedSetting, len(t.categories))
	for i, c := range t.categories {
		out[i] = SavedSetting{Name: c.Name, Visible: c.Visible, Color: c.Color}
	}
	return out
}

func (t *SettingsTable) indexOf(name string) int {
	for i, c := range t.categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}
