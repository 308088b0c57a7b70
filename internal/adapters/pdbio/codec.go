// Package pdbio reads and writes structures in PDB format
package pdbio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

var (
	ErrEmptyStructure  = errors.New("structure has no atoms")
	ErrTruncatedRecord = errors.New("truncated atom record")
	ErrMalformed       = errors.New("malformed PDB")
)

// minRecordLen covers an atom record up to the z coordinate
const minRecordLen = 54

// Codec implements ports.StructureCodec on top of gochem
type Codec struct{}

var _ ports.StructureCodec = (*Codec)(nil)

// NewCodec creates a new PDB codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode writes the atoms of s as ATOM/HETATM records
func (c *Codec) Encode(w io.Writer, s domain.Structure) error {
	if len(s.Atoms) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyStructure, s.Name)
	}

	atoms := make([]*chem.Atom, len(s.Atoms))
	coords := v3.Zeros(len(s.Atoms))
	for i, a := range s.Atoms {
		serial := a.Serial
		if serial == 0 {
			serial = i + 1
		}
		atoms[i] = &chem.Atom{
			Name:    a.Name,
			ID:      serial,
			MolName: a.ResName,
			MolID:   a.ResSeq,
			Chain:   a.Chain,
			Symbol:  a.Element,
			Charge:  float64(a.Charge),
			Het:     a.Het,
		}
		coords.Set(i, 0, a.X)
		coords.Set(i, 1, a.Y)
		coords.Set(i, 2, a.Z)
	}

	var buf bytes.Buffer
	top := chem.NewTopology(0, 1, atoms)
	if err := chem.PDBWrite(&buf, coords, top, nil); err != nil {
		return fmt.Errorf("failed to write PDB for %s: %w", s.Name, err)
	}
	if _, err := w.Write(withCharges(buf.Bytes(), s.Atoms)); err != nil {
		return fmt.Errorf("failed to write PDB for %s: %w", s.Name, err)
	}
	return nil
}

// withCharges fills columns 79-80 of the atom records, which gochem
// leaves blank
func withCharges(data []byte, atoms []domain.Atom) []byte {
	lines := bytes.SplitAfter(data, []byte("\n"))
	i := 0
	for _, line := range lines {
		if !isAtomRecord(line) {
			continue
		}
		if i < len(atoms) && len(line) >= 80 {
			if q := formatCharge(atoms[i].Charge); q != "" {
				copy(line[78:80], q)
			}
		}
		i++
	}
	return bytes.Join(lines, nil)
}

// formatCharge renders a formal charge as "2+" or "1-"; charges that do
// not fit the column are dropped
func formatCharge(q int) string {
	switch {
	case q > 0 && q < 10:
		return strconv.Itoa(q) + "+"
	case q < 0 && q > -10:
		return strconv.Itoa(-q) + "-"
	default:
		return ""
	}
}

// parseCharge reads a charge column such as "2+", "1-" or "+1"
func parseCharge(col string) int {
	col = strings.TrimSpace(col)
	if len(col) != 2 {
		return 0
	}
	digit, sign := col[0], col[1]
	if digit == '+' || digit == '-' {
		digit, sign = sign, digit
	}
	if digit < '0' || digit > '9' {
		return 0
	}
	q := int(digit - '0')
	switch sign {
	case '+':
		return q
	case '-':
		return -q
	default:
		return 0
	}
}

// recordColumns holds the columns of one atom record that gochem does not
// decode reliably
type recordColumns struct {
	element string
	charge  int
}

func isAtomRecord(line []byte) bool {
	return bytes.HasPrefix(line, []byte("ATOM")) || bytes.HasPrefix(line, []byte("HETATM"))
}

// scanRecords checks every atom record up to the coordinates and returns the
// element and charge columns of the first model
func scanRecords(data []byte) ([]recordColumns, error) {
	var cols []recordColumns
	models := 0
	for n, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if bytes.HasPrefix(line, []byte("MODEL")) {
			models++
			continue
		}
		if !isAtomRecord(line) {
			continue
		}
		if len(line) < minRecordLen {
			return nil, fmt.Errorf("%w: line %d", ErrTruncatedRecord, n+1)
		}
		if models > 1 {
			continue
		}
		var c recordColumns
		if len(line) >= 78 {
			c.element = domain.NormalizeElement(string(line[76:78]))
		}
		if len(line) >= 80 {
			c.charge = parseCharge(string(line[78:80]))
		}
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return nil, ErrEmptyStructure
	}
	return cols, nil
}

// Decode reads the first model of a PDB stream
func (c *Codec) Decode(r io.Reader) ([]domain.Atom, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDB: %w", err)
	}
	cols, err := scanRecords(data)
	if err != nil {
		return nil, err
	}
	// gochem drops a last line without a newline
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}

	mol, err := readMolecule(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDB: %w", err)
	}
	if mol.Len() != len(cols) || len(mol.Coords) == 0 {
		return nil, fmt.Errorf("failed to parse PDB: read %d of %d atoms", mol.Len(), len(cols))
	}

	coords := mol.Coords[0]
	atoms := make([]domain.Atom, mol.Len())
	for i := range atoms {
		at := mol.Atom(i)
		element := cols[i].element
		if element == "" {
			element = elementOf(at)
		}
		atoms[i] = domain.Atom{
			Serial:  at.ID,
			Name:    strings.TrimSpace(at.Name),
			ResName: strings.TrimSpace(at.MolName),
			Chain:   strings.TrimSpace(at.Chain),
			ResSeq:  at.MolID,
			Element: element,
			Charge:  cols[i].charge,
			Het:     at.Het,
			X:       coords.At(i, 0),
			Y:       coords.At(i, 1),
			Z:       coords.At(i, 2),
		}
	}
	return atoms, nil
}

// readMolecule runs the gochem reader, turning its panics on malformed
// input into errors
func readMolecule(data []byte) (mol *chem.Molecule, err error) {
	defer func() {
		if r := recover(); r != nil {
			mol, err = nil, fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()
	return chem.PDBRead(bytes.NewReader(data), true)
}

// elementOf guesses the element from the atom name when the element columns are blank
func elementOf(at *chem.Atom) string {
	if s := strings.TrimSpace(at.Symbol); s != "" {
		return domain.NormalizeElement(s)
	}
	name := strings.TrimLeft(strings.TrimSpace(at.Name), "0123456789")
	if name == "" {
		return ""
	}
	return domain.NormalizeElement(name[:1])
}

// ReadFile loads a deep structure from a PDB file. The structure is named
// after the file without its extension.
func (c *Codec) ReadFile(path string, index int) (domain.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Structure{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	atoms, err := c.Decode(f)
	if err != nil {
		return domain.Structure{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return domain.Structure{
		Index:  index,
		Name:   StructureName(path),
		Source: path,
		Deep:   true,
		Atoms:  atoms,
	}, nil
}

// StructureName derives a display name from a file path, e.g. "1tyl" for "/data/1tyl.pdb"
func StructureName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
