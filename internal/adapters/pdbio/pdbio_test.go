package pdbio

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chemint/internal/domain"
)

func TestDecode_Sample(t *testing.T) {
	s, err := Sample(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Index != 3 || s.Name != SampleName || !s.Deep {
		t.Errorf("unexpected identity: %+v", s.Shallow())
	}
	if len(s.Atoms) != 19 {
		t.Fatalf("got %d atoms, want 19", len(s.Atoms))
	}

	od1 := s.Atoms[6]
	if od1.Name != "OD1" || od1.ResName != "ASP" || od1.ResSeq != 25 || od1.Chain != "A" {
		t.Errorf("unexpected atom: %+v", od1)
	}
	if od1.Het {
		t.Error("ATOM record decoded as hetero")
	}
	if math.Abs(od1.Y-2.9) > 1e-6 {
		t.Errorf("y = %v, want 2.9", od1.Y)
	}

	cl := s.Atoms[16]
	if !cl.Het || cl.Element != "CL" {
		t.Errorf("unexpected chlorine: %+v", cl)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	s, err := Sample(0)
	if err != nil {
		t.Fatal(err)
	}
	codec := NewCodec()

	var buf bytes.Buffer
	if err := codec.Encode(&buf, s); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "HETATM") {
		t.Error("encoded output has no HETATM records")
	}

	atoms, err := codec.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(atoms) != len(s.Atoms) {
		t.Fatalf("got %d atoms back, want %d", len(atoms), len(s.Atoms))
	}
	for i := range atoms {
		want, got := s.Atoms[i], atoms[i]
		if got.Name != want.Name || got.ResName != want.ResName || got.ResSeq != want.ResSeq || got.Het != want.Het {
			t.Errorf("atom %d: got %+v, want %+v", i, got, want)
		}
		if got.Distance(want) > 1e-3 {
			t.Errorf("atom %d moved by %v", i, got.Distance(want))
		}
	}
}

func TestEncode_RoundTripElementAndCharge(t *testing.T) {
	s := domain.Structure{
		Name: "ions",
		Atoms: []domain.Atom{
			{Serial: 1, Name: "CL1", ResName: "LIG", Chain: "B", ResSeq: 1, Element: "CL", Het: true, X: 1, Y: 2, Z: 3},
			{Serial: 2, Name: "N1", ResName: "LIG", Chain: "B", ResSeq: 1, Element: "N", Charge: 1, Het: true, X: 2, Y: 2, Z: 3},
			{Serial: 3, Name: "O2", ResName: "LIG", Chain: "B", ResSeq: 1, Element: "O", Charge: -1, Het: true, X: 3, Y: 2, Z: 3},
			{Serial: 4, Name: "ZN", ResName: "ZN", Chain: "B", ResSeq: 2, Element: "ZN", Charge: 2, Het: true, X: 4, Y: 2, Z: 3},
		},
	}
	codec := NewCodec()

	var buf bytes.Buffer
	if err := codec.Encode(&buf, s); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	atoms, err := codec.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(atoms) != len(s.Atoms) {
		t.Fatalf("got %d atoms back, want %d", len(atoms), len(s.Atoms))
	}
	for i, want := range s.Atoms {
		if atoms[i].Element != want.Element || atoms[i].Charge != want.Charge {
			t.Errorf("atom %s: got element %q charge %d, want %q %d",
				want.Name, atoms[i].Element, atoms[i].Charge, want.Element, want.Charge)
		}
	}
}

func TestDecode_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrEmptyStructure},
		{name: "header only", input: "HEADER    TEST\nEND\n", wantErr: ErrEmptyStructure},
		{name: "truncated record", input: "ATOM      1  N   ASP A  25      -3.000   4.0", wantErr: ErrTruncatedRecord},
		{
			name:    "truncated after coordinates",
			input:   "ATOM      1  N   ASP A  25      -3.000   4.000   0.000  1.00 2",
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec().Decode(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_LastLineWithoutNewline(t *testing.T) {
	input := strings.TrimSuffix(strings.SplitAfter(SamplePDB(), "\n")[1], "\n")
	atoms, err := NewCodec().Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(atoms) != 1 || atoms[0].Name != "N" || atoms[0].Element != "N" {
		t.Errorf("unexpected atoms: %+v", atoms)
	}
}

func TestParseCharge(t *testing.T) {
	tests := map[string]int{
		"  ": 0,
		"1+": 1,
		"2-": -2,
		"+1": 1,
		"-3": -3,
		"x+": 0,
		"1":  0,
	}
	for in, want := range tests {
		if got := parseCharge(in); got != want {
			t.Errorf("parseCharge(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestEncode_Empty(t *testing.T) {
	err := NewCodec().Encode(&bytes.Buffer{}, domain.Structure{Name: "empty"})
	if err == nil {
		t.Fatal("expected error for empty structure")
	}
}

func TestExtractLigands(t *testing.T) {
	ligands, err := NewLigandExtractor(NewCodec()).ExtractLigands(strings.NewReader(SamplePDB()), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ligands) != 2 {
		t.Fatalf("got %d ligands, want STR and ZN", len(ligands))
	}
	str := ligands[0]
	if str.ResName != "STR" || str.Chain != "A" || str.ResSeq != 301 || str.Owner != 7 {
		t.Errorf("unexpected first ligand: %+v", str)
	}
	if len(str.Atoms) != 4 {
		t.Errorf("STR has %d atoms, want 4", len(str.Atoms))
	}
	if ligands[1].ResName != "ZN" {
		t.Errorf("second ligand = %s, want ZN", ligands[1].ResName)
	}
}

func TestGroupLigands_NoHetero(t *testing.T) {
	atoms := []domain.Atom{
		{Name: "CA", ResName: "GLY", Chain: "A", ResSeq: 1},
		{Name: "O", ResName: "HOH", Chain: "A", ResSeq: 2, Het: true},
	}
	if got := GroupLigands(atoms, 0); len(got) != 0 {
		t.Errorf("expected no ligands, got %+v", got)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1tyl.pdb")
	if err := os.WriteFile(path, []byte(SamplePDB()), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewCodec().ReadFile(path, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "1tyl" || s.Source != path || s.Index != 2 {
		t.Errorf("unexpected structure: %+v", s.Shallow())
	}
}

func TestStructureName(t *testing.T) {
	tests := map[string]string{
		"/data/1tyl.pdb":   "1tyl",
		"complex.ent":      "complex",
		"dir/no_extension": "no_extension",
	}
	for in, want := range tests {
		if got := StructureName(in); got != want {
			t.Errorf("StructureName(%q) = %q, want %q", in, got, want)
		}
	}
}
