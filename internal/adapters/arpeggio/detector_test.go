package arpeggio

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"chemint/internal/domain"
	"chemint/internal/ports"
)

const sampleContacts = `[
  {"bgn": {"auth_asym_id": "A", "auth_seq_id": 301, "label_comp_id": "STR", "auth_atom_id": "N1"},
   "end": {"auth_asym_id": "A", "auth_seq_id": 25, "label_comp_id": "ASP", "auth_atom_id": "OD1"},
   "type": "atom-atom", "distance": 2.9, "contact": ["polar", "hbond", "vdw_clash"]},
  {"bgn": {"auth_asym_id": "A", "auth_seq_id": 30, "label_comp_id": "LYS", "auth_atom_id": "NZ"},
   "end": {"auth_asym_id": "A", "auth_seq_id": 301, "label_comp_id": "STR", "auth_atom_id": "O1"},
   "type": "atom-atom", "distance": 2.67, "contact": ["hbond"]},
  {"bgn": {"auth_asym_id": "A", "auth_seq_id": 301, "label_comp_id": "STR", "auth_atom_id": "N1"},
   "end": {"auth_asym_id": "A", "auth_seq_id": 301, "label_comp_id": "STR", "auth_atom_id": "C1"},
   "type": "atom-atom", "distance": 1.4, "contact": ["covalent"]},
  {"bgn": {"auth_asym_id": "A", "auth_seq_id": 301, "label_comp_id": "STR", "auth_atom_id": "C1"},
   "end": {"auth_asym_id": "A", "auth_seq_id": 40, "label_comp_id": "PHE", "auth_atom_id": "CG,CD1,CD2"},
   "type": "atom-plane", "distance": 3.8, "contact": ["CARBONPI", "mystery"]}
]`

func complexAtoms() []domain.Atom {
	return []domain.Atom{
		{Serial: 1, Name: "OD1", ResName: "ASP", Chain: "A", ResSeq: 25, Element: "O"},
		{Serial: 2, Name: "NZ", ResName: "LYS", Chain: "A", ResSeq: 30, Element: "N"},
		{Serial: 3, Name: "CD1", ResName: "PHE", Chain: "A", ResSeq: 40, Element: "C"},
		{Serial: 4, Name: "N1", ResName: "STR", Chain: "A", ResSeq: 301, Element: "N", Het: true},
		{Serial: 5, Name: "C1", ResName: "STR", Chain: "A", ResSeq: 301, Element: "C", Het: true},
		{Serial: 6, Name: "O1", ResName: "STR", Chain: "A", ResSeq: 301, Element: "O", Het: true},
	}
}

func request() ports.CalculationRequest {
	s := domain.Structure{Index: 0, Name: "1str", Deep: true, Atoms: complexAtoms()}
	lig := domain.Ligand{Owner: 0, ResName: "STR", Chain: "A", ResSeq: 301, Atoms: s.Atoms[3:]}
	return ports.CalculationRequest{Structure: s, Ligand: lig}
}

type stubCodec struct {
	got domain.Structure
}

func (c *stubCodec) Encode(w io.Writer, s domain.Structure) error {
	c.got = s
	_, err := io.WriteString(w, "END\n")
	return err
}

func (c *stubCodec) Decode(r io.Reader) ([]domain.Atom, error) { return nil, nil }

// fakeRun writes output into the directory passed with -o
func fakeRun(output string, gotArgs *[]string) runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*gotArgs = append([]string{name}, args...)
		dir := args[len(args)-1]
		return nil, os.WriteFile(filepath.Join(dir, inputName+".json"), []byte(output), 0o644)
	}
}

func TestParseContacts(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantCount int
		wantErr   bool
	}{
		{name: "sample", data: sampleContacts, wantCount: 4},
		{name: "empty list", data: "[]", wantCount: 0},
		{name: "not json", data: "Traceback (most recent call last)", wantErr: true},
		{name: "object instead of list", data: `{"bgn": {}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContacts([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseContacts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.wantCount {
				t.Errorf("ParseContacts() returned %d contacts, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"hbond", domain.CategoryHBond, true},
		{"vdw_clash", domain.CategoryVdWClash, true},
		{"CARBONPI", domain.CategoryCarbonPi, true},
		{"CationPi", domain.CategoryCationPi, true},
		{"amideamide", "", false},
	}
	for _, tt := range tests {
		got, ok := categoryOf(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("categoryOf(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDetector_Calculate(t *testing.T) {
	var args []string
	codec := &stubCodec{}
	d := NewDetector("pdbe-arpeggio", codec)
	d.run = fakeRun(sampleContacts, &args)

	got, err := d.Calculate(context.Background(), request())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if len(args) != 6 || args[0] != "pdbe-arpeggio" || args[2] != "-s" || args[3] != "/A/301/" || args[4] != "-o" {
		t.Fatalf("unexpected command line %v", args)
	}

	want := []struct {
		category string
		ligand   string
		partner  string
	}{
		{domain.CategoryHBond, "N1", "OD1"},
		{domain.CategoryPolar, "N1", "OD1"},
		{domain.CategoryVdWClash, "N1", "OD1"},
		{domain.CategoryHBond, "O1", "NZ"},
		{domain.CategoryCarbonPi, "C1", "CD1"},
	}
	if len(got) != len(want) {
		t.Fatalf("Calculate() returned %d interactions, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Category != w.category || got[i].Ligand.Atom.Name != w.ligand || got[i].Partner.Atom.Name != w.partner {
			t.Errorf("interaction %d = %s %s-%s, want %s %s-%s", i,
				got[i].Category, got[i].Ligand.Atom.Name, got[i].Partner.Atom.Name,
				w.category, w.ligand, w.partner)
		}
	}
}

func TestDetector_CalculateLigandFromOtherStructure(t *testing.T) {
	var args []string
	codec := &stubCodec{}
	d := NewDetector("pdbe-arpeggio", codec)

	output := `[{"bgn": {"auth_asym_id": "Z", "auth_seq_id": 1, "auth_atom_id": "C1"},
	  "end": {"auth_asym_id": "A", "auth_seq_id": 25, "auth_atom_id": "OD1"},
	  "type": "atom-atom", "distance": 3.3, "contact": ["weak_hbond"]}]`
	d.run = fakeRun(output, &args)

	target := domain.Structure{Index: 0, Name: "1str", Deep: true, Atoms: complexAtoms()[:3]}
	drug := domain.Structure{Index: 4, Name: "drug", Deep: true, Atoms: []domain.Atom{
		{Serial: 1, Name: "C1", ResName: "DRG", Chain: "A", ResSeq: 1, Element: "C"},
	}}
	req := ports.CalculationRequest{Structure: target, Ligand: domain.WholeLigand(drug), LigandStructure: &drug}

	got, err := d.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if args[3] != "/Z/" {
		t.Errorf("selection = %q, want /Z/", args[3])
	}
	if len(codec.got.Atoms) != 4 {
		t.Errorf("merged input has %d atoms, want 4", len(codec.got.Atoms))
	}
	if len(got) != 1 {
		t.Fatalf("Calculate() returned %d interactions, want 1", len(got))
	}
	if got[0].Ligand.Structure != 4 || got[0].Ligand.Atom.Chain != "A" {
		t.Errorf("ligand endpoint = %+v, want original atom of structure 4", got[0].Ligand)
	}
	if got[0].Partner.Structure != 0 {
		t.Errorf("partner structure = %d, want 0", got[0].Partner.Structure)
	}
}

func TestDetector_CalculateCommandFails(t *testing.T) {
	d := NewDetector("pdbe-arpeggio", &stubCodec{})
	d.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("arpeggio error: boom")
	}

	if _, err := d.Calculate(context.Background(), request()); err == nil {
		t.Error("Calculate() expected error")
	}
}

func TestDetector_CalculateNoOutput(t *testing.T) {
	d := NewDetector("pdbe-arpeggio", &stubCodec{})
	d.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, nil
	}

	if _, err := d.Calculate(context.Background(), request()); err == nil {
		t.Error("Calculate() expected error when no contacts file is written")
	}
}

func TestFreeChain(t *testing.T) {
	atoms := []domain.Atom{{Chain: "Z"}, {Chain: "A"}}
	if got := freeChain(atoms); got != "Y" {
		t.Errorf("freeChain() = %q, want Y", got)
	}
}

func TestDetector_IsAvailable(t *testing.T) {
	d := NewDetector("chemint-no-such-command", &stubCodec{})
	if d.IsAvailable() {
		t.Error("IsAvailable() = true for a missing command")
	}
}
