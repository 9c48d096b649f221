package pdb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fsimkovic/Flib-Coevo/seq"
)

func testResidue(name byte, seqNum int, ins byte, atoms ...Atom) *Residue {
	return &Residue{
		Name:    seq.Residue(name),
		SeqNum:  seqNum,
		InsCode: ins,
		Atoms:   atoms,
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	entry := &Entry{IdCode: "1abc"}
	chain := &Chain{Entry: entry, Ident: 'A'}
	chain.Models = []*Model{{
		Num: 1,
		Residues: []*Residue{
			testResidue('M', 10, ' ',
				Atom{"N", 0, 0, 0},
				Atom{"CA", 1.5, 0, 0},
				Atom{"C", 2.5, 0, 0},
				Atom{"O", 2.5, 1.2, 0},
				Atom{"CB", 1.5, 1.5, 0}),
			testResidue('K', 10, 'A',
				Atom{"N", 3.8, 0, 0},
				Atom{"CA", 5.3, 0, 0}),
		},
	}}
	entry.Chains = []*Chain{chain}

	var buf bytes.Buffer
	if err := Write(&buf, entry); err != nil {
		t.Fatalf("Write: %s", err)
	}
	out := buf.String()
	if !strings.Contains(out, "TER") || !strings.Contains(out, "END") {
		t.Fatalf("missing TER or END record:\n%s", out)
	}
	if strings.Contains(out, "MODEL") {
		t.Fatalf("single model entry must not contain MODEL records:\n%s", out)
	}

	reread, err := Read(&buf, "1abc")
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	rchain := reread.Chain('A')
	if rchain == nil || len(rchain.Models) != 1 {
		t.Fatalf("round trip lost the chain or its model")
	}
	residues := rchain.Models[0].Residues
	if len(residues) != 2 {
		t.Fatalf("expected 2 residues after round trip, got %d",
			len(residues))
	}
	if residues[0].Name != 'M' || residues[1].Name != 'K' {
		t.Fatalf("round trip changed residue names: %c, %c",
			residues[0].Name, residues[1].Name)
	}
	if id := residues[1].ID(); id != (ResidueID{10, 'A'}) {
		t.Fatalf("round trip lost the insertion code: %s", id)
	}
	if len(residues[0].Atoms) != 5 {
		t.Fatalf("expected 5 atoms after round trip, got %d",
			len(residues[0].Atoms))
	}
	ca := residues[0].Atom("CA")
	if ca == nil || ca.X != 1.5 || ca.Y != 0 || ca.Z != 0 {
		t.Fatalf("round trip changed coordinates: %v", ca)
	}
}

func TestWriteModels(t *testing.T) {
	entry := &Entry{IdCode: "2nmr"}
	chain := &Chain{Entry: entry, Ident: 'A'}
	for num := 1; num <= 2; num++ {
		chain.Models = append(chain.Models, &Model{
			Num: num,
			Residues: []*Residue{
				testResidue('G', 1, ' ', Atom{"CA", float64(num), 0, 0}),
			},
		})
	}
	entry.Chains = []*Chain{chain}

	var buf bytes.Buffer
	if err := Write(&buf, entry); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if !strings.Contains(buf.String(), "MODEL") ||
		!strings.Contains(buf.String(), "ENDMDL") {
		t.Fatalf("multi model entry lacks MODEL records:\n%s", buf.String())
	}

	reread, err := Read(&buf, "2nmr")
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	rchain := reread.Chain('A')
	if len(rchain.Models) != 2 {
		t.Fatalf("expected 2 models after round trip, got %d",
			len(rchain.Models))
	}
	if rchain.Model(2).Residues[0].Atoms[0].X != 2 {
		t.Fatal("model 2 coordinates corrupted")
	}
}

func TestWriteUnknownResidue(t *testing.T) {
	entry := &Entry{IdCode: "test"}
	chain := &Chain{Entry: entry, Ident: 'A'}
	chain.Models = []*Model{{
		Num:      1,
		Residues: []*Residue{testResidue('X', 1, ' ', Atom{"CA", 0, 0, 0})},
	}}
	entry.Chains = []*Chain{chain}

	var buf bytes.Buffer
	if err := Write(&buf, entry); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if !strings.Contains(buf.String(), "UNK") {
		t.Fatalf("unknown residue must be written as UNK:\n%s", buf.String())
	}
}
