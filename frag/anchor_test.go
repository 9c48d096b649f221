package frag

import (
	"errors"
	"testing"

	"github.com/fsimkovic/Flib-Coevo/pdb"
	"github.com/fsimkovic/Flib-Coevo/seq"
)

// makeChain adds a single model chain to the entry. Residues are numbered
// from start, lie peptide bonded along the x axis except where breakBefore
// says otherwise, and carry a full backbone plus CB and CG side-chain atoms
// (glycine gets the backbone only).
func makeChain(e *pdb.Entry, ident byte, sequence string, start int,
	breakBefore map[int]bool) *pdb.Chain {

	model := &pdb.Model{Num: 1}
	shift := 0.0
	for i := 0; i < len(sequence); i++ {
		if breakBefore[i] {
			shift += 10
		}
		base := shift + 3.8*float64(i)
		r := &pdb.Residue{
			Name:    seq.Residue(sequence[i]),
			SeqNum:  start + i,
			InsCode: ' ',
			Atoms: []pdb.Atom{
				{Name: "N", X: base, Y: 0, Z: 0},
				{Name: "CA", X: base + 1.5, Y: 0, Z: 0},
				{Name: "C", X: base + 2.5, Y: 0, Z: 0},
				{Name: "O", X: base + 2.5, Y: 1.2, Z: 0},
			},
		}
		if sequence[i] != 'G' {
			r.Atoms = append(r.Atoms,
				pdb.Atom{Name: "CB", X: base + 1.5, Y: 1.5, Z: 0},
				pdb.Atom{Name: "CG", X: base + 1.5, Y: 2.9, Z: 0})
		}
		model.Residues = append(model.Residues, r)
	}
	chain := &pdb.Chain{Entry: e, Ident: ident, Models: []*pdb.Model{model}}
	e.Chains = append(e.Chains, chain)
	return chain
}

func makeEntry(idCode string) *pdb.Entry {
	return &pdb.Entry{IdCode: idCode}
}

func mustParse(t *testing.T, line string) Descriptor {
	t.Helper()
	d, err := ParseDescriptor(line)
	if err != nil {
		t.Fatalf("ParseDescriptor(%q): %s", line, err)
	}
	return d
}

// MKVLA sits at local index 3 of the segment, with the generator's relative
// numbering starting at 10, so the offset is 7 and the absolute range is
// fixed by segment positions 3 through 7.
func TestAnchorOffset(t *testing.T) {
	entry := makeEntry("1abc")
	chain := makeChain(entry, 'A', "AGGMKVLAQST", 100, nil)

	d := mustParse(t, "1ABC A 10 14 MKVLA 5 0.80 0.32")
	rr, err := Anchor(chain.Segments(), d)
	if err != nil {
		t.Fatalf("Anchor: %s", err)
	}
	if rr.Start != (pdb.ResidueID{SeqNum: 103, InsCode: ' '}) {
		t.Fatalf("expected start 103, got %s", rr.Start)
	}
	if rr.End != (pdb.ResidueID{SeqNum: 107, InsCode: ' '}) {
		t.Fatalf("expected end 107, got %s", rr.End)
	}
}

// The first segment containing the sequence wins, even when a later
// segment contains it too.
func TestAnchorFirstSegmentWins(t *testing.T) {
	entry := makeEntry("1abc")
	chain := makeChain(entry, 'A', "MKVLAGGMKVLA", 1, map[int]bool{7: true})

	d := mustParse(t, "1ABC A 0 4 MKVLA 5 0.80 0.32")
	rr, err := Anchor(chain.Segments(), d)
	if err != nil {
		t.Fatalf("Anchor: %s", err)
	}
	if rr.Start != (pdb.ResidueID{SeqNum: 1, InsCode: ' '}) ||
		rr.End != (pdb.ResidueID{SeqNum: 5, InsCode: ' '}) {
		t.Fatalf("expected range 1-5 from the first segment, got %s", rr)
	}
}

func TestAnchorSequenceNotFound(t *testing.T) {
	entry := makeEntry("1abc")
	chain := makeChain(entry, 'A', "GGMKVLAQST", 100, nil)

	d := mustParse(t, "1ABC A 10 14 WWWWW 5 0.80 0.32")
	_, err := Anchor(chain.Segments(), d)
	if !errors.Is(err, ErrSequenceNotFound) {
		t.Fatalf("expected ErrSequenceNotFound, got %v", err)
	}
}

func TestAnchorOutOfRange(t *testing.T) {
	entry := makeEntry("1abc")
	chain := makeChain(entry, 'A', "GGMKV", 100, nil)

	// The sequence is found at index 2, but the declared range runs four
	// residues past the end of the segment.
	d := mustParse(t, "1ABC A 10 16 MKV 3 0.80 0.32")
	_, err := Anchor(chain.Segments(), d)
	if !errors.Is(err, ErrAnchorOutOfRange) {
		t.Fatalf("expected ErrAnchorOutOfRange, got %v", err)
	}
}

func TestAnchorSpansBreak(t *testing.T) {
	// MKV and LA are split by a chain break, so MKVLA occurs in no single
	// segment even though the chain's full sequence contains it.
	entry := makeEntry("1abc")
	chain := makeChain(entry, 'A', "MKVLA", 1, map[int]bool{3: true})

	d := mustParse(t, "1ABC A 0 4 MKVLA 5 0.80 0.32")
	_, err := Anchor(chain.Segments(), d)
	if !errors.Is(err, ErrSequenceNotFound) {
		t.Fatalf("expected ErrSequenceNotFound, got %v", err)
	}
}

func TestResidueRangeContains(t *testing.T) {
	rr := ResidueRange{pdb.ResidueID{SeqNum: 10, InsCode: ' '}, pdb.ResidueID{SeqNum: 12, InsCode: 'A'}}
	tests := []struct {
		id pdb.ResidueID
		in bool
	}{
		{pdb.ResidueID{SeqNum: 9, InsCode: ' '}, false},
		{pdb.ResidueID{SeqNum: 10, InsCode: ' '}, true},
		{pdb.ResidueID{SeqNum: 11, InsCode: ' '}, true},
		{pdb.ResidueID{SeqNum: 12, InsCode: ' '}, true},
		{pdb.ResidueID{SeqNum: 12, InsCode: 'A'}, true},
		{pdb.ResidueID{SeqNum: 12, InsCode: 'B'}, false},
		{pdb.ResidueID{SeqNum: 13, InsCode: ' '}, false},
	}
	for _, test := range tests {
		if got := rr.Contains(test.id); got != test.in {
			t.Errorf("Contains(%s): expected %v, got %v",
				test.id, test.in, got)
		}
	}
}
