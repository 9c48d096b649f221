// Package frag extracts fragment sub-structures from a PDB database, given
// the fragment descriptors produced by an external fragment library
// generator. The hard part is that the generator numbers residues relative
// to its own internal sequence, which rarely agrees with the numbering in
// the structure file; anchoring reconciles the two by sequence matching.
package frag

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fsimkovic/Flib-Coevo/seq"
)

// Treatment is the policy for which atoms of a retained residue survive
// extraction.
type Treatment int

const (
	// FullAtom keeps every atom of every retained residue.
	FullAtom Treatment = iota

	// BackboneOnly keeps the backbone atoms N, CA, C and O plus the first
	// side-chain atom CB. Glycine has no CB and is left with the four
	// backbone atoms.
	BackboneOnly
)

func (t Treatment) String() string {
	if t == BackboneOnly {
		return "backbone-only"
	}
	return "full-atom"
}

// ParseTreatment is the inverse of Treatment.String.
func ParseTreatment(s string) (Treatment, error) {
	switch s {
	case "full-atom":
		return FullAtom, nil
	case "backbone-only":
		return BackboneOnly, nil
	}
	return 0, fmt.Errorf("unknown side-chain treatment '%s'", s)
}

// A Descriptor is one requested sub-structure extraction, as declared by a
// fragment library generator: which structure, which chain, which residue
// range in the generator's own relative numbering, and the sequence the
// extracted fragment must have. Descriptors are values and are never
// mutated after parsing.
type Descriptor struct {
	IdCode   string
	Chain    byte
	Start    int // relative numbering, inclusive
	End      int // relative numbering, inclusive
	Sequence seq.Sequence
	Length   int
	Score    float64
	Atoms    Treatment
}

// MalformedDescriptorError is returned when a fragment descriptor line
// cannot be parsed into its required fields.
type MalformedDescriptorError struct {
	Line   string
	Reason string
}

func (e MalformedDescriptorError) Error() string {
	return fmt.Sprintf("malformed fragment descriptor '%s': %s",
		e.Line, e.Reason)
}

// ParseDescriptor parses one whitespace-delimited fragment descriptor line.
// The consumed fields are, by index: structure id (lower cased), chain id,
// relative start, relative end, sequence and declared length. The score is
// always the last field. Any extra fields in between are carried by the
// generator's format but unused here, and are ignored.
func ParseDescriptor(line string) (Descriptor, error) {
	malformed := func(format string, v ...interface{}) (Descriptor, error) {
		return Descriptor{}, MalformedDescriptorError{
			Line:   line,
			Reason: fmt.Sprintf(format, v...),
		}
	}

	fields := strings.Fields(line)
	if len(fields) < 7 {
		return malformed("expected at least 7 fields, found %d", len(fields))
	}
	if len(fields[1]) != 1 {
		return malformed("chain identifier '%s' is not a single character",
			fields[1])
	}
	start, err := strconv.Atoi(fields[2])
	if err != nil {
		return malformed("relative start '%s' is not an integer", fields[2])
	}
	end, err := strconv.Atoi(fields[3])
	if err != nil {
		return malformed("relative end '%s' is not an integer", fields[3])
	}
	length, err := strconv.Atoi(fields[5])
	if err != nil {
		return malformed("fragment length '%s' is not an integer", fields[5])
	}
	score, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return malformed("score '%s' is not a number",
			fields[len(fields)-1])
	}

	idCode := strings.ToLower(fields[0])
	chain := fields[1][0]
	sequence := strings.ToUpper(fields[4])
	return Descriptor{
		IdCode:   idCode,
		Chain:    chain,
		Start:    start,
		End:      end,
		Sequence: seq.FromString(fmt.Sprintf("%s%c", idCode, chain), sequence),
		Length:   length,
		Score:    score,
		Atoms:    FullAtom,
	}, nil
}

// ReadDescriptors reads a fragment descriptor file: one descriptor per line,
// blank lines ignored. The first malformed line aborts the read.
func ReadDescriptors(r io.Reader) ([]Descriptor, error) {
	var ds []Descriptor
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		d, err := ParseDescriptor(line)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Top returns the n descriptors with the lowest scores, in ascending score
// order with ties broken by original order. When n is 0 (or covers the whole
// input), the input is returned as-is, unranked. The input is not modified.
func Top(ds []Descriptor, n int) []Descriptor {
	if n <= 0 || n >= len(ds) {
		return ds
	}
	ranked := make([]Descriptor, len(ds))
	copy(ranked, ds)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked[:n]
}

// Expand produces the cross product of descriptors and side-chain
// treatments, in input order. Extraction runs once per expanded descriptor.
func Expand(ds []Descriptor, treatments []Treatment) []Descriptor {
	expanded := make([]Descriptor, 0, len(ds)*len(treatments))
	for _, d := range ds {
		for _, t := range treatments {
			d.Atoms = t
			expanded = append(expanded, d)
		}
	}
	return expanded
}

// FileName is the deterministic output file name for this descriptor. It
// encodes everything that distinguishes one expanded descriptor from
// another, so no two descriptors of a run may collide.
func (d Descriptor) FileName() string {
	return fmt.Sprintf("%s%c-%s-%s.pdb",
		d.IdCode, d.Chain, d.Sequence.String(), d.Atoms)
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s%c %d-%d %s (%s)",
		d.IdCode, d.Chain, d.Start, d.End, d.Sequence.String(), d.Atoms)
}
