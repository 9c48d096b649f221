package pdb

import (
	"fmt"

	"github.com/fsimkovic/Flib-Coevo/seq"
)

// maxPeptideBond is the largest C(i)-N(i+1) distance, in angstroms, that
// still counts as a peptide bond. The true bond length is about 1.33; the
// slack absorbs poorly refined coordinates.
const maxPeptideBond = 1.8

// A Segment is a maximal run of residues in one chain connected by peptide
// bonds. Chains with unresolved residues or genuine breaks yield several
// segments. Segments are derived on demand and never persisted.
type Segment struct {
	Chain    *Chain
	Residues []*Residue
}

// Segments splits the chain into its contiguous peptide segments, in file
// order. Only the first model of the chain is considered, which is the
// convention throughout this package.
func (c *Chain) Segments() []Segment {
	if len(c.Models) == 0 {
		return nil
	}
	residues := c.Models[0].Residues

	var segments []Segment
	var cur []*Residue
	for i, r := range residues {
		if i > 0 && !peptideBonded(residues[i-1], r) {
			segments = append(segments, Segment{c, cur})
			cur = nil
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		segments = append(segments, Segment{c, cur})
	}
	return segments
}

// peptideBonded reports whether the carbonyl carbon of a is close enough to
// the amide nitrogen of b to form a peptide bond. Residues missing either
// backbone atom are treated as not bonded.
func peptideBonded(a, b *Residue) bool {
	ac, bn := a.Atom("C"), b.Atom("N")
	if ac == nil || bn == nil {
		return false
	}
	dx, dy, dz := ac.X-bn.X, ac.Y-bn.Y, ac.Z-bn.Z
	return dx*dx+dy*dy+dz*dz <= maxPeptideBond*maxPeptideBond
}

// Sequence returns the one-letter sequence of the segment's residues.
func (s Segment) Sequence() seq.Sequence {
	residues := make([]seq.Residue, len(s.Residues))
	for i, r := range s.Residues {
		residues[i] = r.Name
	}
	name := fmt.Sprintf("%s%c", s.Chain.Entry.IdCode, s.Chain.Ident)
	return seq.Sequence{Name: name, Residues: residues}
}
