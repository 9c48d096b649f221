package frag

import (
	"github.com/fsimkovic/Flib-Coevo/pdb"
)

// backboneAtoms is the atom set retained by the BackboneOnly treatment.
var backboneAtoms = map[string]bool{
	"N": true, "CA": true, "C": true, "O": true, "CB": true,
}

// Prune reduces an entry to exactly one fragment: the target chain only,
// residues within the range only (inclusive), and, under BackboneOnly, only
// the atoms named N, CA, C, O and CB. The rule is applied to every model of
// the chain. Prune builds a new entry and never mutates its input, so the
// same source entry may serve several extractions.
func Prune(e *pdb.Entry, chain byte, rr ResidueRange, t Treatment) *pdb.Entry {
	pruned := &pdb.Entry{
		Path:   e.Path,
		IdCode: e.IdCode,
	}
	target := e.Chain(chain)
	if target == nil {
		return pruned
	}

	kept := &pdb.Chain{Entry: pruned, Ident: target.Ident}
	for _, model := range target.Models {
		m := &pdb.Model{Num: model.Num}
		for _, r := range model.Residues {
			if !rr.Contains(r.ID()) {
				continue
			}
			m.Residues = append(m.Residues, pruneAtoms(r, t))
		}
		kept.Models = append(kept.Models, m)
	}
	pruned.Chains = append(pruned.Chains, kept)
	return pruned
}

func pruneAtoms(r *pdb.Residue, t Treatment) *pdb.Residue {
	res := &pdb.Residue{
		Name:    r.Name,
		SeqNum:  r.SeqNum,
		InsCode: r.InsCode,
		Atoms:   make([]pdb.Atom, 0, len(r.Atoms)),
	}
	for _, a := range r.Atoms {
		if t == BackboneOnly && !backboneAtoms[a.Name] {
			continue
		}
		res.Atoms = append(res.Atoms, a)
	}
	return res
}
