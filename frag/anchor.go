package frag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsimkovic/Flib-Coevo/pdb"
)

var (
	// ErrSequenceNotFound is returned by Anchor when the fragment sequence
	// does not occur in any peptide segment of the target chain.
	ErrSequenceNotFound = errors.New(
		"fragment sequence not found in any peptide segment")

	// ErrAnchorOutOfRange is returned by Anchor when the sequence was
	// found but the relative residue range maps outside the matched
	// segment.
	ErrAnchorOutOfRange = errors.New(
		"anchored residue range falls outside the matched segment")
)

// A ResidueRange is a closed interval of absolute residue identifiers, the
// unit consumed by Prune.
type ResidueRange struct {
	Start, End pdb.ResidueID
}

// Contains reports whether id lies within the range, inclusive at both ends.
func (rr ResidueRange) Contains(id pdb.ResidueID) bool {
	return !id.Less(rr.Start) && !rr.End.Less(id)
}

func (rr ResidueRange) String() string {
	return fmt.Sprintf("%s-%s", rr.Start, rr.End)
}

// Anchor reconciles the fragment generator's relative residue numbering
// with the absolute residue identifiers of the structure file.
//
// The segments are scanned in file order for the first one whose sequence
// contains the fragment sequence as a contiguous substring; the first
// occurrence within that segment wins. (The fragment sequence need not be
// globally unique, so this tie-break is deliberate.) The match position
// fixes the offset between the two numbering schemes, and the relative
// range is resolved against the matched segment's residues.
//
// A fragment sequence absent from every segment yields ErrSequenceNotFound
// immediately, rather than an offset that resolves to a wrong but valid
// looking range. A found offset whose resolved indices escape the segment
// yields ErrAnchorOutOfRange.
func Anchor(segments []pdb.Segment, d Descriptor) (ResidueRange, error) {
	want := d.Sequence.String()
	if len(want) == 0 {
		return ResidueRange{}, fmt.Errorf("%s: empty fragment sequence: %w",
			d, ErrSequenceNotFound)
	}
	for _, segment := range segments {
		match := strings.Index(segment.Sequence().String(), want)
		if match < 0 {
			continue
		}

		offset := d.Start - match
		lo, hi := d.Start-offset, d.End-offset
		if lo < 0 || hi < lo || hi >= len(segment.Residues) {
			return ResidueRange{}, fmt.Errorf(
				"%s: relative range %d-%d resolves to segment positions "+
					"%d-%d of %d residues: %w",
				d, d.Start, d.End, lo, hi, len(segment.Residues),
				ErrAnchorOutOfRange)
		}
		return ResidueRange{
			Start: segment.Residues[lo].ID(),
			End:   segment.Residues[hi].ID(),
		}, nil
	}
	return ResidueRange{}, fmt.Errorf("%s: %w", d, ErrSequenceNotFound)
}
