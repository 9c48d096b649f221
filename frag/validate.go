package frag

import (
	"fmt"

	"github.com/fsimkovic/Flib-Coevo/pdb"
	"github.com/fsimkovic/Flib-Coevo/seq"
)

// ValidationError is returned by Validate when a written fragment file does
// not round-trip to the requested sequence.
type ValidationError struct {
	Path   string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid fragment file '%s': %s", e.Path, e.Reason)
}

// Validate re-reads a written fragment file and confirms it encodes exactly
// the requested sequence. This is a true round trip: nothing from the
// pruning step is reused.
//
// The file is rejected when it cannot be parsed, when it yields anything
// other than exactly one sequence record (more than one indicates chain
// bleed-through), or when the single record, with unknown-residue 'X'
// placeholders removed, differs from the requested sequence.
func Validate(fileName string, want seq.Sequence) error {
	entry, err := pdb.ReadPDB(fileName)
	if err != nil {
		return ValidationError{fileName, fmt.Sprintf("unparseable: %s", err)}
	}

	records := sequenceRecords(entry)
	if len(records) != 1 {
		return ValidationError{fileName,
			fmt.Sprintf("expected 1 sequence record, found %d", len(records))}
	}
	if got := stripUnknown(records[0].String()); got != want.String() {
		return ValidationError{fileName,
			fmt.Sprintf("sequence '%s' does not match requested '%s'",
				got, want.String())}
	}
	return nil
}

// sequenceRecords returns one sequence per chain of the entry, built from
// the first model's residues, in file order.
func sequenceRecords(e *pdb.Entry) []seq.Sequence {
	var records []seq.Sequence
	for _, chain := range e.Chains {
		if len(chain.Models) == 0 {
			continue
		}
		model := chain.Models[0]
		residues := make([]seq.Residue, len(model.Residues))
		for i, r := range model.Residues {
			residues[i] = r.Name
		}
		records = append(records, seq.Sequence{
			Name:     fmt.Sprintf("%s%c", e.IdCode, chain.Ident),
			Residues: residues,
		})
	}
	return records
}

func stripUnknown(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != 'X' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
