package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

// WritePDB writes an entry to a file in plain PDB format.
func WritePDB(fileName string, e *Entry) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := Write(f, e); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes an entry in plain PDB format: ATOM records grouped by model,
// a TER record after each chain, and a final END record. Atom serial numbers
// are renumbered from 1. MODEL/ENDMDL records are emitted only when the entry
// has more than one model.
func Write(w io.Writer, e *Entry) error {
	bw := bufio.NewWriter(w)

	nums := e.modelNums()
	multi := len(nums) > 1
	serial := 0
	for _, num := range nums {
		if multi {
			fmt.Fprintf(bw, "MODEL     %4d\n", num)
		}
		for _, chain := range e.Chains {
			model := chain.Model(num)
			if model == nil || len(model.Residues) == 0 {
				continue
			}
			for _, r := range model.Residues {
				for _, a := range r.Atoms {
					serial++
					fmt.Fprintf(bw,
						"ATOM  %5d %s %3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
						serial, padAtomName(a.Name), threeLetter(r), chain.Ident,
						r.SeqNum, r.InsCode, a.X, a.Y, a.Z, 1.0, 0.0,
						element(a.Name))
				}
			}
			last := model.Residues[len(model.Residues)-1]
			serial++
			fmt.Fprintf(bw, "TER   %5d      %3s %c%4d%c\n",
				serial, threeLetter(last), chain.Ident, last.SeqNum, last.InsCode)
		}
		if multi {
			fmt.Fprintln(bw, "ENDMDL")
		}
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

// modelNums returns the sorted set of model numbers over all chains of
// the entry.
func (e *Entry) modelNums() []int {
	seen := make(map[int]bool)
	var nums []int
	for _, chain := range e.Chains {
		for _, m := range chain.Models {
			if !seen[m.Num] {
				seen[m.Num] = true
				nums = append(nums, m.Num)
			}
		}
	}
	sort.Ints(nums)
	return nums
}

func threeLetter(r *Residue) string {
	if name, ok := AminoOneToThree[byte(r.Name)]; ok {
		return name
	}
	return "UNK"
}

// padAtomName pads an atom name to the four columns it occupies in an ATOM
// record. Names shorter than four characters start in the second column.
func padAtomName(name string) string {
	if len(name) >= 4 {
		return name[0:4]
	}
	return fmt.Sprintf(" %-3s", name)
}

// element guesses the element symbol of an atom from its name: the first
// non-digit character.
func element(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return string(name[i])
		}
	}
	return ""
}
