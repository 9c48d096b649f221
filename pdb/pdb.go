package pdb

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/fsimkovic/Flib-Coevo/seq"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// AminoOneToThree is the reverse of AminoThreeToOne. It is created in
// this package's 'init' function.
var AminoOneToThree = map[byte]string{}

func init() {
	// Create a reverse map of AminoThreeToOne.
	for k, v := range AminoThreeToOne {
		AminoOneToThree[v] = k
	}
}

// Entry represents all information known about a particular PDB file (that
// has been implemented in this package).
//
// Currently, a PDB entry is a file path, an id code and a list of protein
// chains in file order.
type Entry struct {
	Path   string
	IdCode string
	Chains []*Chain
}

// Chain represents a protein chain or subunit in a PDB file. A chain has its
// own identifier and one set of residues per model. Most entries have a
// single model; NMR entries commonly have many.
type Chain struct {
	Entry  *Entry
	Ident  byte
	Models []*Model
}

// Model corresponds to the coordinates of one model of a chain. Residues
// appear in file order, which is assumed (not verified) to be increasing
// in residue identifier.
type Model struct {
	Num      int
	Residues []*Residue
}

// Residue is a single amino acid residue with its recorded ATOM coordinates.
// Name is the one-letter amino acid; non-standard residues are represented
// as 'X'.
type Residue struct {
	Name    seq.Residue
	SeqNum  int
	InsCode byte
	Atoms   []Atom
}

// Atom is a single named coordinate of a residue.
type Atom struct {
	Name    string
	X, Y, Z float64
}

// ResidueID identifies a residue within a chain: the residue sequence number
// from the structure file plus its insertion code (a space when absent).
// Sequence numbers may have gaps and may be negative.
type ResidueID struct {
	SeqNum  int
	InsCode byte
}

// ID returns the identifier of this residue.
func (r *Residue) ID() ResidueID {
	return ResidueID{r.SeqNum, r.InsCode}
}

// Atom returns the named atom of this residue, or nil if the residue has
// no such atom.
func (r *Residue) Atom(name string) *Atom {
	for i := range r.Atoms {
		if r.Atoms[i].Name == name {
			return &r.Atoms[i]
		}
	}
	return nil
}

// Less orders residue identifiers the way they are ordered in a structure
// file: by sequence number, with insertion codes (blank first) breaking ties.
func (id ResidueID) Less(other ResidueID) bool {
	if id.SeqNum != other.SeqNum {
		return id.SeqNum < other.SeqNum
	}
	return id.InsCode < other.InsCode
}

// String returns the identifier as it would be written in a PDB file,
// e.g. "52" or "52A".
func (id ResidueID) String() string {
	s := strconv.Itoa(id.SeqNum)
	if id.InsCode != ' ' {
		s += string(id.InsCode)
	}
	return s
}

// Chain returns the chain with the given identifier, or nil if the entry
// has no such chain.
func (e *Entry) Chain(ident byte) *Chain {
	for _, chain := range e.Chains {
		if chain.Ident == ident {
			return chain
		}
	}
	return nil
}

// Model returns the model with the given number, or nil if the chain has
// no such model.
func (c *Chain) Model(num int) *Model {
	for _, m := range c.Models {
		if m.Num == num {
			return m
		}
	}
	return nil
}

// ReadPDB reads a PDB entry from a file. If the file name ends with ".gz",
// gzip decompression is used. The entry's id code is derived from the file
// name ("pdb1abc.ent.gz" and "1abc.pdb" both yield "1abc").
func ReadPDB(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		if reader, err = gzip.NewReader(f); err != nil {
			return nil, err
		}
	}

	entry, err := Read(reader, idCodeFromPath(fileName))
	if err != nil {
		return nil, err
	}
	entry.Path = fileName
	return entry, nil
}

// Read reads a PDB entry from plain PDB text. Parsing is permissive:
// records that cannot be interpreted are skipped rather than aborting
// the whole entry.
func Read(r io.Reader, idCode string) (*Entry, error) {
	entry := &Entry{IdCode: idCode}

	// Model number 1 is implicit for entries without MODEL records.
	curModel := 1

	// Now traverse each line, and process it according to the record name.
	breader := bufio.NewReaderSize(r, 1000)
	for {
		// We ignore 'isPrefix' here, since we never care about lines longer
		// than 1000 characters, which is the size of our buffer.
		line, _, err := breader.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(line) < 6 {
			continue
		}

		// The record name is always in the first six columns.
		switch strings.TrimSpace(string(line[0:6])) {
		case "MODEL":
			if len(line) >= 14 {
				snum := strings.TrimSpace(string(line[10:14]))
				if num, err := strconv.Atoi(snum); err == nil {
					curModel = num
				}
			}
		case "ATOM":
			entry.parseAtom(line, curModel)
		}
	}
	return entry, nil
}

// parseAtom loads one ATOM record into the entry's chain/model/residue
// hierarchy. Records that don't name an amino acid residue, records for
// alternate conformers other than 'A', and records with unparseable
// numeric columns are ignored.
func (e *Entry) parseAtom(line []byte, modelNum int) {
	if len(line) < 54 {
		return
	}

	// The residue name is in columns 18-20. Anything that isn't a three
	// letter name is skipped (waters, ions and such live in HETATM records,
	// but some files are sloppy). Non-standard amino acids become 'X'.
	resName := strings.TrimSpace(string(line[17:20]))
	if len(resName) != 3 {
		return
	}
	single, ok := AminoThreeToOne[resName]
	if !ok {
		single = 'X'
	}

	// Keep only the blank or 'A' alternate location of each atom, so that
	// alternate conformers cannot produce duplicate atoms downstream.
	if altLoc := line[16]; altLoc != ' ' && altLoc != 'A' {
		return
	}

	snum := strings.TrimSpace(string(line[22:26]))
	seqNum, err := strconv.Atoi(snum)
	if err != nil {
		return
	}
	insCode := line[26]

	x, errx := strconv.ParseFloat(strings.TrimSpace(string(line[30:38])), 64)
	y, erry := strconv.ParseFloat(strings.TrimSpace(string(line[38:46])), 64)
	z, errz := strconv.ParseFloat(strings.TrimSpace(string(line[46:54])), 64)
	if errx != nil || erry != nil || errz != nil {
		return
	}

	atom := Atom{
		Name: strings.TrimSpace(string(line[12:16])),
		X:    x, Y: y, Z: z,
	}

	model := e.getOrMakeChain(line[21]).getOrMakeModel(modelNum)
	id := ResidueID{seqNum, insCode}
	if n := len(model.Residues); n > 0 && model.Residues[n-1].ID() == id {
		last := model.Residues[n-1]
		last.Atoms = append(last.Atoms, atom)
		return
	}
	model.Residues = append(model.Residues, &Residue{
		Name:    seq.Residue(single),
		SeqNum:  seqNum,
		InsCode: insCode,
		Atoms:   []Atom{atom},
	})
}

// getOrMakeChain looks for a chain in the entry corresponding to the chain
// identifier. If one doesn't exist, it is created and appended.
func (e *Entry) getOrMakeChain(ident byte) *Chain {
	if chain := e.Chain(ident); chain != nil {
		return chain
	}
	chain := &Chain{Entry: e, Ident: ident}
	e.Chains = append(e.Chains, chain)
	return chain
}

// getOrMakeModel is the model analogue of getOrMakeChain.
func (c *Chain) getOrMakeModel(num int) *Model {
	if m := c.Model(num); m != nil {
		return m
	}
	m := &Model{Num: num}
	c.Models = append(c.Models, m)
	return m
}

// idCodeFromPath derives a lower cased id code from a structure file name.
// Both the plain "<id>.pdb" and the mirror-style "pdb<id>.ent.gz" naming
// schemes are understood.
func idCodeFromPath(fileName string) string {
	base := path.Base(fileName)
	for _, ext := range []string{".gz", ".ent", ".pdb"} {
		base = strings.TrimSuffix(base, ext)
	}
	if len(base) > 4 && strings.HasPrefix(base, "pdb") {
		base = base[3:]
	}
	return strings.ToLower(base)
}
