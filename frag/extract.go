package frag

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/fsimkovic/Flib-Coevo/pdb"
)

// ErrStructureUnavailable is returned when the structure named by a
// descriptor is missing from the database or cannot be read.
var ErrStructureUnavailable = errors.New(
	"structure file missing or unreadable")

// A Result is the terminal outcome of one descriptor: either the path of a
// written, validated fragment file, or the error that discarded the
// descriptor. Descriptors are attempted exactly once.
type Result struct {
	Desc Descriptor
	Path string
	Err  error
}

// Extracted reports whether the descriptor yielded a validated file.
func (r Result) Extracted() bool {
	return r.Err == nil
}

// Extract runs the whole pipeline for one descriptor: load the structure
// from pdbDir, anchor the fragment sequence, prune, write the fragment file
// into outDir, and validate the written file by re-reading it.
//
// Every failure is contained to this descriptor. A validation failure
// removes the written file, so outDir never holds an invalid fragment:
// a descriptor either yields a fully validated file or no file.
func Extract(pdbDir, outDir string, d Descriptor) Result {
	fail := func(err error) Result {
		return Result{Desc: d, Err: err}
	}

	fileName, err := StructurePath(pdbDir, d.IdCode)
	if err != nil {
		return fail(err)
	}
	entry, err := pdb.ReadPDB(fileName)
	if err != nil {
		return fail(fmt.Errorf("%s: %s: %w", d, err, ErrStructureUnavailable))
	}
	chain := entry.Chain(d.Chain)
	if chain == nil {
		return fail(fmt.Errorf("%s: no chain '%c' in '%s': %w",
			d, d.Chain, fileName, ErrStructureUnavailable))
	}

	rr, err := Anchor(chain.Segments(), d)
	if err != nil {
		return fail(err)
	}
	pruned := Prune(entry, d.Chain, rr, d.Atoms)

	outPath := path.Join(outDir, d.FileName())
	if err := pdb.WritePDB(outPath, pruned); err != nil {
		os.Remove(outPath)
		return fail(fmt.Errorf("%s: writing '%s': %w", d, outPath, err))
	}
	if err := Validate(outPath, d.Sequence); err != nil {
		os.Remove(outPath)
		return fail(err)
	}
	return Result{Desc: d, Path: outPath}
}

// StructurePath locates the structure file for an id code in a database
// directory. Both plain and PDB-mirror naming schemes are tried, gzipped
// or not.
func StructurePath(pdbDir, idCode string) (string, error) {
	names := []string{
		idCode + ".pdb",
		idCode + ".pdb.gz",
		idCode + ".ent",
		idCode + ".ent.gz",
		"pdb" + idCode + ".ent",
		"pdb" + idCode + ".ent.gz",
	}
	for _, name := range names {
		p := path.Join(pdbDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no structure file for '%s' in '%s': %w",
		idCode, pdbDir, ErrStructureUnavailable)
}
