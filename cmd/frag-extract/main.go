// frag-extract cuts fragment sub-structures out of a PDB database, given
// one or more fragment files produced by a fragment library generator.
// Each surviving fragment becomes one PDB file in the output directory,
// validated by re-reading it against the requested sequence.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/fsimkovic/Flib-Coevo/cmd/util"
	"github.com/fsimkovic/Flib-Coevo/frag"
)

var (
	flagTop   = 0
	flagAtoms = "both"
)

func init() {
	flag.IntVar(&flagTop, "top", flagTop,
		"When positive, only the N lowest scored fragments of each\n"+
			"fragment file are extracted. 0 extracts all of them.")
	flag.StringVar(&flagAtoms, "atoms", flagAtoms,
		"Side-chain treatment of extracted fragments: 'full-atom',\n"+
			"'backbone-only' or 'both'.")

	util.FlagUse("cpu", "verbose")
	util.FlagParse("pdb-db-dir out-dir frag-file [ frag-file ... ]",
		"The pdb-db-dir directory must contain one structure file per\n"+
			"structure id named in the fragment files. The out-dir directory\n"+
			"is removed and recreated at the start of every run.")
	util.AssertLeastNArg(3)
}

func main() {
	pdbDir := util.Arg(0)
	outDir := util.Arg(1)
	fragFiles := flag.Args()[2:]

	util.AssertIsDir(pdbDir)

	descriptors := make([]frag.Descriptor, 0)
	for _, fragFile := range fragFiles {
		f := util.OpenFile(fragFile)
		ds, err := frag.ReadDescriptors(f)
		f.Close()
		util.Assert(err, "Could not read fragment file '%s'", fragFile)

		// Top-N selection is per fragment file, before fan-out.
		descriptors = append(descriptors, frag.Top(ds, flagTop)...)
	}
	descriptors = frag.Expand(descriptors, treatments())

	// Recreate the output directory so runs are reproducible.
	util.Assert(os.RemoveAll(outDir),
		"Could not remove output directory '%s'", outDir)
	util.Assert(os.MkdirAll(outDir, 0777),
		"Could not create output directory '%s'", outDir)

	pool := newExtractWorkers(pdbDir, outDir, util.FlagCpu)
	go func() {
		for _, d := range descriptors {
			pool.enqueue(d)
		}
		pool.done()
	}()

	progress := util.NewProgress(len(descriptors))
	extracted := 0
	for r := range pool.results {
		progress.JobDone(r.Err)
		if r.Extracted() {
			extracted++
		}
	}
	progress.Close()

	log.Printf("%d of %d fragments extracted.", extracted, len(descriptors))
}

func treatments() []frag.Treatment {
	if flagAtoms == "both" {
		return []frag.Treatment{frag.FullAtom, frag.BackboneOnly}
	}
	t, err := frag.ParseTreatment(flagAtoms)
	util.Assert(err)
	return []frag.Treatment{t}
}
