package main

import (
	"sync"

	"github.com/fsimkovic/Flib-Coevo/frag"
)

// Workers share nothing mutable: the PDB database is read-only for the
// whole run, and every descriptor owns its output path exclusively (the
// output name is a function of the descriptor's fields).
type pool struct {
	wg          *sync.WaitGroup
	descriptors chan frag.Descriptor
	results     chan frag.Result
}

func newExtractWorkers(pdbDir, outDir string, numWorkers int) pool {
	descriptors := make(chan frag.Descriptor, numWorkers*2)
	results := make(chan frag.Result, numWorkers*2)
	wg := new(sync.WaitGroup)
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			for d := range descriptors {
				results <- frag.Extract(pdbDir, outDir, d)
			}
			wg.Done()
		}()
	}
	return pool{wg, descriptors, results}
}

func (p pool) enqueue(d frag.Descriptor) {
	p.descriptors <- d
}

func (p pool) done() {
	close(p.descriptors)
	p.wg.Wait() // wait for workers to finish sending results
	close(p.results)
}
