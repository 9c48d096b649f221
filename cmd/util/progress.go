package util

// Progress reports fragment extractions as they finish. Discarded
// descriptors are warned about as they happen; completion counts go to
// stderr only when -verbose is set.
type Progress struct {
	errs chan error
	done chan struct{}
}

func NewProgress(total int) Progress {
	p := Progress{make(chan error), make(chan struct{})}
	go func() {
		extracted := 0
		discarded := 0
		for err := range p.errs {
			if err == nil {
				extracted += 1
			} else {
				discarded += 1
				if FlagVerbose {
					Warnf("\r%s                                    \n", err)
				} else {
					Warnf("%s", err)
				}
			}

			finished := extracted + discarded
			ratio := 100.0 * (float64(finished) / float64(total))
			Verbosef("\r%d of %d fragments finished "+
				"(%0.2f%% done, %d discarded)",
				finished, total, ratio, discarded)
		}
		Verbosef("\n")
		p.done <- struct{}{}
	}()
	return p
}

func (p Progress) JobDone(err error) {
	p.errs <- err
}

func (p Progress) Close() {
	close(p.errs)
	<-p.done
}
