package reporter

import "sync"

// Aggregator tracks cumulative frame position across segments and files
// within a single run, so a Reporter can surface one run-wide frame
// counter alongside per-segment stage bars (§9 Design Notes, "Per-file
// progress coupling"). The pipeline (C4) and driver (C8) feed it ticks;
// it never decides what to print, only what position to report.
type Aggregator struct {
	mu sync.Mutex

	runTotal    uint64
	runPosition uint64

	fileBase uint64 // run position at the start of the current file
}

// NewAggregator creates an aggregator for a run whose total frame count
// (summed across every file to be processed) is runTotal.
func NewAggregator(runTotal uint64) *Aggregator {
	return &Aggregator{runTotal: runTotal}
}

// StartFile records that the current file begins at cumulativeFrames
// frames into the run (the sum of frame counts of files already
// completed, plus any frames of the current file already done).
func (a *Aggregator) StartFile(cumulativeFrames uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fileBase = cumulativeFrames
	a.runPosition = cumulativeFrames
}

// Tick advances the run position to fileBase+framesIntoFile and returns
// the resulting run-wide FrameProgress.
func (a *Aggregator) Tick(framesIntoFile uint64) FrameProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runPosition = a.fileBase + framesIntoFile
	return FrameProgress{Position: a.runPosition, Total: a.runTotal}
}

// Position returns the current run-wide frame position without advancing it.
func (a *Aggregator) Position() FrameProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return FrameProgress{Position: a.runPosition, Total: a.runTotal}
}
