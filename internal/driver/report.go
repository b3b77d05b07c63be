package driver

import (
	"sjavac/internal/diag"
	"sjavac/internal/pipeline"
	"sjavac/internal/project"
	"sjavac/internal/source"
)

// Report is the verdict for one input file.
type Report struct {
	Outcome    Outcome
	Err        error
	Diagnostic *diag.Diagnostic
	Path       string
	File       source.FileID
	Hash       project.Digest
	Cached     bool
	Timings    pipeline.Timings
}

// Batch collects the reports of one invocation.
type Batch struct {
	RunID   string
	FileSet *source.FileSet
	Reports []Report
	Outcome Outcome
}

// Bag returns the diagnostics of all reports, sorted by position.
func (b *Batch) Bag(maxItems int) *diag.Bag {
	if maxItems <= 0 {
		maxItems = len(b.Reports)
	}
	bag := diag.NewBag(maxItems)
	for _, r := range b.Reports {
		if r.Diagnostic != nil {
			bag.Add(*r.Diagnostic)
		}
	}
	bag.Sort()
	return bag
}

// Counts reports how many files ended with each outcome.
func (b *Batch) Counts() map[Outcome]int {
	out := make(map[Outcome]int, 3)
	for _, r := range b.Reports {
		out[r.Outcome]++
	}
	return out
}

func (b *Batch) add(r Report) {
	b.Reports = append(b.Reports, r)
	b.Outcome = Worst(b.Outcome, r.Outcome)
}
