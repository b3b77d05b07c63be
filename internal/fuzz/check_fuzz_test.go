package fuzztests

import (
	"context"
	"testing"
	"time"

	"sjavac/internal/driver"
)

// checkTimeout is the maximum time allowed for checking a single input.
// If checking takes longer, it indicates a potential infinite loop.
const checkTimeout = 5 * time.Second

func FuzzCheckVerdictIsStable(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		results := make(chan *driver.Batch, 2)
		go func() {
			for range 2 {
				results <- driver.CheckSource(context.Background(), "fuzz.sjava", input, driver.Options{})
			}
		}()

		var verdicts []driver.Report
		for len(verdicts) < 2 {
			select {
			case b := <-results:
				verdicts = append(verdicts, b.Reports[0])
			case <-ctx.Done():
				t.Fatalf("checker hang detected: checking took longer than %v\ninput (%d bytes): %q",
					checkTimeout, len(input), truncateForLog(input, 200))
			}
		}

		first, second := verdicts[0], verdicts[1]
		if first.Outcome == driver.IOError {
			t.Fatalf("in-memory source reported as unreadable: %v", first.Err)
		}
		if first.Outcome != second.Outcome {
			t.Fatalf("verdict changed between runs: %v then %v", first.Outcome, second.Outcome)
		}
		if first.Outcome == driver.Illegal {
			if first.Diagnostic == nil || second.Diagnostic == nil {
				t.Fatal("illegal verdict without a diagnostic")
			}
			if first.Diagnostic.Code != second.Diagnostic.Code {
				t.Fatalf("diagnostic changed between runs: %v then %v",
					first.Diagnostic.Code.ID(), second.Diagnostic.Code.ID())
			}
		}
	})
}
