package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"sjavac/internal/diagfmt"
	"sjavac/internal/driver"
	"sjavac/internal/observ"
	"sjavac/internal/version"
)

type formatter func(w io.Writer, b *driver.Batch, s checkSettings, timer *observ.Timer, args []string) error

var formatters = map[string]formatter{
	"pretty": renderPretty,
	"short":  renderShort,
	"json":   renderJSON,
	"yaml":   renderYAML,
	"sarif":  renderSarif,
}

func renderBatch(w io.Writer, b *driver.Batch, s checkSettings, timer *observ.Timer, args []string) error {
	f, ok := formatters[s.config.Check.Format]
	if !ok {
		return fmt.Errorf("unknown format %q", s.config.Check.Format)
	}
	return f(w, b, s, timer, args)
}

func pathMode(s checkSettings) diagfmt.PathMode {
	mode, ok := diagfmt.ParsePathMode(s.pathMode)
	if !ok {
		return diagfmt.PathModeRelative
	}
	return mode
}

func renderPretty(w io.Writer, b *driver.Batch, s checkSettings, _ *observ.Timer, _ []string) error {
	bag := b.Bag(s.config.Check.MaxDiagnostics)
	diagfmt.Pretty(w, bag, b.FileSet, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		Context:   s.context,
		PathMode:  pathMode(s),
		ShowNotes: s.withNotes,
	})
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more %s not shown (--max-diagnostics)\n", n, plural(n, "diagnostic"))
	}
	if s.quiet {
		return nil
	}
	if bag.Len() > 0 {
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintln(w, summaryLine(b))
	return err
}

// summaryLine renders "checked N files: a legal, b illegal, c unreadable".
func summaryLine(b *driver.Batch) string {
	counts := b.Counts()
	legal := color.New(color.FgGreen).Sprintf("%d legal", counts[driver.Legal])
	illegal := fmt.Sprintf("%d illegal", counts[driver.Illegal])
	if counts[driver.Illegal] > 0 {
		illegal = color.New(color.FgRed, color.Bold).Sprint(illegal)
	}
	line := fmt.Sprintf("checked %d %s: %s, %s", len(b.Reports), plural(len(b.Reports), "file"), legal, illegal)
	if n := counts[driver.IOError]; n > 0 {
		line += ", " + color.New(color.FgYellow, color.Bold).Sprintf("%d unreadable", n)
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func renderShort(w io.Writer, b *driver.Batch, s checkSettings, _ *observ.Timer, _ []string) error {
	return diagfmt.Short(w, b.Bag(s.config.Check.MaxDiagnostics), b.FileSet, diagfmt.ShortOpts{
		PathMode:     pathMode(s),
		IncludeNotes: s.withNotes,
	})
}

func machineOutput(b *driver.Batch, s checkSettings, timer *observ.Timer) diagfmt.DiagnosticsOutput {
	out := diagfmt.BuildDiagnosticsOutput(b.Bag(0), b.FileSet, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode(s),
		Max:              s.config.Check.MaxDiagnostics,
		IncludeNotes:     s.withNotes,
	})
	out.RunID = b.RunID
	out.Outcome = b.Outcome.String()
	out.Files = make([]diagfmt.FileResultJSON, 0, len(b.Reports))
	for _, r := range b.Reports {
		fr := diagfmt.FileResultJSON{
			Path:    r.Path,
			Outcome: r.Outcome.String(),
			Code:    int(r.Outcome),
			Cached:  r.Cached,
		}
		if r.Outcome != driver.IOError {
			fr.Hash = r.Hash.Hex()
		}
		out.Files = append(out.Files, fr)
	}
	if timer != nil {
		out.Timings = timer.Report()
	}
	return out
}

func renderJSON(w io.Writer, b *driver.Batch, s checkSettings, timer *observ.Timer, _ []string) error {
	return diagfmt.WriteJSON(w, machineOutput(b, s, timer))
}

func renderYAML(w io.Writer, b *driver.Batch, s checkSettings, timer *observ.Timer, _ []string) error {
	return diagfmt.WriteYAML(w, machineOutput(b, s, timer))
}

func renderSarif(w io.Writer, b *driver.Batch, s checkSettings, _ *observ.Timer, args []string) error {
	return diagfmt.Sarif(w, b.Bag(s.config.Check.MaxDiagnostics), b.FileSet, diagfmt.SarifRunMeta{
		ToolName:       "sjavac",
		ToolVersion:    version.Version,
		InvocationArgs: args,
		RunID:          b.RunID,
	})
}
