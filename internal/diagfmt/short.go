package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"sjavac/internal/diag"
	"sjavac/internal/source"
)

// Short prints one line per diagnostic, "severity CODE path:line:col message",
// each followed by its notes in the same shape when requested.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	bw := bufio.NewWriter(w)
	for _, d := range bag.Items() {
		writeShort(bw, fs, opts.PathMode, d.Severity.Label(), d.Code, d.Primary, d.Message)
		if !opts.IncludeNotes {
			continue
		}
		for _, n := range d.Notes {
			writeShort(bw, fs, opts.PathMode, "note", d.Code, n.Span, n.Msg)
		}
	}
	return bw.Flush()
}

func writeShort(w io.Writer, fs *source.FileSet, mode PathMode, sev string, code diag.Code, sp source.Span, msg string) {
	if int(sp.File) >= fs.Len() {
		return
	}
	start, _ := fs.Resolve(sp)
	path := formatPath(fs, fs.Get(sp.File), mode)
	fmt.Fprintf(w, "%s %s %s:%d:%d %s\n", sev, code.ID(), path, start.Line, start.Col, oneLine(msg))
}

// oneLine folds line breaks so every record stays on a single line.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
