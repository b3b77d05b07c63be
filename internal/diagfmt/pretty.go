package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sjavac/internal/diag"
	"sjavac/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", formatPath(fs, f, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, p, fs, d.Primary, opts.Context)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n",
				p.note.Sprint("note:"),
				p.path.Sprintf("%s:%d:%d", formatPath(fs, nf, opts.PathMode), ns.Line, ns.Col),
				n.Msg,
			)
		}
	}
}

// writeSnippet prints context lines and a caret row under span.
// Files without content (unreadable inputs) print nothing.
func writeSnippet(w io.Writer, p palette, fs *source.FileSet, span source.Span, context int8) {
	f := fs.Get(span.File)
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	first := start.Line
	if context > 0 {
		if back := uint32(context); back < first {
			first -= back
		} else {
			first = 1
		}
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		text := strings.TrimRight(f.GetLine(ln), "\r")
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), expandTabs(text))
	}

	line := f.GetLine(start.Line)
	lead := runewidth.StringWidth(expandTabs(prefixCols(line, start.Col)))
	span0 := 1
	if end.Line == start.Line && end.Col > start.Col {
		span0 = runewidth.StringWidth(expandTabs(sliceCols(line, start.Col, end.Col)))
	}
	if span0 < 1 {
		span0 = 1
	}
	underline := "^" + strings.Repeat("~", span0-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", lead), p.caret.Sprint(underline))
}

// prefixCols returns the bytes of line before the 1-based byte column col.
func prefixCols(line string, col uint32) string {
	if col <= 1 {
		return ""
	}
	if n := int(col - 1); n < len(line) {
		return line[:n]
	}
	return line
}

func sliceCols(line string, from, to uint32) string {
	lo, hi := int(from)-1, int(to)-1
	if lo < 0 {
		lo = 0
	}
	if hi > len(line) {
		hi = len(line)
	}
	if lo >= hi {
		return ""
	}
	return line[lo:hi]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
