package lexer

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// LineKind is the structural role of one physical line.
type LineKind uint8

const (
	LineSkip      LineKind = iota // comment or blank
	LineStatement                 // ends with ';'
	LineOpen                      // ends with '{'
	LineClose                     // exactly '}'
	LineInvalid
)

func (k LineKind) String() string {
	switch k {
	case LineSkip:
		return "skip"
	case LineStatement:
		return "statement"
	case LineOpen:
		return "open"
	case LineClose:
		return "close"
	default:
		return "invalid"
	}
}

// Line is a classified source line. No is the 1-based physical line number;
// pieces split out of one physical line share it.
type Line struct {
	No   uint32
	Text string
	Kind LineKind
}

// IsComment reports whether text is a line comment. Only '//' at column 0 counts.
func IsComment(text string) bool {
	return strings.HasPrefix(text, "//")
}

// Classify assigns a LineKind to text.
func Classify(no uint32, text string) Line {
	ln := Line{No: no, Text: text}
	trimmed := strings.TrimSpace(text)
	switch {
	case IsComment(text) || trimmed == "":
		ln.Kind = LineSkip
	case trimmed == "}":
		ln.Kind = LineClose
	case strings.HasSuffix(trimmed, "{"):
		ln.Kind = LineOpen
	case strings.HasSuffix(trimmed, ";"):
		ln.Kind = LineStatement
	default:
		ln.Kind = LineInvalid
	}
	return ln
}

// Split classifies every line of a program. A line that carries a whole block
// (`void f() { return; }`) is broken into its head, statements and closer.
func Split(lines []string) []Line {
	out := make([]Line, 0, len(lines))
	for i, text := range lines {
		no, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("line number overflow: %w", err))
		}
		if IsComment(text) {
			out = append(out, Line{No: no, Text: text, Kind: LineSkip})
			continue
		}
		pieces := splitInline(text)
		if len(pieces) <= 1 {
			out = append(out, Classify(no, text))
			continue
		}
		for _, p := range pieces {
			out = append(out, Classify(no, p))
		}
	}
	return out
}

// splitInline breaks text at ';', '{' and '}' outside quotes, but only when a
// brace appears somewhere other than the end of the line.
func splitInline(text string) []string {
	trimmed := strings.TrimSpace(text)
	if !hasInnerBrace(trimmed) {
		return nil
	}

	var pieces []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			pieces = append(pieces, s)
		}
		cur.Reset()
	}
	var quote rune
	for _, r := range trimmed {
		if quote != 0 {
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
			cur.WriteRune(r)
		case ';', '{':
			cur.WriteRune(r)
			flush()
		case '}':
			flush()
			pieces = append(pieces, "}")
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return pieces
}

func hasInnerBrace(trimmed string) bool {
	if trimmed == "}" {
		return false
	}
	var quote rune
	last := len(trimmed) - 1
	for i, r := range trimmed {
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '}':
			return true
		case '{':
			if i != last {
				return true
			}
		}
	}
	return false
}
