package lexer

import (
	"regexp"
	"strings"
)

var (
	conditionHead = regexp.MustCompile(`^(if|while)\s*\((.*)\)$`)
	methodHead    = regexp.MustCompile(`^(\S+)\s+([^\s(]+)\s*\((.*)\)$`)
	callStmt      = regexp.MustCompile(`^(\w+)\s*\((.*)\)$`)
	assignEntry   = regexp.MustCompile(`^([^=\s]+)\s*=\s*(.*)$`)
	identifier    = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	wordChars     = regexp.MustCompile(`^\w+$`)
	condSplit     = regexp.MustCompile(`\|\||&&`)
	returnLine    = regexp.MustCompile(`^\s*return\s*;\s*$`)
)

var reserved = map[string]struct{}{
	"int": {}, "double": {}, "String": {}, "char": {}, "boolean": {},
	"final": {}, "if": {}, "while": {}, "true": {}, "false": {},
	"void": {}, "return": {},
}

// IsReserved reports whether name is a keyword of the language.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// IsIdentifier reports whether s has identifier shape.
func IsIdentifier(s string) bool {
	return identifier.MatchString(s)
}

// HasOnlyWordChars reports whether s consists of letters, digits and '_' only.
func HasOnlyWordChars(s string) bool {
	return wordChars.MatchString(s)
}

// IsReturn reports whether a raw line is exactly a `return;` statement.
func IsReturn(text string) bool {
	return returnLine.MatchString(text)
}

// Head strips the trailing '{' of a block opener.
func Head(text string) string {
	h := strings.TrimSpace(text)
	h = strings.TrimSuffix(h, "{")
	return strings.TrimSpace(h)
}

// Statement strips the trailing ';' of a statement line.
func Statement(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

// FirstWord returns the first whitespace-separated word of s.
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ParseCondition matches an `if (...)` or `while (...)` head and returns the trimmed condition.
func ParseCondition(head string) (string, bool) {
	m := conditionHead.FindStringSubmatch(head)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

// MethodHead is a parsed `type name(args)` opener.
type MethodHead struct {
	Type string
	Name string
	Args string
}

// ParseMethodHead matches a method declaration head.
func ParseMethodHead(head string) (MethodHead, bool) {
	m := methodHead.FindStringSubmatch(head)
	if m == nil {
		return MethodHead{}, false
	}
	return MethodHead{Type: m[1], Name: m[2], Args: strings.TrimSpace(m[3])}, true
}

// ParseCall matches `name(args)` in a statement without its ';'.
func ParseCall(stmt string) (name, args string, ok bool) {
	m := callStmt.FindStringSubmatch(stmt)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// ParseAssignment splits `target = source`. The target must be an identifier
// and the source non-empty.
func ParseAssignment(entry string) (target, src string, ok bool) {
	m := assignEntry.FindStringSubmatch(strings.TrimSpace(entry))
	if m == nil {
		return "", "", false
	}
	target, src = m[1], strings.TrimSpace(m[2])
	if !IsIdentifier(target) || src == "" {
		return "", "", false
	}
	return target, src, true
}

// Declarator is one `name` or `name = init` entry of a declaration list.
type Declarator struct {
	Name    string
	Init    string
	HasInit bool
}

// ParseDeclarator splits one declaration entry. The name must be a single token.
func ParseDeclarator(entry string) (Declarator, bool) {
	entry = strings.TrimSpace(entry)
	name, init, hasInit := strings.Cut(entry, "=")
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return Declarator{}, false
	}
	d := Declarator{Name: name}
	if hasInit {
		d.Init = strings.TrimSpace(init)
		d.HasInit = true
		if d.Init == "" {
			return Declarator{}, false
		}
	}
	return d, true
}

// SplitList splits s on commas outside quotes and trims every entry.
// Empty entries are kept so callers can reject them.
func SplitList(s string) []string {
	var out []string
	var cur strings.Builder
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ',':
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(out, strings.TrimSpace(cur.String()))
}

// SplitCondition splits a condition on `||` and `&&`, trimming each part.
func SplitCondition(cond string) []string {
	parts := condSplit.Split(cond, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
