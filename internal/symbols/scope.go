package symbols

import "sjavac/internal/lexer"

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid   ScopeKind = iota
	ScopeGlobal              // program body, exactly one per run
	ScopeMethod              // method body, child of global
	ScopeCondition           // if/while body inside a method
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeMethod:
		return "method"
	case ScopeCondition:
		return "condition"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
// Names are unique across Arguments and Variables of one scope.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Children  []ScopeID
	Name      string // method name, condition head, or "global"
	Line      uint32 // line of the opener, 0 for global
	Variables map[string]*Variable
	Arguments []*Variable
	Body      []lexer.Line
}

// Local finds name among this scope's own arguments, then variables.
func (s *Scope) Local(name string) *Variable {
	for _, arg := range s.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	return s.Variables[name]
}

// Has reports whether name is already bound in this scope.
func (s *Scope) Has(name string) bool {
	return s.Local(name) != nil
}
