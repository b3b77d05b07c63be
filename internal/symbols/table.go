package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes uint }

// Table aggregates the scope arena and the program-wide method registry.
type Table struct {
	Scopes  *Scopes
	Global  ScopeID
	methods map[string]*Method
	order   []*Method
}

// NewTable builds a table holding a fresh global scope.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		methods: make(map[string]*Method),
	}
	t.Global = t.Scopes.New(ScopeGlobal, NoScopeID, "global", 0)
	return t
}

// Declare binds v in scope as a variable. It returns false on a name clash.
func (t *Table) Declare(scope ScopeID, v *Variable) bool {
	sc := t.Scopes.Get(scope)
	if sc == nil || sc.Has(v.Name) {
		return false
	}
	v.Scope = scope
	sc.Variables[v.Name] = v
	return true
}

// DeclareArgument appends v to the ordered argument list of a method scope.
func (t *Table) DeclareArgument(scope ScopeID, v *Variable) bool {
	sc := t.Scopes.Get(scope)
	if sc == nil || sc.Has(v.Name) {
		return false
	}
	v.Scope = scope
	v.Argument = true
	v.MarkInitialized(scope)
	sc.Arguments = append(sc.Arguments, v)
	return true
}

// Lookup walks the chain from scope outward and returns the innermost binding of name.
func (t *Table) Lookup(scope ScopeID, name string) *Variable {
	for _, id := range t.Scopes.Chain(scope) {
		if v := t.Scopes.Get(id).Local(name); v != nil {
			return v
		}
	}
	return nil
}

// LookupAt is Lookup as seen from line: a local declared below line is
// skipped in favour of an outer binding. Globals and arguments are visible
// from every line.
func (t *Table) LookupAt(scope ScopeID, name string, line uint32) *Variable {
	for _, id := range t.Scopes.Chain(scope) {
		v := t.Scopes.Get(id).Local(name)
		if v != nil && (id == t.Global || v.Argument || v.Line <= line) {
			return v
		}
	}
	return nil
}

// GlobalVariable returns a variable declared directly in the global scope.
func (t *Table) GlobalVariable(name string) *Variable {
	return t.Scopes.Get(t.Global).Variables[name]
}

// AddMethod registers m. It returns false when the name is taken.
func (t *Table) AddMethod(m *Method) bool {
	if _, ok := t.methods[m.Name]; ok {
		return false
	}
	t.methods[m.Name] = m
	t.order = append(t.order, m)
	return true
}

// Method returns a registered method or nil.
func (t *Table) Method(name string) *Method {
	return t.methods[name]
}

// Methods lists methods in declaration order.
func (t *Table) Methods() []*Method {
	return t.order
}

// ArgumentsNamed returns every method argument called name, across all methods.
func (t *Table) ArgumentsNamed(name string) []*Variable {
	var out []*Variable
	for _, m := range t.order {
		for _, arg := range m.Args {
			if arg.Name == name {
				out = append(out, arg)
			}
		}
	}
	return out
}
