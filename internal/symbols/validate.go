package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Validate walks the arena checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error
	globals := 0

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]

		switch scope.Kind {
		case ScopeGlobal:
			globals++
			if scope.Parent.IsValid() {
				errs = append(errs, fmt.Errorf("global scope %d has parent %d", scopeID, scope.Parent))
			}
		case ScopeMethod:
			if scope.Parent != t.Global {
				errs = append(errs, fmt.Errorf("method scope %d (%s) is not a child of global", scopeID, scope.Name))
			}
		case ScopeCondition:
			if n := t.methodsOnChain(scopeID); n != 1 {
				errs = append(errs, fmt.Errorf("condition scope %d passes through %d methods", scopeID, n))
			}
		default:
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}

		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
			} else if !slices.Contains(t.Scopes.data[scope.Parent].Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || child == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}

		errs = append(errs, checkBindings(scopeID, scope)...)
	}

	if globals != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one global scope, found %d", globals))
	}

	for _, m := range t.order {
		sc := t.Scopes.Get(m.Scope)
		if sc == nil || sc.Kind != ScopeMethod {
			errs = append(errs, fmt.Errorf("method %s points to non-method scope %d", m.Name, m.Scope))
			continue
		}
		if len(m.Args) != len(sc.Arguments) {
			errs = append(errs, fmt.Errorf("method %s has %d args but scope holds %d", m.Name, len(m.Args), len(sc.Arguments)))
		}
	}

	return errors.Join(errs...)
}

func checkBindings(scopeID ScopeID, scope *Scope) []error {
	var errs []error
	seen := make(map[string]bool, len(scope.Arguments))
	for _, arg := range scope.Arguments {
		if seen[arg.Name] {
			errs = append(errs, fmt.Errorf("scope %d binds argument %q twice", scopeID, arg.Name))
		}
		seen[arg.Name] = true
		if !arg.Argument || !arg.Initialized || arg.InitScope != scopeID {
			errs = append(errs, fmt.Errorf("argument %q of scope %d is not initialized by its method", arg.Name, scopeID))
		}
	}
	for name, v := range scope.Variables {
		if seen[name] {
			errs = append(errs, fmt.Errorf("scope %d binds %q as both argument and variable", scopeID, name))
		}
		if v.Name != name || v.Scope != scopeID {
			errs = append(errs, fmt.Errorf("variable %q is filed under scope %d but claims scope %d", name, scopeID, v.Scope))
		}
		if v.Const && !v.Initialized {
			errs = append(errs, fmt.Errorf("constant %q in scope %d is not initialized", name, scopeID))
		}
	}
	return errs
}

func (t *Table) methodsOnChain(id ScopeID) int {
	n := 0
	chain := t.Scopes.Chain(id)
	for _, cur := range chain {
		if t.Scopes.Get(cur).Kind == ScopeMethod {
			n++
		}
	}
	if len(chain) == 0 || chain[len(chain)-1] != t.Global {
		return -1
	}
	return n
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}
