package testkit

import (
	"errors"
	"fmt"

	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
)

// CheckScopeInvariants validates a table produced by a successful check:
//  1. structural invariants of the arena (symbols.Table.Validate)
//  2. every method body ends with `return;`
//  3. every variable holding a value is initialized, and its init scope exists
//  4. no variable or argument is left provisional
func CheckScopeInvariants(table *symbols.Table) error {
	if table == nil {
		return fmt.Errorf("nil table")
	}
	var errs []error
	if err := table.Validate(); err != nil {
		errs = append(errs, err)
	}

	for _, m := range table.Methods() {
		sc := table.Scopes.Get(m.Scope)
		if sc == nil {
			continue
		}
		if !lastIsReturn(sc.Body) {
			errs = append(errs, fmt.Errorf("method %s does not end with return", m.Name))
		}
	}

	for i, sc := range table.Scopes.Data() {
		for name, v := range sc.Variables {
			if v.Value.Set && !v.Initialized {
				errs = append(errs, fmt.Errorf("scope #%d: %s has a value but is not initialized", i+1, name))
			}
			if v.Initialized && table.Scopes.Get(v.InitScope) == nil {
				errs = append(errs, fmt.Errorf("scope #%d: %s initialized from unknown scope %d", i+1, name, v.InitScope))
			}
			if v.Provisional {
				errs = append(errs, fmt.Errorf("scope #%d: %s is still provisional", i+1, name))
			}
		}
		for _, arg := range sc.Arguments {
			if arg.Provisional {
				errs = append(errs, fmt.Errorf("scope #%d: argument %s is still provisional", i+1, arg.Name))
			}
		}
	}
	return errors.Join(errs...)
}

func lastIsReturn(body []lexer.Line) bool {
	for i := len(body) - 1; i >= 0; i-- {
		if body[i].Kind != lexer.LineSkip {
			return lexer.IsReturn(body[i].Text)
		}
	}
	return false
}
