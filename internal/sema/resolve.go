package sema

import (
	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
	"sjavac/internal/types"
)

// mode adjusts value resolution for the replay and call-check paths.
type mode struct {
	skipOwnership bool // initialization scope need not be on the chain
	fillParameter bool // constant guard is bypassed
	final         bool // nothing may be deferred any more
}

var replayMode = mode{skipOwnership: true, final: true}

// resolveValue checks that token can be stored into a variable of type want,
// seen from scope. declaring names the variable being declared, if any.
// deferred is true when token may name a global declared later, or names
// a variable the replay has yet to settle.
func resolveValue(table *symbols.Table, scope symbols.ScopeID, want types.Kind, token, declaring string, line uint32, m mode) (val types.Value, deferred bool, err error) {
	if src := table.Lookup(scope, token); src != nil {
		return readVariable(table, scope, src, want, line, m)
	}
	if types.IsLiteral(want, token) {
		return types.Literal(want, token), false, nil
	}
	if declaring != "" && token == declaring {
		return types.Value{}, false, diag.At(line, diag.VarSelfAssign, token)
	}
	if lexer.IsIdentifier(token) && !lexer.IsReserved(token) {
		if m.final {
			return types.Value{}, false, diag.At(line, diag.VarUnknownSymbol, token)
		}
		return types.Value{}, true, nil
	}
	return types.Value{}, false, diag.At(line, diag.VarBadValue, token, want.String())
}

// readVariable reads src as a value of type want from scope. A provisional
// src defers the reader until the replay has settled it.
func readVariable(table *symbols.Table, scope symbols.ScopeID, src *symbols.Variable, want types.Kind, line uint32, m mode) (val types.Value, deferred bool, err error) {
	if !src.Initialized {
		return types.Value{}, false, diag.At(line, diag.VarNotInitializedHere, src.Name)
	}
	if !m.skipOwnership && !table.Scopes.OnChain(scope, src.InitScope) {
		return types.Value{}, false, diag.At(line, diag.VarNotInitializedHere, src.Name)
	}
	if !types.CanAssign(want, src.Type) {
		return types.Value{}, false, diag.At(line, diag.VarIllegalCast, src.Type.Upper(), want.Upper())
	}
	if src.Provisional {
		if m.final {
			return types.Value{}, false, diag.At(line, diag.VarNotInitializedHere, src.Name)
		}
		return types.Value{}, true, nil
	}
	return src.Value.Convert(want), false, nil
}

// waitingOn returns the provisional variable token names from scope, if any.
func waitingOn(table *symbols.Table, scope symbols.ScopeID, token string) *symbols.Variable {
	if v := table.Lookup(scope, token); v != nil && v.Provisional {
		return v
	}
	return nil
}

// setValue assigns token to target from origin. The first initialization
// scope is kept.
func setValue(table *symbols.Table, target *symbols.Variable, token string, origin symbols.ScopeID, line uint32, m mode) (deferred bool, err error) {
	if target.Const && !m.fillParameter {
		return false, diag.At(line, diag.VarFinalAssign, target.Name)
	}
	val, deferred, err := resolveValue(table, origin, target.Type, token, "", line, m)
	if err != nil {
		return false, err
	}
	target.MarkInitialized(origin)
	target.Provisional = deferred
	if !deferred {
		target.Value = val
	}
	return deferred, nil
}
