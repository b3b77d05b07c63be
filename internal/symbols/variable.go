package symbols

import "sjavac/internal/types"

// Variable is a declared variable or method argument.
type Variable struct {
	Name        string
	Type        types.Kind
	Value       types.Value
	Const       bool
	Argument    bool
	Initialized bool
	Provisional bool // initialized from a reference the replay has not settled yet
	Scope       ScopeID // declaring scope
	InitScope   ScopeID // scope of the first initialization, NoScopeID if none
	Line        uint32
}

// MarkInitialized flags v as initialized from scope and remembers the first such scope.
func (v *Variable) MarkInitialized(scope ScopeID) {
	v.Initialized = true
	if !v.InitScope.IsValid() {
		v.InitScope = scope
	}
}

func (v *Variable) String() string {
	prefix := ""
	if v.Const {
		prefix = "final "
	}
	return prefix + v.Type.String() + " " + v.Name
}
