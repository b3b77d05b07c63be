package symbols

import (
	"strings"
	"testing"

	"sjavac/internal/types"
)

func TestTableScopeTree(t *testing.T) {
	table := NewTable(Hints{})
	if !table.Global.IsValid() {
		t.Fatalf("expected valid global scope")
	}

	method := table.Scopes.New(ScopeMethod, table.Global, "foo", 3)
	cond := table.Scopes.New(ScopeCondition, method, "if (a)", 4)

	if got := table.Scopes.Chain(cond); len(got) != 3 || got[0] != cond || got[2] != table.Global {
		t.Fatalf("Chain(cond) = %v", got)
	}
	if table.Scopes.EnclosingMethod(cond) != method {
		t.Errorf("EnclosingMethod(cond) = %d, want %d", table.Scopes.EnclosingMethod(cond), method)
	}
	if table.Scopes.EnclosingMethod(table.Global).IsValid() {
		t.Error("global has no enclosing method")
	}
	if !table.Scopes.OnChain(cond, method) || table.Scopes.OnChain(method, cond) {
		t.Error("OnChain must follow parent links only")
	}

	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableLookupShadowing(t *testing.T) {
	table := NewTable(Hints{})
	method := table.Scopes.New(ScopeMethod, table.Global, "foo", 1)

	outer := &Variable{Name: "a", Type: types.KindInt}
	if !table.Declare(table.Global, outer) {
		t.Fatal("declare global a")
	}
	arg := &Variable{Name: "a", Type: types.KindDouble}
	if !table.DeclareArgument(method, arg) {
		t.Fatal("argument may shadow a global")
	}
	// имя уникально в пределах одной области: аргумент и переменная конфликтуют
	if table.Declare(method, &Variable{Name: "a", Type: types.KindInt}) {
		t.Fatal("variable must not reuse an argument name in the same scope")
	}

	if got := table.Lookup(method, "a"); got != arg {
		t.Errorf("Lookup from method found %v, want argument", got)
	}
	if got := table.Lookup(table.Global, "a"); got != outer {
		t.Errorf("Lookup from global found %v, want global", got)
	}
	if !arg.Initialized || arg.InitScope != method {
		t.Errorf("argument init state = %v/%d", arg.Initialized, arg.InitScope)
	}
}

func TestValidateDetectsBrokenTree(t *testing.T) {
	table := NewTable(Hints{})
	method := table.Scopes.New(ScopeMethod, table.Global, "foo", 1)
	// условие прямо под global нарушает инвариант
	table.Scopes.New(ScopeCondition, table.Global, "if (true)", 2)
	table.Scopes.Get(method).Variables["x"] = &Variable{Name: "x", Const: true, Scope: method}

	err := table.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"passes through 0 methods", "constant \"x\""} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestMethodsRegistry(t *testing.T) {
	table := NewTable(Hints{})
	s1 := table.Scopes.New(ScopeMethod, table.Global, "a", 1)
	s2 := table.Scopes.New(ScopeMethod, table.Global, "b", 5)
	arg := &Variable{Name: "n", Type: types.KindInt}
	table.DeclareArgument(s2, arg)

	if !table.AddMethod(&Method{Name: "a", Scope: s1}) || !table.AddMethod(&Method{Name: "b", Scope: s2, Args: []*Variable{arg}}) {
		t.Fatal("AddMethod failed")
	}
	if table.AddMethod(&Method{Name: "a", Scope: s2}) {
		t.Fatal("duplicate method accepted")
	}
	if got := table.Methods(); len(got) != 2 || got[0].Name != "a" {
		t.Errorf("Methods() order = %v", got)
	}
	if got := table.ArgumentsNamed("n"); len(got) != 1 || got[0] != arg {
		t.Errorf("ArgumentsNamed(n) = %v", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLookupAtSkipsLaterLocals(t *testing.T) {
	table := NewTable(Hints{})
	method := table.Scopes.New(ScopeMethod, table.Global, "bar", 2)
	cond := table.Scopes.New(ScopeCondition, method, "if (true)", 3)

	global := &Variable{Name: "k", Type: types.KindInt, Line: 1}
	table.Declare(table.Global, global)
	arg := &Variable{Name: "n", Type: types.KindInt, Line: 2}
	table.DeclareArgument(method, arg)
	later := &Variable{Name: "k", Type: types.KindInt, Line: 5}
	table.Declare(cond, later)
	shadow := &Variable{Name: "n", Type: types.KindInt, Line: 6}
	table.Declare(cond, shadow)

	tests := []struct {
		name string
		line uint32
		want *Variable
	}{
		{"k", 4, global},
		{"k", 5, later},
		{"n", 4, arg},
		{"n", 7, shadow},
		{"m", 9, nil},
	}
	for _, tt := range tests {
		if got := table.LookupAt(cond, tt.name, tt.line); got != tt.want {
			t.Errorf("LookupAt(%s, %d) = %v, want %v", tt.name, tt.line, got, tt.want)
		}
	}
}
