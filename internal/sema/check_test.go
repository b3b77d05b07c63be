package sema

import (
	"context"
	"strings"
	"testing"

	"sjavac/internal/diag"
	"sjavac/internal/testkit"
)

func runCheck(t *testing.T, src string) (*Result, error) {
	t.Helper()
	res, err := Check(context.Background(), strings.Split(src, "\n"))
	if err == nil {
		if ierr := testkit.CheckScopeInvariants(res.Table); ierr != nil {
			t.Fatalf("scope invariants broken:\n%v", ierr)
		}
	}
	return res, err
}

func TestLegalPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"call from another method", "void foo(int a) {\nreturn;\n}\nvoid bar() {\nfoo(5);\nreturn;\n}"},
		{"inline blocks", "void foo(int a) { return; }\nvoid bar() { foo(5); return; }"},
		{"global forward reference", "int x = y;\nint y = 5;"},
		{"chained forward references", "int x = y;\nint z = x;\nint y = 5;"},
		{"chain declared in reverse", "int z = x;\nint x = y;\nint y = 5;"},
		{"method reads pending global", "int x = y;\nvoid f() {\nint a = x;\nreturn;\n}\nint y = 1;"},
		{"pending local feeds local", "void f() {\nint a = g;\nint b = a;\nreturn;\n}\nint g = 1;"},
		{"method reads later global", "void f() {\nint a = g;\nreturn;\n}\nint g = 3;"},
		{"assignment to later global", "void f() {\nx = 5;\nreturn;\n}\nint x;"},
		{"widening", "int a = 1;\ndouble b = a;\nboolean c = b;\ndouble d = 5;\nboolean e = 7;"},
		{"literals", "char c = 'a';\nString s = \"hi, there\";\nboolean b = 0.5;\nboolean t = true;\ndouble h = .5;"},
		{"shadowing", "int a = 1;\nvoid f() {\ndouble a = 2.5;\nreturn;\n}"},
		{"argument shadows global", "int a = 1;\nvoid f(String a) {\nString b = a;\nreturn;\n}"},
		{"comments and blanks", "// header\n\nint a = 1;\n// void broken(\n"},
		{"conditions", "void f(boolean b, int n) {\nif (b || true && n) {\nint x = 1;\nwhile (x) {\nx = 2;\n}\n}\nreturn;\n}"},
		{"condition on later global", "void f() {\nwhile (g) {\n}\nreturn;\n}\nboolean g = true;"},
		{"condition on argument of other method", "void f() {\nif (n) {\n}\nreturn;\n}\nvoid h(double n) {\nreturn;\n}"},
		{"return inside condition", "void f(int a) {\nif (a) {\nreturn;\n}\nreturn;\n}"},
		{"recursive and forward calls", "void f(int n) {\nf(n);\ng();\nreturn;\n}\nvoid g() {\nreturn;\n}"},
		{"call widens argument", "void foo(double d) {\nreturn;\n}\nvoid bar() {\nint i = 3;\nfoo(i);\nreturn;\n}"},
		{"final parameter is filled", "void foo(final int a) {\nreturn;\n}\nvoid bar() {\nfoo(1);\nreturn;\n}"},
		{"call passes global shadowed below", "int k = 1;\nvoid foo(int a) {\nreturn;\n}\nvoid bar() {\nfoo(k);\nint k = 2;\nreturn;\n}"},
		{"call passes argument shadowed below", "void foo(int a) {\nreturn;\n}\nvoid bar(int k) {\nif (true) {\nfoo(k);\nint k = 2;\n}\nreturn;\n}"},
		{"call sees condition locals", "void foo(int a) {\nreturn;\n}\nvoid bar() {\nif (true) {\nint k = 1;\nfoo(k);\n}\nreturn;\n}"},
		{"multiple assignments", "int a;\ndouble b;\na = 1, b = 2.5;"},
		{"initialized in same method", "int g;\nvoid f() {\ng = 1;\nint x = g;\nreturn;\n}"},
		{"empty program", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCheck(t, tt.src); err != nil {
				t.Fatalf("expected legal program, got: %v", err)
			}
		})
	}
}

func TestIllegalPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
		line uint32
	}{
		{"local forward reference", "void f() {\nint x = y;\nint y = 5;\nreturn;\n}", diag.VarUnknownSymbol, "Cannot resolve symbol 'y'.", 2},
		{"uninitialized final", "final int x;", diag.VarUninitializedFinal, "Final x is uninitialized.", 1},
		{"missing return inline", "void f() {}", diag.MthMissingReturn, "Missing return statement in 'f' method.", 1},
		{"missing return", "void f() {\nint a;\n}", diag.MthMissingReturn, "", 1},
		{"final reassigned", "final int x = 5;\nvoid f() {\nx = 6;\nreturn;\n}", diag.VarFinalAssign, "Cannot assign a value to final variable 'x'.", 3},
		{"final reassigned by replay", "void f() {\nx = 5;\nreturn;\n}\nfinal int x = 1;", diag.VarFinalAssign, "", 2},
		{"narrowing", "double a = 1.5;\nint b = a;", diag.VarIllegalCast, "Cannot assign a DOUBLE member to a INT variable.", 2},
		{"string to char", "String s = \"x\";\nchar c = s;", diag.VarIllegalCast, "", 2},
		{"int to string", "int a = 1;\nString s = a;", diag.VarIllegalCast, "", 2},
		{"boolean to int", "boolean b = true;\nint i = b;", diag.VarIllegalCast, "", 2},
		{"bad literal", "int i = 5.0;", diag.VarBadValue, "5.0 is an invalid value for a int variable.", 1},
		{"second assignment checked", "int a;\nint b;\na = 1, b = 2.5;", diag.VarBadValue, "", 3},
		{"condition in global", "if (true) {\n}", diag.ScpConditionOutsideMethod, "Condition Scope cannot be declared from the global Scope.", 1},
		{"string condition", "void f() {\nif (s) {\n}\nreturn;\n}\nString s = \"a\";", diag.ScpInvalidCondition, "'s' is an invalid If/While condition.", 2},
		{"every condition replayed", "void f() {\nif (g) {\n}\nif (h) {\n}\nreturn;\n}\nboolean g = true;", diag.ScpInvalidCondition, "'h' is an invalid If/While condition.", 4},
		{"visible string condition", "void f(String s) {\nif (s) {\n}\nreturn;\n}", diag.ScpInvalidCondition, "", 2},
		{"uninitialized condition", "void f() {\nint a;\nif (a) {\n}\nreturn;\n}", diag.VarUninitialized, "a is uninitialized.", 3},
		{"empty condition", "void f(int a) {\nif (a || ) {\n}\nreturn;\n}", diag.ScpEmptyCondition, "", 2},
		{"missing condition", "void f() {\nwhile () {\n}\nreturn;\n}", diag.ScpMissingCondition, "", 2},
		{"garbage condition", "void f() {\nif (a-b) {\n}\nreturn;\n}", diag.ScpInvalidCondition, "", 2},
		{"unbalanced", "void f() {\nreturn;", diag.ScpUnbalancedBlocks, "Invalid brackets structure in scope 'void f()'.", 1},
		{"missing semicolon", "int a = 5", diag.ScpInvalidSyntax, "'int a = 5' has a syntax problem (missing ';' or '{').", 1},
		{"stray closer", "int a;\n}", diag.ScpInvalidSyntax, "", 2},
		{"indented comment", "  // note", diag.ScpInvalidSyntax, "", 1},
		{"invalid block", "else {\n}", diag.ScpInvalidBlock, "Invalid scope declaration.", 1},
		{"invalid command", "int a;\na + 1;", diag.ScpInvalidCommand, "'a + 1;' is an invalid command.", 2},
		{"return in global", "return;", diag.ScpInvalidCommand, "", 1},
		{"nested method", "void f() {\nvoid g() {\nreturn;\n}\nreturn;\n}", diag.MthNested, "'g' can not be declared inside another Method.", 2},
		{"non void", "int f() {\nreturn;\n}", diag.MthNonVoid, "int is not a valid Method type, only void methods are supported.", 1},
		{"method digit", "void 1f() {\nreturn;\n}", diag.MthNameDigitStart, "", 1},
		{"method underscore", "void _f() {\nreturn;\n}", diag.MthNameUnderscore, "", 1},
		{"method illegal chars", "void f-g() {\nreturn;\n}", diag.MthNameIllegalChars, "", 1},
		{"method keyword", "void while() {\nreturn;\n}", diag.MthNameKeyword, "", 1},
		{"duplicate method", "void f() {\nreturn;\n}\nvoid f(int a) {\nreturn;\n}", diag.MthDuplicate, "Method 'f' is already defined.", 4},
		{"call in global", "foo();", diag.MthCallInGlobal, "'foo();' can not be called from the global scope.", 1},
		{"unknown method", "void f() {\ng();\nreturn;\n}", diag.MthUnknown, "Cannot resolve symbol 'g'.", 2},
		{"argument initializer", "void f(int a = 5) {\nreturn;\n}", diag.VarArgumentInitializer, "a can not be initialized in a method declaration.", 1},
		{"argument bad type", "void f(foo a) {\nreturn;\n}", diag.VarBadType, "foo is an invalid Variable type.", 1},
		{"argument duplicate", "void f(int a, double a) {\nreturn;\n}", diag.VarDuplicate, "", 1},
		{"argument empty entry", "void f(int a,) {\nreturn;\n}", diag.VarBadDeclaration, "", 1},
		{"argument shape", "void f(int) {\nreturn;\n}", diag.VarBadDeclaration, "", 1},
		{"argument vs local", "void f(int a) {\nint a = 1;\nreturn;\n}", diag.VarDuplicate, "", 2},
		{"not initialized here", "int g;\nvoid a() {\ng = 5;\nreturn;\n}\nvoid b() {\nint x = g;\nreturn;\n}", diag.VarNotInitializedHere, "g is not initialized.", 7},
		{"unknown target in global", "x = 5;", diag.VarUnknownSymbol, "Cannot resolve symbol 'x'.", 1},
		{"unknown target after replay", "void f() {\nx = 5;\nreturn;\n}", diag.VarUnknownSymbol, "", 2},
		{"unknown global source", "int x = y;", diag.VarUnknownSymbol, "", 1},
		{"two globals read each other", "int x = y;\nint y = x;", diag.VarNotInitializedHere, "y is not initialized.", 1},
		{"three globals in a ring", "int x = y;\nint y = z;\nint z = x;", diag.VarNotInitializedHere, "y is not initialized.", 1},
		{"method reads a ring", "int x = y;\nint y = x;\nvoid f() {\nint a = x;\nreturn;\n}", diag.VarNotInitializedHere, "", 1},
		{"assignment from a ring", "int a;\nvoid f() {\na = x;\nreturn;\n}\nint x = y;\nint y = x;", diag.VarNotInitializedHere, "x is not initialized.", 3},
		{"variable digit", "int 1a;", diag.VarNameDigitStart, "", 1},
		{"variable underscore", "int _;", diag.VarNameUnderscore, "'_' is an invalid Variable Name, can't be only an underscore.", 1},
		{"variable illegal chars", "int a$b;", diag.VarNameIllegalChars, "", 1},
		{"variable keyword", "int while;", diag.VarNameKeyword, "", 1},
		{"variable duplicate", "int a;\ndouble a;", diag.VarDuplicate, "Variable 'a' is already defined in the scope.", 2},
		{"duplicate in one line", "int a, a;", diag.VarDuplicate, "", 1},
		{"bad type", "final foo x = 5;", diag.VarBadType, "", 1},
		{"trailing comma", "int a,;", diag.VarBadDeclaration, "'int a,;' is not a valid variable declaration.", 1},
		{"type only", "int;", diag.VarBadDeclaration, "", 1},
		{"empty entry", "int a,,b;", diag.ScpInvalidSyntax, "", 1},
		{"self assign", "int a = a;", diag.VarSelfAssign, "Variable 'a' might not have been initialized.", 1},
		{"keyword as value", "int a = true;", diag.VarBadValue, "", 1},
		{"uninitialized source", "int a;\nint b = a;", diag.VarNotInitializedHere, "", 2},
		{"call arity short", "void foo(int a, int b) {\nreturn;\n}\nvoid bar() {\nfoo(1);\nreturn;\n}", diag.MthArgCount, "Actual and formal argument lists of method 'foo' differ in length.", 5},
		{"call arity long", "void foo(int a, int b) {\nreturn;\n}\nvoid bar() {\nfoo(1, 2, 3);\nreturn;\n}", diag.MthArgCount, "", 5},
		{"call empty argument", "void foo(int a, int b) {\nreturn;\n}\nvoid bar() {\nfoo(1,);\nreturn;\n}", diag.MthArgCount, "", 5},
		{"call with args to nullary", "void foo() {\nreturn;\n}\nvoid bar() {\nfoo(1);\nreturn;\n}", diag.MthArgCount, "", 5},
		{"call argument type", "void foo(int a) {\nreturn;\n}\nvoid bar(String s) {\nfoo(s);\nreturn;\n}", diag.VarIllegalCast, "", 5},
		{"call argument declared later", "void foo(int a) {\nreturn;\n}\nvoid bar() {\nfoo(k);\nint k = 1;\nreturn;\n}", diag.VarUnknownSymbol, "", 5},
		{"call argument unknown", "void foo(int a) {\nreturn;\n}\nvoid bar() {\nfoo(k);\nreturn;\n}", diag.VarUnknownSymbol, "Cannot resolve symbol 'k'.", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCheck(t, tt.src)
			if err == nil {
				t.Fatalf("expected %s, program was accepted", tt.code.ID())
			}
			de, ok := diag.AsError(err)
			if !ok {
				t.Fatalf("expected *diag.Error, got %T: %v", err, err)
			}
			if de.Code != tt.code {
				t.Fatalf("code = %s (%v), want %s", de.Code.ID(), err, tt.code.ID())
			}
			if tt.msg != "" && err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", err.Error(), tt.msg)
			}
			if de.Line != tt.line {
				t.Errorf("line = %d, want %d", de.Line, tt.line)
			}
		})
	}
}

func TestDuplicatesPointAtFirstDeclaration(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line uint32
		prev uint32
	}{
		{"global variable", "int a;\nint b;\ndouble a;", 3, 1},
		{"method", "void f() {\nreturn;\n}\nvoid f() {\nreturn;\n}", 4, 1},
		{"local variable", "void f() {\nint x = 1;\nint x = 2;\nreturn;\n}", 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCheck(t, tt.src)
			de, ok := diag.AsError(err)
			if !ok {
				t.Fatalf("expected a checker error, got %v", err)
			}
			if de.Line != tt.line {
				t.Fatalf("line = %d, want %d", de.Line, tt.line)
			}
			if len(de.Notes) != 1 || de.Notes[0].Line != tt.prev || !strings.Contains(de.Notes[0].Msg, "was declared here") {
				t.Fatalf("notes = %+v, want one pointing at line %d", de.Notes, tt.prev)
			}
		})
	}

	// в одной строке заметка не нужна
	_, err := runCheck(t, "int a, a;")
	if de, ok := diag.AsError(err); !ok || len(de.Notes) != 0 {
		t.Fatalf("same-line duplicate: %v", err)
	}
}
