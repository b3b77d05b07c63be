package sema

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"sjavac/internal/diag"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
)

func lines(src string) []string { return strings.Split(src, "\n") }

// Программы без ссылок вперёд не должны ничего откладывать.
func TestScanWithoutForwardReferencesDefersNothing(t *testing.T) {
	src := "int a = 1;\nvoid f(int n) {\ndouble d = a;\nif (n) {\nd = n;\n}\nreturn;\n}\nvoid g() {\nf(a);\nreturn;\n}"
	s := NewSession()
	q, err := s.Scan(context.Background(), lines(src))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if q.Deferred() != 0 {
		t.Fatalf("expected no deferred references, got %+v", q)
	}
	if len(q.Calls) != 1 || q.Calls[0].Name != "f" {
		t.Fatalf("expected one recorded call to f, got %+v", q.Calls)
	}
}

func TestReplayIsSeparatePhase(t *testing.T) {
	s := NewSession()
	q, err := s.Scan(context.Background(), lines("void f() {\nint a = g;\nx = 1;\nif (c) {\n}\nreturn;\n}"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(q.Declarations) != 1 || len(q.Assignments) != 1 || len(q.Conditions) != 1 {
		t.Fatalf("unexpected queues: %+v", q)
	}
	if v := q.Declarations[0].Var; v == nil || !v.Initialized || !v.Provisional {
		t.Fatal("deferred declaration must be provisionally initialized")
	}

	// глобальная область ещё не знает x: первой падает очередь присваиваний
	_, err = s.Replay(context.Background(), q)
	de, ok := diag.AsError(err)
	if !ok || de.Code != diag.VarUnknownSymbol || de.Subjects[0] != "x" {
		t.Fatalf("expected unknown x from assignment replay, got %v", err)
	}
}

func TestReplayAgainstCompletedGlobal(t *testing.T) {
	s := NewSession()
	q, err := s.Scan(context.Background(), lines("void f() {\nint a = g;\nx = 1;\nif (c) {\n}\nreturn;\n}\nint g = 2;\nint x;\nboolean c = false;"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	res, err := s.Replay(context.Background(), q)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if res.Deferred != 3 {
		t.Errorf("Deferred = %d, want 3", res.Deferred)
	}
	if a := res.Table.Scopes.Get(res.Table.Methods()[0].Scope).Variables["a"]; a.Provisional || a.Value.Raw != "2" {
		t.Errorf("a after replay = %+v", a)
	}
	x := res.Table.GlobalVariable("x")
	if !x.Initialized || x.InitScope != res.Table.Global || x.Value.Raw != "1" {
		t.Errorf("x after replay = %+v", x)
	}
}

func TestConditionScopesHangUnderMethods(t *testing.T) {
	res, err := Check(context.Background(), lines("void f(int a) {\nif (a) {\nwhile (true) {\n}\n}\nreturn;\n}"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	scopes := res.Table.Scopes
	kinds := make(map[symbols.ScopeKind]int)
	for _, sc := range scopes.Data() {
		kinds[sc.Kind]++
	}
	if kinds[symbols.ScopeGlobal] != 1 || kinds[symbols.ScopeMethod] != 1 || kinds[symbols.ScopeCondition] != 2 {
		t.Fatalf("unexpected scope kinds: %v", kinds)
	}
	m := res.Table.Method("f")
	if m == nil || m.Arity() != 1 {
		t.Fatalf("method f not registered: %+v", m)
	}
	if got := len(scopes.Get(m.Scope).Children); got != 1 {
		t.Errorf("method scope has %d children, want 1", got)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	if _, err := Check(context.Background(), lines("int a = 1;\nvoid f() {\nreturn;\n}")); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// повторное объявление в новом прогоне не должно конфликтовать
	if _, err := Check(context.Background(), lines("int a = 2;\nvoid f() {\nreturn;\n}")); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestScanEmitsTrace(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if _, err := Check(ctx, lines("void f() {\nreturn;\n}")); err != nil {
		t.Fatalf("check: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"→ scan", "• scope:method (f)", "← replay", "← calls"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q:\n%s", want, out)
		}
	}
}
