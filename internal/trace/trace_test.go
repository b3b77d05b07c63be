package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseNames(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(name)
		if err != nil || l.String() != name {
			t.Errorf("ParseLevel(%q) = %v, %v", name, l, err)
		}
	}
	if l, err := ParseLevel(""); err != nil || l != LevelOff {
		t.Errorf("ParseLevel(\"\") = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted an unknown level")
	}
	if m, err := ParseMode(" Both "); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(both) = %v, %v", m, err)
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Error("ParseMode accepted an unknown mode")
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if FormatFor("run.jsonl") != FormatNDJSON || FormatFor("run.log") != FormatText {
		t.Error("FormatFor ignores the extension")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelDetail, FormatNDJSON))

	span, _ := Begin(WithFile(ctx, "a.sjava"), ScopePass, "scan")
	span.Point(ScopeNode, "scope:global", "") // отфильтруется уровнем
	span.WithExtra("scopes", "3").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", len(lines), buf.String())
	}
	var end jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if end.Kind != "end" || end.Name != "scan" || end.Detail != "ok" || end.Extra["scopes"] != "3" {
		t.Errorf("unexpected end event: %+v", end)
	}
	if end.File != "a.sjava" {
		t.Errorf("file = %q, want a.sjava", end.File)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	span, _ := Begin(WithTracer(context.Background(), r), ScopeDriver, "check")
	for _, name := range []string{"a", "b", "c"} {
		span.Point(ScopeNode, name, "")
	}
	// begin + 3 точки в кольце на 2 события
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap[0].Seq >= snap[1].Seq {
		t.Errorf("snapshot out of order: %d then %d", snap[0].Seq, snap[1].Seq)
	}
	if r.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", r.Dropped())
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "• c") {
		t.Errorf("text dump missing event: %q", buf.String())
	}
}

func TestBeginNestsUnderContextSpan(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	r := NewRingTracer(8, LevelDetail)
	ctx := WithTracer(context.Background(), r)

	outer, ctx := Begin(ctx, ScopeDriver, "check")
	if ParentSpan(ctx) != outer.ID() || outer.ID() == 0 {
		t.Fatalf("ParentSpan = %d, want %d", ParentSpan(ctx), outer.ID())
	}
	inner, innerCtx := Begin(WithFile(ctx, "b.sjava"), ScopeModule, "check-file")
	inner.End("")
	outer.End("")

	// отфильтрованный уровнем спан не меняет родителя
	hidden, hiddenCtx := Begin(innerCtx, ScopeNode, "scope")
	if hidden.ID() != 0 || ParentSpan(hiddenCtx) != inner.ID() {
		t.Fatalf("filtered span leaked into context: id=%d parent=%d", hidden.ID(), ParentSpan(hiddenCtx))
	}
	hidden.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 events, got %d", len(snap))
	}
	if snap[1].ParentID != outer.ID() || snap[1].File != "b.sjava" {
		t.Errorf("inner begin = %+v", snap[1])
	}
	if snap[0].File != "" {
		t.Errorf("run-level event carries file %q", snap[0].File)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || Enabled(tr) {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	span, _ := Begin(WithTracer(context.Background(), tr), ScopeDriver, "check")
	if d := span.WithExtra("k", "v").End(""); d != 0 {
		t.Errorf("inert span reported duration %v", d)
	}
}

func TestNewBothKeepsRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok || multi.Ring() == nil {
		t.Fatalf("New(both) = %T", tr)
	}
	span, _ := Begin(WithTracer(context.Background(), tr), ScopePass, "scan")
	span.End("ok")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "← scan (ok)") || len(multi.Ring().Snapshot()) != 2 {
		t.Errorf("stream=%q ring=%d", buf.String(), len(multi.Ring().Snapshot()))
	}
}

func TestHeartbeatStops(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	stop := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	n := len(r.Snapshot())
	if n == 0 {
		t.Fatal("no heartbeat recorded")
	}
	time.Sleep(5 * time.Millisecond)
	if len(r.Snapshot()) != n {
		t.Error("heartbeat kept running after stop")
	}
	if r.Snapshot()[0].Kind != KindHeartbeat {
		t.Errorf("kind = %v", r.Snapshot()[0].Kind)
	}

	StartHeartbeat(Nop, time.Millisecond)()
}
