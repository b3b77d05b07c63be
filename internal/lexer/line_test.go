package lexer

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want LineKind
	}{
		{"// comment", LineSkip},
		{"   ", LineSkip},
		{"", LineSkip},
		{"  // not a comment;", LineStatement}, // комментарий только с нулевой колонки
		{"int a = 5;", LineStatement},
		{"void foo() {", LineOpen},
		{"  }  ", LineClose},
		{"int a = 5", LineInvalid},
		{"}}", LineInvalid},
	}
	for _, tt := range tests {
		if got := Classify(1, tt.text).Kind; got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSplitInlineBlocks(t *testing.T) {
	lines := Split([]string{
		"void foo(int a) { return; }",
		`String s = "{;}";`,
		"void f() {}",
	})

	var texts []string
	var nos []uint32
	for _, ln := range lines {
		texts = append(texts, ln.Text)
		nos = append(nos, ln.No)
	}
	wantTexts := []string{
		"void foo(int a) {", "return;", "}",
		`String s = "{;}";`,
		"void f() {", "}",
	}
	wantNos := []uint32{1, 1, 1, 2, 3, 3}
	if !reflect.DeepEqual(texts, wantTexts) {
		t.Fatalf("texts = %q, want %q", texts, wantTexts)
	}
	if !reflect.DeepEqual(nos, wantNos) {
		t.Fatalf("line numbers = %v, want %v", nos, wantNos)
	}
	if lines[0].Kind != LineOpen || lines[1].Kind != LineStatement || lines[2].Kind != LineClose {
		t.Errorf("unexpected kinds: %v %v %v", lines[0].Kind, lines[1].Kind, lines[2].Kind)
	}
}
