package types

import "testing"

func TestCanAssignWidening(t *testing.T) {
	all := []Kind{KindInt, KindDouble, KindString, KindChar, KindBoolean}
	allowed := map[[2]Kind]bool{
		{KindDouble, KindInt}:     true,
		{KindBoolean, KindInt}:    true,
		{KindBoolean, KindDouble}: true,
	}
	for _, dst := range all {
		for _, src := range all {
			want := dst == src || allowed[[2]Kind{dst, src}]
			if got := CanAssign(dst, src); got != want {
				t.Errorf("CanAssign(%s, %s) = %v, want %v", dst, src, got, want)
			}
		}
	}
	if CanAssign(KindInvalid, KindInvalid) {
		t.Error("invalid kinds must never assign")
	}
}

func TestIsLiteral(t *testing.T) {
	tests := []struct {
		kind Kind
		tok  string
		want bool
	}{
		{KindInt, "5", true},
		{KindInt, "-12", true},
		{KindInt, "2147483647", true},
		{KindInt, "2147483648", false}, // не влезает в 32 бита
		{KindInt, "1.0", false},
		{KindDouble, "1.0", true},
		{KindDouble, ".5", true},
		{KindDouble, "5.", true},
		{KindDouble, "7", true},
		{KindDouble, ".", false},
		{KindString, `"hi there"`, true},
		{KindString, `"`, false},
		{KindChar, `'a'`, true},
		{KindChar, `'ab'`, false},
		{KindBoolean, "true", true},
		{KindBoolean, "-0.5", true},
		{KindBoolean, "yes", false},
	}
	for _, tt := range tests {
		if got := IsLiteral(tt.kind, tt.tok); got != tt.want {
			t.Errorf("IsLiteral(%s, %q) = %v, want %v", tt.kind, tt.tok, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"int", "double", "String", "char", "boolean"} {
		k, ok := ParseKind(name)
		if !ok || k.String() != name {
			t.Errorf("ParseKind(%q) = %v, %v", name, k, ok)
		}
	}
	if _, ok := ParseKind("string"); ok {
		t.Error("type keywords are case sensitive")
	}
	if KindDouble.Upper() != "DOUBLE" {
		t.Errorf("Upper() = %q", KindDouble.Upper())
	}
}
