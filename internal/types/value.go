package types

// Value is the statically known content of a variable.
// Set is false for declared-but-unassigned variables and for values
// whose source is resolved only by the global replay.
type Value struct {
	Kind Kind
	Raw  string
	Set  bool
}

// Literal returns a value holding the literal text raw.
func Literal(k Kind, raw string) Value {
	return Value{Kind: k, Raw: raw, Set: true}
}

// Convert re-tags v for storage in dst. Callers check CanAssign first.
func (v Value) Convert(dst Kind) Value {
	if !v.Set {
		return Value{Kind: dst}
	}
	return Value{Kind: dst, Raw: v.Raw, Set: true}
}

func (v Value) String() string {
	if !v.Set {
		return "<unset>"
	}
	return v.Raw
}
