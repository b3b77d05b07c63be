package types

import "strings"

// Kind enumerates the primitive types of the checked language.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindDouble
	KindString
	KindChar
	KindBoolean
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt:     "int",
	KindDouble:  "double",
	KindString:  "String",
	KindChar:    "char",
	KindBoolean: "boolean",
}

// ParseKind maps a type keyword to its Kind.
func ParseKind(word string) (Kind, bool) {
	switch word {
	case "int":
		return KindInt, true
	case "double":
		return KindDouble, true
	case "String":
		return KindString, true
	case "char":
		return KindChar, true
	case "boolean":
		return KindBoolean, true
	}
	return KindInvalid, false
}

// IsTypeKeyword reports whether word names a type.
func IsTypeKeyword(word string) bool {
	_, ok := ParseKind(word)
	return ok
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Upper is the form used in cast diagnostics (INT, DOUBLE, ...).
func (k Kind) Upper() string {
	return strings.ToUpper(k.String())
}

// Conditional reports whether values of k may appear in an if/while condition.
func (k Kind) Conditional() bool {
	return k == KindInt || k == KindDouble || k == KindBoolean
}

// CanAssign reports whether a value of type src may be stored into dst.
// Only identity and the widenings int->double, int->boolean, double->boolean hold.
func CanAssign(dst, src Kind) bool {
	if dst == KindInvalid || src == KindInvalid {
		return false
	}
	if dst == src {
		return true
	}
	switch dst {
	case KindDouble:
		return src == KindInt
	case KindBoolean:
		return src == KindInt || src == KindDouble
	}
	return false
}
