package types

import (
	"regexp"
	"strconv"
)

var (
	intLiteral    = regexp.MustCompile(`^-?\d+$`)
	doubleLiteral = regexp.MustCompile(`^-?(\d*\.\d+|\d+\.\d*|\d+)$`)
	stringLiteral = regexp.MustCompile(`^".*"$`)
	charLiteral   = regexp.MustCompile(`^'.'$`)
)

// IsLiteral reports whether tok is a literal of kind k.
func IsLiteral(k Kind, tok string) bool {
	switch k {
	case KindInt:
		if !intLiteral.MatchString(tok) {
			return false
		}
		_, err := strconv.ParseInt(tok, 10, 32)
		return err == nil
	case KindDouble:
		return doubleLiteral.MatchString(tok)
	case KindString:
		return stringLiteral.MatchString(tok)
	case KindChar:
		return charLiteral.MatchString(tok)
	case KindBoolean:
		return tok == "true" || tok == "false" || doubleLiteral.MatchString(tok)
	}
	return false
}

// IsBoolLiteral reports whether tok is a literal usable directly as a condition.
func IsBoolLiteral(tok string) bool {
	return IsLiteral(KindBoolean, tok)
}
