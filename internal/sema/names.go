package sema

import (
	"fmt"

	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
)

const finalKeyword = "final"

func startsWithDigit(name string) bool {
	return name != "" && name[0] >= '0' && name[0] <= '9'
}

func checkMethodName(line uint32, name string) error {
	switch {
	case startsWithDigit(name):
		return diag.At(line, diag.MthNameDigitStart, name)
	case name != "" && name[0] == '_':
		return diag.At(line, diag.MthNameUnderscore, name)
	case !lexer.HasOnlyWordChars(name):
		return diag.At(line, diag.MthNameIllegalChars, name)
	case lexer.IsReserved(name):
		return diag.At(line, diag.MthNameKeyword, name)
	}
	return nil
}

// checkVariableName runs the duplicate check first, then the shape checks.
func checkVariableName(scope *symbols.Scope, line uint32, name string) error {
	switch {
	case scope.Has(name):
		err := diag.At(line, diag.VarDuplicate, name)
		if prev := scope.Local(name); prev != nil && prev.Line != line {
			err = err.WithNote(prev.Line, fmt.Sprintf("'%s' was declared here", name))
		}
		return err
	case startsWithDigit(name):
		return diag.At(line, diag.VarNameDigitStart, name)
	case name == "_":
		return diag.At(line, diag.VarNameUnderscore, name)
	case !lexer.HasOnlyWordChars(name):
		return diag.At(line, diag.VarNameIllegalChars, name)
	case lexer.IsReserved(name):
		return diag.At(line, diag.VarNameKeyword, name)
	}
	return nil
}
