package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Структура областей видимости
	ScpInfo                   Code = 1000
	ScpInvalidSyntax          Code = 1001
	ScpInvalidCommand         Code = 1002
	ScpInvalidBlock           Code = 1003
	ScpUnbalancedBlocks       Code = 1004
	ScpInvalidCondition       Code = 1005
	ScpMissingCondition       Code = 1006
	ScpEmptyCondition         Code = 1007
	ScpConditionOutsideMethod Code = 1008

	// Методы
	MthInfo             Code = 2000
	MthNameDigitStart   Code = 2001
	MthNameUnderscore   Code = 2002
	MthNameIllegalChars Code = 2003
	MthNameKeyword      Code = 2004
	MthDuplicate        Code = 2005
	MthNonVoid          Code = 2006
	MthMissingReturn    Code = 2007
	MthArgCount         Code = 2008
	MthNested           Code = 2009
	MthCallInGlobal     Code = 2010
	MthUnknown          Code = 2011

	// Переменные
	VarInfo                Code = 3000
	VarBadDeclaration      Code = 3001
	VarNameDigitStart      Code = 3002
	VarNameUnderscore      Code = 3003
	VarNameIllegalChars    Code = 3004
	VarNameKeyword         Code = 3005
	VarDuplicate           Code = 3006
	VarBadType             Code = 3007
	VarBadValue            Code = 3008
	VarFinalAssign         Code = 3009
	VarIllegalCast         Code = 3010
	VarUnknownSymbol       Code = 3011
	VarNotInitializedHere  Code = 3012
	VarArgumentInitializer Code = 3013
	VarUninitialized       Code = 3014
	VarUninitializedFinal  Code = 3015
	VarSelfAssign          Code = 3016

	// Ввод-вывод (только драйвер)
	IOInfo          Code = 4000
	IOUnreadable    Code = 4001
	IOBadInvocation Code = 4002
)

// Family groups codes by the component that raises them.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyScope
	FamilyMethod
	FamilyVariable
	FamilyIO
)

func (f Family) String() string {
	switch f {
	case FamilyScope:
		return "scope"
	case FamilyMethod:
		return "method"
	case FamilyVariable:
		return "variable"
	case FamilyIO:
		return "io"
	default:
		return "unknown"
	}
}

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	ScpInfo:                   "Scope information",
	ScpInvalidSyntax:          "Invalid syntax",
	ScpInvalidCommand:         "Invalid command",
	ScpInvalidBlock:           "Invalid block declaration",
	ScpUnbalancedBlocks:       "Unbalanced blocks",
	ScpInvalidCondition:       "Invalid condition",
	ScpMissingCondition:       "Missing condition",
	ScpEmptyCondition:         "Empty condition",
	ScpConditionOutsideMethod: "Condition outside method",

	MthInfo:             "Method information",
	MthNameDigitStart:   "Method name starts with a digit",
	MthNameUnderscore:   "Method name starts with an underscore",
	MthNameIllegalChars: "Method name has illegal characters",
	MthNameKeyword:      "Method name is a reserved keyword",
	MthDuplicate:        "Duplicate method",
	MthNonVoid:          "Non-void method",
	MthMissingReturn:    "Missing return statement",
	MthArgCount:         "Argument lists differ in length",
	MthNested:           "Nested method declaration",
	MthCallInGlobal:     "Method call in global scope",
	MthUnknown:          "Unknown method",

	VarInfo:                "Variable information",
	VarBadDeclaration:      "Invalid declaration",
	VarNameDigitStart:      "Variable name starts with a digit",
	VarNameUnderscore:      "Variable name is a bare underscore",
	VarNameIllegalChars:    "Variable name has illegal characters",
	VarNameKeyword:         "Variable name is a reserved keyword",
	VarDuplicate:           "Duplicate variable",
	VarBadType:             "Invalid variable type",
	VarBadValue:            "Invalid value",
	VarFinalAssign:         "Assignment to final variable",
	VarIllegalCast:         "Illegal cast",
	VarUnknownSymbol:       "Unknown symbol",
	VarNotInitializedHere:  "Value not initialized on this path",
	VarArgumentInitializer: "Initializer on method argument",
	VarUninitialized:       "Uninitialized variable",
	VarUninitializedFinal:  "Uninitialized final variable",
	VarSelfAssign:          "Self assignment",

	IOInfo:          "IO information",
	IOUnreadable:    "Unreadable input",
	IOBadInvocation: "Bad invocation",
}

// codeTemplate holds the user-facing message for each code; %s verbs take subjects in order.
var codeTemplate = map[Code]string{
	ScpInvalidSyntax:          "'%s' has a syntax problem (missing ';' or '{').",
	ScpInvalidCommand:         "'%s' is an invalid command.",
	ScpInvalidBlock:           "Invalid scope declaration.",
	ScpUnbalancedBlocks:       "Invalid brackets structure in scope '%s'.",
	ScpInvalidCondition:       "'%s' is an invalid If/While condition.",
	ScpMissingCondition:       "The If/While condition is missing.",
	ScpEmptyCondition:         "There is an empty condition in the code.",
	ScpConditionOutsideMethod: "Condition Scope cannot be declared from the global Scope.",

	MthNameDigitStart:   "'%s' is an invalid Method Name, can't start with a digit.",
	MthNameUnderscore:   "'%s' is an invalid Method Name, can't start with an underscore.",
	MthNameIllegalChars: "'%s' is an invalid Method Name, contains illegal characters.",
	MthNameKeyword:      "'%s' is an invalid Method Name, This name is a saved keyword.",
	MthDuplicate:        "Method '%s' is already defined.",
	MthNonVoid:          "%s is not a valid Method type, only void methods are supported.",
	MthMissingReturn:    "Missing return statement in '%s' method.",
	MthArgCount:         "Actual and formal argument lists of method '%s' differ in length.",
	MthNested:           "'%s' can not be declared inside another Method.",
	MthCallInGlobal:     "'%s' can not be called from the global scope.",
	MthUnknown:          "Cannot resolve symbol '%s'.",

	VarBadDeclaration:      "'%s' is not a valid %s declaration.",
	VarNameDigitStart:      "'%s' is an invalid Variable Name, Can't start with a digit.",
	VarNameUnderscore:      "'%s' is an invalid Variable Name, can't be only an underscore.",
	VarNameIllegalChars:    "'%s' is an invalid Variable Name, contains illegal characters.",
	VarNameKeyword:         "'%s' is an invalid Variable Name, This name is a saved keyword.",
	VarDuplicate:           "Variable '%s' is already defined in the scope.",
	VarBadType:             "%s is an invalid Variable type.",
	VarBadValue:            "%s is an invalid value for a %s variable.",
	VarFinalAssign:         "Cannot assign a value to final variable '%s'.",
	VarIllegalCast:         "Cannot assign a %s member to a %s variable.",
	VarUnknownSymbol:       "Cannot resolve symbol '%s'.",
	VarNotInitializedHere:  "%s is not initialized.",
	VarArgumentInitializer: "%s can not be initialized in a method declaration.",
	VarUninitialized:       "%s is uninitialized.",
	VarUninitializedFinal:  "Final %s is uninitialized.",
	VarSelfAssign:          "Variable '%s' might not have been initialized.",

	IOUnreadable:    "Cannot read '%s': %s.",
	IOBadInvocation: "Expected exactly one source file argument, got %s.",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MTH%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VAR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Family reports which error family the code belongs to.
func (c Code) Family() Family {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return FamilyScope
	case ic >= 2000 && ic < 3000:
		return FamilyMethod
	case ic >= 3000 && ic < 4000:
		return FamilyVariable
	case ic >= 4000 && ic < 5000:
		return FamilyIO
	}
	return FamilyUnknown
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Format renders the message for c. Missing subjects render as empty strings,
// extra subjects are ignored.
func (c Code) Format(subjects ...string) string {
	tmpl, ok := codeTemplate[c]
	if !ok {
		if len(subjects) == 0 {
			return c.Title()
		}
		return c.Title() + ": " + strings.Join(subjects, ", ")
	}
	n := strings.Count(tmpl, "%s")
	args := make([]any, n)
	for i := range n {
		if i < len(subjects) {
			args[i] = subjects[i]
		} else {
			args[i] = ""
		}
	}
	return fmt.Sprintf(tmpl, args...)
}
