package sema

import (
	"fmt"
	"strings"

	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
	"sjavac/internal/types"
)

const voidType = "void"

func (s *Session) conditionBlock(scope symbols.ScopeID, ln lexer.Line, head, cond string, inner []lexer.Line) error {
	if !s.insideMethod(scope) {
		return diag.At(ln.No, diag.ScpConditionOutsideMethod)
	}
	if err := s.checkCondition(scope, ln, cond); err != nil {
		return err
	}
	child := s.newScope(symbols.ScopeCondition, scope, head, ln, inner)
	return s.scanBody(child, inner)
}

// checkCondition validates every operand of an if/while condition.
func (s *Session) checkCondition(scope symbols.ScopeID, ln lexer.Line, cond string) error {
	if cond == "" {
		return diag.At(ln.No, diag.ScpMissingCondition)
	}
	for _, part := range lexer.SplitCondition(cond) {
		if part == "" {
			return diag.At(ln.No, diag.ScpEmptyCondition)
		}
		if types.IsBoolLiteral(part) {
			continue
		}
		if v := s.Table.Lookup(scope, part); v != nil {
			if !v.Initialized {
				return diag.At(ln.No, diag.VarUninitialized, part)
			}
			if !v.Type.Conditional() {
				return diag.At(ln.No, diag.ScpInvalidCondition, part)
			}
			continue
		}
		if !lexer.IsIdentifier(part) || lexer.IsReserved(part) {
			return diag.At(ln.No, diag.ScpInvalidCondition, part)
		}
		s.queues.push(Pending{
			Kind:   PendingCondition,
			Text:   strings.TrimSpace(ln.Text),
			Token:  part,
			Origin: scope,
			Line:   ln.No,
		})
	}
	return nil
}

func (s *Session) methodBlock(scope symbols.ScopeID, ln lexer.Line, mh lexer.MethodHead, inner []lexer.Line) error {
	if scope != s.Table.Global {
		return diag.At(ln.No, diag.MthNested, mh.Name)
	}
	if mh.Type != voidType {
		return diag.At(ln.No, diag.MthNonVoid, mh.Type)
	}
	if err := checkMethodName(ln.No, mh.Name); err != nil {
		return err
	}

	ms := s.newScope(symbols.ScopeMethod, scope, mh.Name, ln, inner)
	args, err := s.declareArguments(ms, ln, mh.Args)
	if err != nil {
		return err
	}
	if err := s.scanBody(ms, inner); err != nil {
		return err
	}

	m := &symbols.Method{Name: mh.Name, Scope: ms, Args: args, Line: ln.No}
	if !s.Table.AddMethod(m) {
		err := diag.At(ln.No, diag.MthDuplicate, mh.Name)
		if prev := s.Table.Method(mh.Name); prev != nil {
			err = err.WithNote(prev.Line, fmt.Sprintf("'%s' was declared here", mh.Name))
		}
		return err
	}
	if !endsWithReturn(inner) {
		return diag.At(ln.No, diag.MthMissingReturn, mh.Name)
	}
	return nil
}

func (s *Session) declareArguments(ms symbols.ScopeID, ln lexer.Line, list string) ([]*symbols.Variable, error) {
	if list == "" {
		return nil, nil
	}
	entries := lexer.SplitList(list)
	args := make([]*symbols.Variable, 0, len(entries))
	for _, entry := range entries {
		if entry == "" {
			return nil, diag.At(ln.No, diag.VarBadDeclaration, strings.TrimSpace(ln.Text), "argument")
		}
		arg, err := s.declareArgument(ms, ln, entry)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// declareArgument handles one `[final] type name` entry.
func (s *Session) declareArgument(ms symbols.ScopeID, ln lexer.Line, entry string) (*symbols.Variable, error) {
	if left, _, ok := strings.Cut(entry, "="); ok {
		fields := strings.Fields(left)
		name := strings.TrimSpace(left)
		if len(fields) > 0 {
			name = fields[len(fields)-1]
		}
		return nil, diag.At(ln.No, diag.VarArgumentInitializer, name)
	}

	words := strings.Fields(entry)
	isConst := words[0] == finalKeyword
	if isConst {
		words = words[1:]
	}
	if len(words) != 2 {
		return nil, diag.At(ln.No, diag.VarBadDeclaration, entry, "argument")
	}
	kind, ok := types.ParseKind(words[0])
	if !ok {
		return nil, diag.At(ln.No, diag.VarBadType, words[0])
	}
	if err := checkVariableName(s.Table.Scopes.Get(ms), ln.No, words[1]); err != nil {
		return nil, err
	}

	arg := &symbols.Variable{Name: words[1], Type: kind, Const: isConst, Line: ln.No}
	s.Table.DeclareArgument(ms, arg)
	return arg, nil
}

// endsWithReturn reports whether the last effective line of a method body is `return;`.
func endsWithReturn(body []lexer.Line) bool {
	for i := len(body) - 1; i >= 0; i-- {
		if body[i].Kind == lexer.LineSkip {
			continue
		}
		return body[i].Kind == lexer.LineStatement && lexer.IsReturn(body[i].Text)
	}
	return false
}
