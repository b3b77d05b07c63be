package sema

import (
	"strings"

	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
	"sjavac/internal/types"
)

// statement dispatches one `;`-terminated line: declaration, call, return, assignments.
func (s *Session) statement(scope symbols.ScopeID, ln lexer.Line) error {
	text := strings.TrimSpace(ln.Text)
	stmt := lexer.Statement(ln.Text)
	first := lexer.FirstWord(stmt)

	if first == finalKeyword || types.IsTypeKeyword(first) {
		return s.declaration(scope, ln, stmt)
	}
	if name, args, ok := lexer.ParseCall(stmt); ok {
		if !s.insideMethod(scope) {
			return diag.At(ln.No, diag.MthCallInGlobal, text)
		}
		s.queues.Calls = append(s.queues.Calls, Call{
			Name:   name,
			Args:   args,
			Text:   text,
			Origin: scope,
			Line:   ln.No,
		})
		return nil
	}
	if s.insideMethod(scope) && lexer.IsReturn(ln.Text) {
		return nil
	}
	return s.assignments(scope, ln, stmt)
}

// declaration handles `[final] type a [= x], b [= y], ...`.
func (s *Session) declaration(scope symbols.ScopeID, ln lexer.Line, stmt string) error {
	text := strings.TrimSpace(ln.Text)
	rest := stmt
	isConst := false
	if lexer.FirstWord(rest) == finalKeyword {
		isConst = true
		rest = strings.TrimSpace(strings.TrimPrefix(rest, finalKeyword))
	}
	typeWord := lexer.FirstWord(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, typeWord))
	if rest == "" || strings.HasSuffix(rest, ",") {
		return diag.At(ln.No, diag.VarBadDeclaration, text, "variable")
	}
	kind, kindOK := types.ParseKind(typeWord)

	for _, entry := range lexer.SplitList(rest) {
		if entry == "" {
			return diag.At(ln.No, diag.ScpInvalidSyntax, text)
		}
		d, ok := lexer.ParseDeclarator(entry)
		if !ok {
			return diag.At(ln.No, diag.VarBadDeclaration, text, "variable")
		}
		if isConst && !d.HasInit {
			return diag.At(ln.No, diag.VarUninitializedFinal, d.Name)
		}
		if !kindOK {
			return diag.At(ln.No, diag.VarBadType, typeWord)
		}
		if err := checkVariableName(s.Table.Scopes.Get(scope), ln.No, d.Name); err != nil {
			return err
		}

		v := &symbols.Variable{Name: d.Name, Type: kind, Const: isConst, Line: ln.No}
		if d.HasInit {
			if err := s.initialize(scope, ln, v, d.Init, text); err != nil {
				return err
			}
		}
		s.Table.Declare(scope, v)
	}
	return nil
}

// initialize resolves the initializer of a fresh declaration, queuing it when unresolved.
func (s *Session) initialize(scope symbols.ScopeID, ln lexer.Line, v *symbols.Variable, token, text string) error {
	val, deferred, err := resolveValue(s.Table, scope, v.Type, token, v.Name, ln.No, mode{})
	if err != nil {
		return err
	}
	v.MarkInitialized(scope)
	if deferred {
		v.Provisional = true
		s.queues.push(Pending{
			Kind:   PendingDeclaration,
			Text:   text,
			Var:    v,
			Token:  token,
			Source: waitingOn(s.Table, scope, token),
			Origin: scope,
			Line:   ln.No,
		})
		return nil
	}
	v.Value = val
	return nil
}

// assignments handles `a = x, b = y`. Every entry is processed.
func (s *Session) assignments(scope symbols.ScopeID, ln lexer.Line, stmt string) error {
	text := strings.TrimSpace(ln.Text)
	for _, entry := range lexer.SplitList(stmt) {
		target, src, ok := lexer.ParseAssignment(entry)
		if !ok {
			return diag.At(ln.No, diag.ScpInvalidCommand, text)
		}
		v := s.Table.Lookup(scope, target)
		if v == nil {
			if !s.insideMethod(scope) {
				return diag.At(ln.No, diag.VarUnknownSymbol, target)
			}
			s.queues.push(Pending{
				Kind:   PendingAssignment,
				Text:   text,
				Target: target,
				Token:  src,
				Origin: scope,
				Line:   ln.No,
			})
			continue
		}
		deferred, err := setValue(s.Table, v, src, scope, ln.No, mode{})
		if err != nil {
			return err
		}
		if deferred {
			s.queues.push(Pending{
				Kind:   PendingAssignment,
				Text:   text,
				Var:    v,
				Token:  src,
				Source: waitingOn(s.Table, scope, src),
				Origin: scope,
				Line:   ln.No,
			})
		}
	}
	return nil
}
