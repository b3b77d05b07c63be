package sema

import (
	"strings"

	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
)

// scanBody processes the lines of one scope in order.
func (s *Session) scanBody(scope symbols.ScopeID, body []lexer.Line) error {
	for i := 0; i < len(body); i++ {
		ln := body[i]
		switch ln.Kind {
		case lexer.LineSkip:
			continue
		case lexer.LineStatement:
			if err := s.statement(scope, ln); err != nil {
				return err
			}
		case lexer.LineOpen:
			end, err := blockEnd(body, i)
			if err != nil {
				return err
			}
			if err := s.openBlock(scope, ln, body[i+1:end]); err != nil {
				return err
			}
			i = end
		default:
			return diag.At(ln.No, diag.ScpInvalidSyntax, strings.TrimSpace(ln.Text))
		}
	}
	return nil
}

// blockEnd returns the index of the closer matching the opener at start.
func blockEnd(body []lexer.Line, start int) (int, error) {
	depth := 0
	for j := start; j < len(body); j++ {
		switch body[j].Kind {
		case lexer.LineOpen:
			depth++
		case lexer.LineClose:
			depth--
		}
		if depth == 0 {
			return j, nil
		}
	}
	head := body[start]
	return 0, diag.At(head.No, diag.ScpUnbalancedBlocks, lexer.Head(head.Text))
}

// openBlock dispatches a block opener to the condition or method builder.
func (s *Session) openBlock(scope symbols.ScopeID, ln lexer.Line, inner []lexer.Line) error {
	head := lexer.Head(ln.Text)
	if cond, ok := lexer.ParseCondition(head); ok {
		return s.conditionBlock(scope, ln, head, cond, inner)
	}
	if mh, ok := lexer.ParseMethodHead(head); ok {
		return s.methodBlock(scope, ln, mh, inner)
	}
	return diag.At(ln.No, diag.ScpInvalidBlock)
}

func (s *Session) newScope(kind symbols.ScopeKind, parent symbols.ScopeID, name string, ln lexer.Line, body []lexer.Line) symbols.ScopeID {
	id := s.Table.Scopes.New(kind, parent, name, ln.No)
	s.Table.Scopes.Get(id).Body = body
	s.span.Point(trace.ScopeNode, "scope:"+kind.String(), name)
	return id
}

func (s *Session) insideMethod(scope symbols.ScopeID) bool {
	return s.Table.Scopes.EnclosingMethod(scope).IsValid()
}
