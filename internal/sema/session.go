package sema

import (
	"context"
	"strconv"

	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
)

// Session owns all state of one analysis run. It is not reusable:
// create a new one per program.
type Session struct {
	Table  *symbols.Table
	queues Queues
	span   *trace.Span
}

// NewSession returns a session with an empty global scope.
func NewSession() *Session {
	return &Session{
		Table: symbols.NewTable(symbols.Hints{}),
	}
}

// Result describes a program that passed every check.
type Result struct {
	Table    *symbols.Table
	Deferred int // references settled by the replay
	Calls    int // method calls validated
}

// Check runs both phases over lines.
func Check(ctx context.Context, lines []string) (*Result, error) {
	s := NewSession()
	q, err := s.Scan(ctx, lines)
	if err != nil {
		return nil, err
	}
	return s.Replay(ctx, q)
}

// Scan builds the scope tree and returns the work the replay has to finish.
func (s *Session) Scan(ctx context.Context, lines []string) (*Queues, error) {
	span, _ := trace.Begin(ctx, trace.ScopePass, "scan")
	s.span = span

	global := s.Table.Global
	body := lexer.Split(lines)
	s.Table.Scopes.Get(global).Body = body
	err := s.scanBody(global, body)

	span.WithExtra("scopes", strconv.Itoa(s.Table.Scopes.Len())).
		WithExtra("deferred", strconv.Itoa(s.queues.Deferred())).
		WithExtra("calls", strconv.Itoa(len(s.queues.Calls)))
	span.End(outcome(err))
	if err != nil {
		return nil, err
	}
	q := s.queues
	return &q, nil
}

func outcome(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
