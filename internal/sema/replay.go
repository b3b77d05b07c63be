package sema

import (
	"context"
	"slices"
	"strconv"

	"sjavac/internal/diag"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
	"sjavac/internal/types"
)

// Replay settles the queued references against the completed global scope,
// then validates the recorded method calls. The order is fixed: assignments,
// declarations, conditions, calls.
func (s *Session) Replay(ctx context.Context, q *Queues) (*Result, error) {
	table := s.Table
	span, _ := trace.Begin(ctx, trace.ScopePass, "replay")
	span.WithExtra("assignments", strconv.Itoa(len(q.Assignments))).
		WithExtra("declarations", strconv.Itoa(len(q.Declarations))).
		WithExtra("conditions", strconv.Itoa(len(q.Conditions)))

	err := settle(table, q.Assignments, q.Declarations)
	if err == nil {
		err = replayConditions(table, q.Conditions)
	}
	span.End(outcome(err))
	if err != nil {
		return nil, err
	}

	if err := checkCalls(ctx, table, q.Calls); err != nil {
		return nil, err
	}
	return &Result{Table: table, Deferred: q.Deferred(), Calls: len(q.Calls)}, nil
}

// settle replays pending assignments, then pending declarations. An item
// whose source is still provisional waits for the next round. A round that
// settles nothing leaves only items reading each other, and the first of
// them fails.
func settle(table *symbols.Table, assignments, declarations []Pending) error {
	work := slices.Concat(assignments, declarations)
	for len(work) > 0 {
		var waiting []Pending
		for _, p := range work {
			if src := pendingSource(table, p); src != nil && src.Provisional {
				waiting = append(waiting, p)
				continue
			}
			if err := replayPending(table, p); err != nil {
				return err
			}
		}
		if len(waiting) == len(work) {
			p := waiting[0]
			return diag.At(p.Line, diag.VarNotInitializedHere, p.Token)
		}
		work = waiting
	}
	return nil
}

func pendingSource(table *symbols.Table, p Pending) *symbols.Variable {
	if p.Source != nil {
		return p.Source
	}
	return table.GlobalVariable(p.Token)
}

func replayPending(table *symbols.Table, p Pending) error {
	target := p.Var
	declaring := ""
	if p.Kind == PendingAssignment {
		if target == nil {
			target = table.GlobalVariable(p.Target)
			if target == nil {
				return diag.At(p.Line, diag.VarUnknownSymbol, p.Target)
			}
		}
		if target.Const {
			return diag.At(p.Line, diag.VarFinalAssign, target.Name)
		}
	} else {
		declaring = target.Name
	}

	var val types.Value
	if p.Source != nil {
		// тип и видимость проверены при сканировании
		val = p.Source.Value.Convert(target.Type)
	} else {
		var err error
		if val, _, err = resolveValue(table, table.Global, target.Type, p.Token, declaring, p.Line, replayMode); err != nil {
			return err
		}
	}
	target.Value = val
	target.Provisional = false
	if p.Kind == PendingAssignment {
		target.MarkInitialized(table.Global)
	}
	return nil
}

// replayConditions validates every queued condition operand.
func replayConditions(table *symbols.Table, items []Pending) error {
	for _, p := range items {
		if !globalConditionOperand(table, p.Token) {
			return diag.At(p.Line, diag.ScpInvalidCondition, p.Token)
		}
	}
	return nil
}

func globalConditionOperand(table *symbols.Table, name string) bool {
	if v := table.GlobalVariable(name); v != nil &&
		v.Initialized && v.InitScope == table.Global && v.Type.Conditional() {
		return true
	}
	for _, arg := range table.ArgumentsNamed(name) {
		if arg.Type.Conditional() {
			return true
		}
	}
	return false
}
