package sema

import (
	"context"
	"strconv"

	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
)

var callMode = mode{skipOwnership: true, fillParameter: true, final: true}

// checkCalls validates recorded calls against the method registry.
func checkCalls(ctx context.Context, table *symbols.Table, calls []Call) error {
	span, _ := trace.Begin(ctx, trace.ScopePass, "calls")
	span.WithExtra("calls", strconv.Itoa(len(calls)))
	var err error
	for _, c := range calls {
		if err = checkCall(table, c); err != nil {
			break
		}
	}
	span.End(outcome(err))
	return err
}

func checkCall(table *symbols.Table, c Call) error {
	m := table.Method(c.Name)
	if m == nil {
		return diag.At(c.Line, diag.MthUnknown, c.Name)
	}
	var args []string
	if c.Args != "" {
		args = lexer.SplitList(c.Args)
	}
	if len(args) != m.Arity() {
		return diag.At(c.Line, diag.MthArgCount, c.Name)
	}
	for _, a := range args {
		if a == "" {
			return diag.At(c.Line, diag.MthArgCount, c.Name)
		}
	}

	for i, a := range args {
		// параметр копируем: проверка не должна менять сигнатуру метода
		param := *m.Args[i]
		if v := table.LookupAt(c.Origin, a, c.Line); v != nil {
			if _, _, err := readVariable(table, c.Origin, v, param.Type, c.Line, callMode); err != nil {
				return err
			}
			continue
		}
		if table.Lookup(c.Origin, a) != nil {
			// имя связано только объявлением ниже вызова
			return diag.At(c.Line, diag.VarUnknownSymbol, a)
		}
		if _, err := setValue(table, &param, a, c.Origin, c.Line, callMode); err != nil {
			return err
		}
	}
	return nil
}
