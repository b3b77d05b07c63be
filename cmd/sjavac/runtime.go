package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sjavac/internal/driver"
	"sjavac/internal/prof"
	"sjavac/internal/project"
)

// runtimeCleanup releases what setupRuntime acquired. outcome is set by
// the command so the trace ring can be dumped for failed runs.
type runtimeCleanup struct {
	cmd     *cobra.Command
	trace   *traceSession
	prof    *prof.Session
	outcome driver.Outcome
	done    bool
}

// setupRuntime configures color, profiling and tracing for one command.
// cfg may be nil; built-in defaults apply then.
func setupRuntime(cmd *cobra.Command, cfg *project.Config) (context.Context, *runtimeCleanup, error) {
	if cfg == nil {
		def := project.Defaults()
		cfg = &def
	}
	if err := configureColor(cmd); err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	profSession, err := setupProfiling(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx, ts, err := setupTracing(ctx, cmd, cfg.Trace)
	if err != nil {
		if stopErr := profSession.Stop(); stopErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", stopErr)
		}
		return nil, nil, err
	}
	return ctx, &runtimeCleanup{cmd: cmd, trace: ts, prof: profSession}, nil
}

func (c *runtimeCleanup) run() {
	if c == nil || c.done {
		return
	}
	c.done = true
	c.trace.close(c.cmd, c.outcome != driver.Legal)
	if err := c.prof.Stop(); err != nil {
		fmt.Fprintf(c.cmd.ErrOrStderr(), "profile: %v\n", err)
	}
}
