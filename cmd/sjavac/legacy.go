package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"sjavac/internal/diag"
	"sjavac/internal/driver"
)

// runLegacy implements the single-argument contract: the outcome digit on
// stdout, the diagnostic on stderr, status 0 regardless of the verdict.
func runLegacy(cmd *cobra.Command, args []string) error {
	ctx, cleanup, err := setupRuntime(cmd, nil)
	if err != nil {
		return err
	}
	defer cleanup.run()

	outcome := legacyCheck(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
	cleanup.outcome = outcome
	return nil
}

func legacyCheck(ctx context.Context, stdout, stderr io.Writer, args []string) driver.Outcome {
	if len(args) != 1 {
		fmt.Fprintln(stdout, int(driver.IOError))
		fmt.Fprintln(stderr, diag.IOBadInvocation.Format(strconv.Itoa(len(args))))
		return driver.IOError
	}
	b := driver.CheckFile(ctx, args[0], driver.Options{})
	rep := b.Reports[0]
	fmt.Fprintln(stdout, int(rep.Outcome))
	if rep.Diagnostic != nil {
		fmt.Fprintln(stderr, legacyMessage(&rep))
	}
	return rep.Outcome
}

// legacyMessage prefixes the diagnostic with its line when one is known.
func legacyMessage(rep *driver.Report) string {
	d := rep.Diagnostic
	if de, ok := diag.AsError(rep.Err); ok && de.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", d.Code.ID(), de.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code.ID(), d.Message)
}
