package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// configureColor applies --color to the global fatih/color switch.
// In auto mode NO_COLOR wins over a terminal.
func configureColor(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseSwitch("color", value)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(func() bool {
		return stdoutIsTerminal() && os.Getenv("NO_COLOR") == ""
	})
	return nil
}
