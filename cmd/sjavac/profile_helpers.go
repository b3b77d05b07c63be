package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sjavac/internal/prof"
)

// setupProfiling starts the profilers named by --cpu-profile, --mem-profile
// and --runtime-trace. The session is nil when no flag is set.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	var opts prof.Options
	targets := []struct {
		flag string
		dst  *string
	}{
		{"cpu-profile", &opts.CPU},
		{"mem-profile", &opts.Mem},
		{"runtime-trace", &opts.Runtime},
	}
	requested := false
	for _, t := range targets {
		v, err := cmd.Root().PersistentFlags().GetString(t.flag)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", t.flag, err)
		}
		*t.dst = v
		requested = requested || v != ""
	}
	if !requested {
		return nil, nil
	}
	return prof.Start(opts)
}
