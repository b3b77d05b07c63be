package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sjavac/internal/version"
)

// buildReport is the machine-readable answer of `sjavac version`.
type buildReport struct {
	Tool      string `json:"tool" yaml:"tool"`
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	Go        string `json:"go,omitempty" yaml:"go,omitempty"`
	Platform  string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sjavac build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "include every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	format, _ := flags.GetString("format")
	showHash, _ := flags.GetBool("hash")
	showDate, _ := flags.GetBool("date")
	full, _ := flags.GetBool("full")

	rep := newBuildReport(version.Current(), showHash || full, showDate || full, full)
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "pretty":
		if err := configureColor(cmd); err != nil {
			return err
		}
		writeBuildReport(out, rep)
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", format)
}

func newBuildReport(info version.Info, hash, date, full bool) buildReport {
	rep := buildReport{Tool: "sjavac", Version: info.Version}
	if hash {
		rep.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if date {
		rep.BuildDate = valueOrUnknown(info.BuildDate)
	}
	if full {
		rep.Go = runtime.Version()
		rep.Platform = runtime.GOOS + "/" + runtime.GOARCH
	}
	return rep
}

func writeBuildReport(out io.Writer, rep buildReport) {
	fmt.Fprintf(out, "%s %s\n", rep.Tool, version.Colored())
	for _, row := range [][2]string{
		{"commit", rep.GitCommit},
		{"built", rep.BuildDate},
		{"go", rep.Go},
		{"platform", rep.Platform},
	} {
		if row[1] != "" {
			fmt.Fprintf(out, "%-9s %s\n", row[0]+":", row[1])
		}
	}
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
