package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sjavac/internal/driver"
	"sjavac/internal/observ"
	"sjavac/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.sjava|directory>...",
	Short: "Verify s-Java files or every *.sjava file within directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	defineCheckFlags(checkCmd)
}

func defineCheckFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml|sarif)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	cmd.Flags().Bool("cache", false, "reuse verdicts from the on-disk cache")
	cmd.Flags().Bool("drop-cache", false, "clear the on-disk cache before checking")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("path-mode", "relative", "how to print paths (auto|absolute|relative|basename)")
	cmd.Flags().Int8("context", 1, "source lines shown above each diagnostic")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().StringSlice("ext", nil, "source file extensions picked up in directories")
}

// checkSettings is the merged view of defaults, sjavac.toml and flags.
type checkSettings struct {
	config    project.Config
	root      string // directory of the sjavac.toml in effect, if any
	pathMode  string
	context   int8
	withNotes bool
	quiet     bool
	timings   bool
	dropCache bool
}

// runCheck verifies the given paths, renders the diagnostics in the chosen
// format and exits with the worst outcome as status.
func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := loadCheckSettings(cmd, args[0])
	if err != nil {
		return err
	}
	if _, ok := formatters[settings.config.Check.Format]; !ok {
		return fmt.Errorf("unknown format %q (expected pretty|short|json|yaml|sarif)", settings.config.Check.Format)
	}
	uiMode, err := parseSwitch("ui", settings.config.Check.UI)
	if err != nil {
		return err
	}

	ctx, cleanup, err := setupRuntime(cmd, &settings.config)
	if err != nil {
		return err
	}
	defer cleanup.run()

	opts := driver.Options{
		Jobs:       settings.config.Check.Jobs,
		Extensions: settings.config.Check.Extensions,
		BaseDir:    settings.root,
	}
	if settings.timings {
		opts.Timer = observ.NewTimer()
	}
	if settings.config.Check.Cache || settings.dropCache {
		cache, err := driver.OpenDiskCache("sjavac")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if settings.dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to drop cache: %w", err)
			}
		}
		if settings.config.Check.Cache {
			opts.Cache = cache
		}
	}

	useTUI := settings.config.Check.Format == "pretty" && !settings.quiet && uiMode.enabled(canDrawProgress)
	batch, err := checkPaths(ctx, args, opts, useTUI)
	if err != nil {
		return err
	}
	cleanup.outcome = batch.Outcome

	out := cmd.OutOrStdout()
	if err := renderBatch(out, batch, settings, opts.Timer, os.Args[1:]); err != nil {
		return err
	}
	if settings.timings && settings.config.Check.Format == "pretty" {
		printTimings(cmd.ErrOrStderr(), opts.Timer)
	}
	if batch.Outcome != driver.Legal {
		return &exitError{code: int(batch.Outcome)}
	}
	return nil
}

func checkPaths(ctx context.Context, paths []string, opts driver.Options, useTUI bool) (*driver.Batch, error) {
	if useTUI {
		return runCheckWithUI(ctx, "checking", paths, opts)
	}
	return driver.CheckPaths(ctx, paths, opts)
}

// loadCheckSettings overlays flags the user set on top of sjavac.toml found
// above target, which itself overlays the built-in defaults.
func loadCheckSettings(cmd *cobra.Command, target string) (checkSettings, error) {
	s := checkSettings{config: project.Defaults()}
	manifest, ok, err := project.LoadManifest(target)
	if err != nil {
		return s, err
	}
	if ok {
		s.config = manifest.Config
		s.root = manifest.Root
	}

	flags := cmd.Flags()
	check := &s.config.Check
	if flags.Changed("format") {
		check.Format, _ = flags.GetString("format")
	}
	check.Format = strings.ToLower(check.Format)
	if flags.Changed("jobs") {
		check.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("max-diagnostics") {
		check.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("cache") {
		check.Cache, _ = flags.GetBool("cache")
	}
	if flags.Changed("ui") {
		check.UI, _ = flags.GetString("ui")
	}
	if flags.Changed("ext") {
		exts, _ := flags.GetStringSlice("ext")
		check.Extensions = check.Extensions[:0]
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			check.Extensions = append(check.Extensions, ext)
		}
	}

	s.pathMode, _ = flags.GetString("path-mode")
	s.context, _ = flags.GetInt8("context")
	s.withNotes, _ = flags.GetBool("with-notes")
	s.dropCache, _ = flags.GetBool("drop-cache")
	s.quiet, _ = cmd.Root().PersistentFlags().GetBool("quiet")
	s.timings, _ = cmd.Root().PersistentFlags().GetBool("timings")
	return s, nil
}

func printTimings(w io.Writer, t *observ.Timer) {
	fmt.Fprint(w, t.Summary())
}
