package project

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config mirrors sjavac.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
	Trace TraceConfig `toml:"trace"`
}

// CheckConfig holds defaults for `sjavac check`.
type CheckConfig struct {
	Format         string   `toml:"format"`
	Jobs           int      `toml:"jobs"`
	Extensions     []string `toml:"extensions"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
	Cache          bool     `toml:"cache"`
	UI             string   `toml:"ui"`
}

// TraceConfig holds defaults for the tracing flags.
type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
}

// Manifest is a loaded configuration together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

var (
	knownFormats = []string{"pretty", "short", "json", "yaml", "sarif"}
	knownUIModes = []string{"auto", "on", "off"}
)

// Defaults returns the configuration used when no sjavac.toml exists.
func Defaults() Config {
	return Config{
		Check: CheckConfig{
			Format:         "pretty",
			Extensions:     []string{".sjava"},
			MaxDiagnostics: 100,
			UI:             "auto",
		},
		Trace: TraceConfig{
			Level: "off",
			Mode:  "stream",
		},
	}
}

// LoadManifest finds sjavac.toml above startDir and decodes it.
// ok is false when no file exists; the defaults apply then.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes path over Defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("check", "format") && !slices.Contains(knownFormats, cfg.Check.Format) {
		return Config{}, fmt.Errorf("%s: [check].format must be one of %s", path, strings.Join(knownFormats, ", "))
	}
	if meta.IsDefined("check", "ui") && !slices.Contains(knownUIModes, cfg.Check.UI) {
		return Config{}, fmt.Errorf("%s: [check].ui must be one of %s", path, strings.Join(knownUIModes, ", "))
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if meta.IsDefined("check", "extensions") {
		if len(cfg.Check.Extensions) == 0 {
			return Config{}, fmt.Errorf("%s: [check].extensions must not be empty", path)
		}
		for i, ext := range cfg.Check.Extensions {
			if !strings.HasPrefix(ext, ".") {
				cfg.Check.Extensions[i] = "." + ext
			}
		}
	}
	if meta.IsDefined("trace", "output") && cfg.Trace.Output != "" && !filepath.IsAbs(cfg.Trace.Output) {
		cfg.Trace.Output = filepath.Join(filepath.Dir(path), cfg.Trace.Output)
	}
	return cfg, nil
}
