package diagfmt

import (
	"io"

	"gopkg.in/yaml.v3"

	"sjavac/internal/diag"
	"sjavac/internal/source"
)

// YAML форматирует диагностики так же, как JSON, но в YAML.
func YAML(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return WriteYAML(w, BuildDiagnosticsOutput(bag, fs, opts))
}

// WriteYAML encodes a prepared output as a single YAML document.
func WriteYAML(w io.Writer, out DiagnosticsOutput) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
