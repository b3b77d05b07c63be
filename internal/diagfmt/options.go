package diagfmt

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк исходника перед строкой ошибки
	PathMode  PathMode
	ShowNotes bool
}

// ShortOpts configures the one-line-per-diagnostic renderer.
type ShortOpts struct {
	PathMode     PathMode
	IncludeNotes bool
}

// JSONOpts configures JSON and YAML output.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// SarifRunMeta identifies the tool and run in SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	RunID          string
}
