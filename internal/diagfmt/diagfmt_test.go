package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"sjavac/internal/diag"
	"sjavac/internal/source"
)

const program = "int a = 1;\nvoid f() {\n  double d = \"x\";\nreturn;\n}\n"

// fixture строит FileSet с одной диагностикой на третьей строке
func fixture(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	id := fs.AddVirtual("/home/user/project/src/prog.sjava", []byte(program))
	f := fs.Get(id)

	sp := f.LineSpan(3)
	sp.Start += 2 // пропускаем отступ
	err := diag.At(3, diag.VarBadValue, `"x"`, "double")
	d := err.Diagnostic(sp).WithNote(f.LineSpan(2), "inside method 'f'")

	bag := diag.NewBag(10)
	bag.Add(d)
	return bag, fs
}

func TestPathModes(t *testing.T) {
	bag, fs := fixture(t)
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/prog.sjava:3:3"},
		{"Relative path", PathModeRelative, "src/prog.sjava:3:3"},
		{"Basename only", PathModeBasename, "prog.sjava:3:3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR VAR3008") {
				t.Errorf("expected severity and code in:\n%s", out)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})

	want := strings.Join([]string{
		`prog.sjava:3:3: ERROR VAR3008: "x" is an invalid value for a double variable.`,
		`2 | void f() {`,
		`3 |   double d = "x";`,
		` |   ^~~~~~~~~~~~~~~`,
		`  note: prog.sjava:2:1: inside method 'f'`,
		``,
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("pretty output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := fixture(t)
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output must not contain escape sequences")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("colored output must contain escape sequences")
	}
}

func TestShort(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, ShortOpts{PathMode: PathModeRelative}); err != nil {
		t.Fatal(err)
	}
	want := "error VAR3008 src/prog.sjava:3:3 \"x\" is an invalid value for a double variable.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := Short(&buf, bag, fs, ShortOpts{PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || lines[1] != "note VAR3008 prog.sjava:2:1 inside method 'f'" {
		t.Errorf("notes not rendered after their diagnostic:\n%s", buf.String())
	}
}

func TestJSONAndYAMLAgree(t *testing.T) {
	bag, fs := fixture(t)
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}

	var jbuf, ybuf bytes.Buffer
	if err := JSON(&jbuf, bag, fs, opts); err != nil {
		t.Fatal(err)
	}
	if err := YAML(&ybuf, bag, fs, opts); err != nil {
		t.Fatal(err)
	}

	var fromJSON, fromYAML DiagnosticsOutput
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if err := yaml.Unmarshal(ybuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	for _, out := range []DiagnosticsOutput{fromJSON, fromYAML} {
		if out.Count != 1 || len(out.Diagnostics) != 1 {
			t.Fatalf("unexpected output: %+v", out)
		}
		d := out.Diagnostics[0]
		if d.Code != "VAR3008" || d.Family != "variable" || d.Location.StartLine != 3 || d.Location.File != "prog.sjava" {
			t.Errorf("unexpected diagnostic: %+v", d)
		}
		if len(d.Notes) != 1 {
			t.Errorf("expected one note, got %d", len(d.Notes))
		}
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := fixture(t)
	bag.Add(diag.NewError(diag.ScpInvalidSyntax, source.Span{}, "second"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Errorf("Count = %d, want 1", out.Count)
	}
}

func TestSarif(t *testing.T) {
	bag, fs := fixture(t)
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "sjavac", ToolVersion: "1.0.0", RunID: "00000000-0000-0000-0000-000000000001"}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatal(err)
	}

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			AutomationDetails struct {
				GUID string `json:"guid"`
			} `json:"automationDetails"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "sjavac" || len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "VAR3008" {
		t.Errorf("unexpected driver: %+v", run.Tool.Driver)
	}
	if run.AutomationDetails.GUID != meta.RunID {
		t.Errorf("guid = %q", run.AutomationDetails.GUID)
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(run.Results))
	}
	res := run.Results[0]
	loc := res.Locations[0].PhysicalLocation
	if res.Level != "error" || loc.ArtifactLocation.URI != "src/prog.sjava" || loc.Region.StartLine != 3 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "relative": PathModeRelative, "basename": PathModeBasename} {
		if got, ok := ParsePathMode(in); !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("nope"); ok {
		t.Error("expected failure for unknown mode")
	}
}
