package specs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stylestats/metrics"
)

func record() *metrics.Record {
	rec := metrics.New()
	rec.Set(metrics.Size, 1500)
	rec.Set(metrics.Rules, 10)
	rec.Set(metrics.Simplicity, 0.5)
	rec.Set(metrics.MostIdentifierSelector, "ul > li")
	rec.Set(metrics.UniqueColors, []string{"#333333", "RED"})
	return rec
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
defaults:
  suiteName: Custom suite
size: 2000
rules:
  max: 20
  min: 5
results:
  simplicity:
    min: 0.3
  idSelectors:
    max: 1
mostIdentifierSelector: ul > li
`)
	spec, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if spec.Defaults.SuiteName != "Custom suite" {
		t.Errorf("SuiteName = %q", spec.Defaults.SuiteName)
	}
	if spec.Defaults.Operation != OpLess {
		t.Errorf("default operation = %q, want <", spec.Defaults.Operation)
	}

	want := []Assertion{
		{Path: "size", Metric: "size", Operation: OpLess, Max: 2000},
		{Path: "rules", Metric: "rules", Operation: OpBetween, Max: 20, Min: 5},
		{Path: "results.simplicity", Metric: "simplicity", Operation: OpGreater, Min: 0.3},
		{Path: "results.idSelectors", Metric: "idSelectors", Operation: OpLess, Max: 1},
		{Path: "mostIdentifierSelector", Metric: "mostIdentifierSelector", Operation: OpEqual, Expected: "ul > li"},
	}
	if len(spec.Assertions) != len(want) {
		t.Fatalf("got %d assertions, want %d: %+v", len(spec.Assertions), len(want), spec.Assertions)
	}
	for i, w := range want {
		if spec.Assertions[i] != w {
			t.Errorf("assertion %d = %+v, want %+v", i, spec.Assertions[i], w)
		}
	}
}

func TestParse_JSON(t *testing.T) {
	spec, err := Parse([]byte(`{"defaults": {"operation": ">"}, "rules": 5, "size": {"max": 100}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(spec.Assertions) != 2 {
		t.Fatalf("got %d assertions, want 2", len(spec.Assertions))
	}
	if a := spec.Assertions[0]; a.Operation != OpGreater || a.Min != 5 {
		t.Errorf("rules assertion = %+v", a)
	}
	if a := spec.Assertions[1]; a.Operation != OpLess || a.Max != 100 {
		t.Errorf("size assertion = %+v", a)
	}
	if spec.Defaults.SuiteName != defaultSuiteName {
		t.Errorf("SuiteName = %q", spec.Defaults.SuiteName)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not a mapping", "- 1\n- 2\n"},
		{"no bounds", "rules: {foo: 1}\n"},
		{"sequence", "rules: [1, 2]\n"},
		{"bad default operation", "defaults: {operation: '<>'}\nrules: 1\n"},
		{"scalar results", "results: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrBadSpec) {
				t.Errorf("Parse() error = %v, want ErrBadSpec", err)
			}
		})
	}
	if _, err := Parse([]byte("rules: [")); err == nil {
		t.Error("expected YAML syntax error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yml")
	if err := os.WriteFile(path, []byte("rules: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(spec.Assertions) != 1 {
		t.Errorf("got %d assertions", len(spec.Assertions))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRun(t *testing.T) {
	spec, err := Parse([]byte(`
size: 2000
rules:
  max: 20
  min: 10
results:
  simplicity:
    min: 0.3
mostIdentifierSelector: ul > li
uniqueColors: "#333333,RED"
idSelectors: 1
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	report := Run(record(), spec)

	want := []struct {
		text   string
		passed bool
		err    error
	}{
		{"size: 1500 should be less than 2000", true, nil},
		{"rules: 10 should be less than 20 and greater than 10", false, nil},
		{"results.simplicity: 0.5 should be greater than 0.3", true, nil},
		{"mostIdentifierSelector: ul > li should be equal to ul > li", true, nil},
		{"uniqueColors: #333333,RED should be equal to #333333,RED", true, nil},
		{"idSelectors", false, ErrNotFound},
	}
	if len(report.Results) != len(want) {
		t.Fatalf("got %d results, want %d", len(report.Results), len(want))
	}
	for i, w := range want {
		got := report.Results[i]
		if got.Text != w.text || got.Passed != w.passed || !errors.Is(got.Err, w.err) {
			t.Errorf("result %d = %+v, want %+v", i, got, w)
		}
	}
	if report.Failed() != 2 {
		t.Errorf("Failed() = %d, want 2", report.Failed())
	}

	var buf bytes.Buffer
	if _, err := report.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	out := buf.String()
	for _, s := range []string{defaultSuiteName, "ok  size: 1500", "1) rules: 10", "2) idSelectors: not found", "4 passing", "2 failing"} {
		if !strings.Contains(out, s) {
			t.Errorf("report does not contain %q:\n%s", s, out)
		}
	}
}

func TestRun_CustomTextAndEquality(t *testing.T) {
	spec, err := Parse([]byte(`
defaults:
  text: "[{metric}] {actual} {operation} {expected}"
  operation: "="
rules: 10
size: 10
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	report := Run(record(), spec)
	if got := report.Results[0]; !got.Passed || got.Text != "[rules] 10 equal to 10" {
		t.Errorf("rules result = %+v", got)
	}
	if got := report.Results[1]; got.Passed {
		t.Errorf("size result = %+v, want failure", got)
	}
}

func TestRun_NotNumber(t *testing.T) {
	spec, err := Parse([]byte("mostIdentifierSelector: {max: 3}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	report := Run(record(), spec)
	if report.Failed() != 1 || report.Results[0].Err == nil {
		t.Errorf("result = %+v, want error", report.Results[0])
	}
}

func TestOperation_Describe(t *testing.T) {
	for op, want := range map[Operation]string{
		OpLess: "less than", OpGreater: "greater than", OpBetween: "between", OpEqual: "equal to",
	} {
		if got := op.Describe(); got != want {
			t.Errorf("%q.Describe() = %q, want %q", op, got, want)
		}
	}
}
