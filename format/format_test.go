package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"stylestats/common"
	"stylestats/metrics"
)

func sampleRecord() *metrics.Record {
	rec := metrics.New()
	rec.Set(metrics.Published, time.Date(2026, time.March, 5, 14, 7, 0, 0, time.UTC))
	rec.Set(metrics.Paths, []string{"test/fixture/test.css"})
	rec.Set(metrics.Size, 1500)
	rec.Set(metrics.DataURISize, 0)
	rec.Set(metrics.Rules, 10)
	rec.Set(metrics.Simplicity, 10.0/15.0)
	rec.Set(metrics.AverageOfIdentifier, 22.0/15.0)
	rec.Set(metrics.LowestCohesionSelector, []string{"*"})
	rec.Set(metrics.UniqueFontSizes, []string{})
	rec.Set(metrics.UniqueColors, []string{"#333333", "RED"})
	rec.Set(metrics.PropertiesCount, []metrics.PropertyCount{{Property: "color", Count: 5}, {Property: "margin", Count: 2}})
	return rec
}

func TestLabel(t *testing.T) {
	if got := Label(metrics.IDSelectors); got != "ID Selectors" {
		t.Errorf("Label(idSelectors) = %q", got)
	}
	if got := Label(metrics.Key("someNewMetric")); got != "Some New Metric" {
		t.Errorf("Label(someNewMetric) = %q", got)
	}
}

func TestPrettify(t *testing.T) {
	rows := Prettify(sampleRecord())

	want := map[metrics.Key]string{
		metrics.Published:              "March 5, 2026 2:07 PM",
		metrics.Size:                   "1.5 kB",
		metrics.DataURISize:            "0",
		metrics.Rules:                  "10",
		metrics.Simplicity:             "66.7%",
		metrics.AverageOfIdentifier:    "1.467",
		metrics.LowestCohesionSelector: "*",
		metrics.UniqueFontSizes:        "N/A",
		metrics.UniqueColors:           "#333333\nRED",
		metrics.PropertiesCount:        "color: 5\nmargin: 2",
	}
	for _, r := range rows {
		if w, ok := want[r.Key]; ok && r.Value != w {
			t.Errorf("%s = %q, want %q", r.Key, r.Value, w)
		}
	}
	if rows[0].Key != metrics.Published || rows[len(rows)-1].Key != metrics.PropertiesCount {
		t.Error("Prettify() must keep record order")
	}
}

func TestPrettyValue_Truncate(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := PrettyValue(metrics.UniqueBackgroundImages, []string{long, "short"})
	want := strings.Repeat("x", 64) + "...\nshort"
	if got != want {
		t.Errorf("PrettyValue() = %q, want %q", got, want)
	}
	if got := PrettyValue(metrics.RatioOfDataURISize, 0.0); got != "0" {
		t.Errorf("zero percent = %q, want 0", got)
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleRecord(), Options{Format: common.OutputFmtJson}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if strings.Index(out, `"size"`) > strings.Index(out, `"rules"`) {
		t.Errorf("JSON keys out of order:\n%s", out)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["rules"] != 10.0 {
		t.Errorf("rules = %v", decoded["rules"])
	}

	buf.Reset()
	if err := Render(&buf, sampleRecord(), Options{Format: common.OutputFmtJson, Prettify: true}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"Simplicity": "66.7%"`) {
		t.Errorf("prettified JSON:\n%s", buf.String())
	}
}

func TestRender_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleRecord(), Options{Format: common.OutputFmtCsv}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d CSV rows, want 2", len(records))
	}
	header, values := records[0], records[1]
	for i, h := range header {
		switch h {
		case "uniqueColors":
			if values[i] != "#333333 RED" {
				t.Errorf("uniqueColors = %q", values[i])
			}
		case "propertiesCount":
			if values[i] != "color:5 margin:2" {
				t.Errorf("propertiesCount = %q", values[i])
			}
		case "published":
			if values[i] != "2026-03-05T14:07:00Z" {
				t.Errorf("published = %q", values[i])
			}
		}
	}
}

func TestRender_Table(t *testing.T) {
	for _, style := range []common.TableStyle{common.TableStyleDefault, common.TableStyleCompact, common.TableStyleRounded} {
		var buf bytes.Buffer
		if err := Render(&buf, sampleRecord(), Options{Format: common.OutputFmtTable, Style: style}); err != nil {
			t.Fatalf("Render(%s) error = %v", style, err)
		}
		out := buf.String()
		for _, s := range []string{"StyleStats!", "Simplicity", "66.7%", "Unique Colors", "RED"} {
			if !strings.Contains(out, s) {
				t.Errorf("table (%s) does not contain %q:\n%s", style, s, out)
			}
		}
	}
}

func TestRender_HTMLAndMarkdown(t *testing.T) {
	rec := sampleRecord()
	rec.Set(metrics.MostIdentifierSelector, "ul > li")

	var buf bytes.Buffer
	if err := Render(&buf, rec, Options{Format: common.OutputFmtHtml}); err != nil {
		t.Fatalf("Render(html) error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<th>Most Identifier Selector</th><td>ul &gt; li</td>") {
		t.Errorf("html output:\n%s", out)
	}

	buf.Reset()
	if err := Render(&buf, rec, Options{Format: common.OutputFmtMd}); err != nil {
		t.Fatalf("Render(md) error = %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, "| Unique Colors | #333333 RED |") {
		t.Errorf("markdown output:\n%s", out)
	}
	if !strings.Contains(out, "| Metrics | Value |") {
		t.Errorf("markdown header missing:\n%s", out)
	}
}

func TestRender_Template(t *testing.T) {
	tmpl := `{{ index .Pretty "rules" }}|{{ index .Metrics "size" }}|{{ removeBreak (index .Pretty "uniqueColors") }}|{{ "abc" | upper }}`

	var buf bytes.Buffer
	if err := Render(&buf, sampleRecord(), Options{Format: common.OutputFmtTemplate, Template: tmpl}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := buf.String(), "10|1500|#333333 RED|ABC"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	if err := Render(&buf, sampleRecord(), Options{Format: common.OutputFmtTemplate}); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("Render() error = %v, want ErrNoTemplate", err)
	}
	if err := Render(&buf, sampleRecord(), Options{Format: common.OutputFmtTemplate, Template: "{{ .Nope"}); err == nil {
		t.Error("expected template parse error")
	}
}
