package css_test

import (
	"errors"
	"os"
	"slices"
	"testing"

	"go.uber.org/zap/zaptest"

	"stylestats/css"
)

func parseFile(t *testing.T, name string) *css.Stylesheet {
	t.Helper()

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	sheet, err := css.NewParser(zaptest.NewLogger(t)).Parse(data, name)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return sheet
}

func TestParser_ParseFixture(t *testing.T) {
	sheet := parseFile(t, "testdata/stats.css")

	if got := len(sheet.Rules); got != 10 {
		t.Errorf("rules = %d, want 10", got)
	}
	if got := len(sheet.Selectors()); got != 15 {
		t.Errorf("selectors = %d, want 15", got)
	}
	if got := len(sheet.Declarations()); got != 23 {
		t.Errorf("declarations = %d, want 23", got)
	}
	if sheet.MediaQueries != 1 {
		t.Errorf("media queries = %d, want 1", sheet.MediaQueries)
	}
	if sheet.Size != len(sheet.Text) {
		t.Errorf("size = %d, want %d", sheet.Size, len(sheet.Text))
	}
}

func TestParser_SelectorLists(t *testing.T) {
	sheet := parseFile(t, "testdata/stats.css")

	first := sheet.Rules[0]
	if !slices.Equal(first.Selectors, []string{"html", "body"}) {
		t.Errorf("first rule selectors = %q", first.Selectors)
	}

	var headings []string
	for _, r := range sheet.Rules {
		if slices.Contains(r.Selectors, "h2") {
			headings = r.Selectors
		}
	}
	if !slices.Equal(headings, []string{"h1", "h2", "h3"}) {
		t.Errorf("heading selectors = %q", headings)
	}
}

func TestParser_MediaRules(t *testing.T) {
	sheet := parseFile(t, "testdata/stats.css")

	last := sheet.Rules[len(sheet.Rules)-1]
	if last.Media == "" {
		t.Fatal("expected last rule to come from @media block")
	}
	if !slices.Equal(last.Selectors, []string{".small", "p"}) {
		t.Errorf("media rule selectors = %q", last.Selectors)
	}
	for _, r := range sheet.Rules[:len(sheet.Rules)-1] {
		if r.Media != "" {
			t.Errorf("rule %q unexpectedly inside @media %q", r.Selectors, r.Media)
		}
	}
}

func TestParser_Declarations(t *testing.T) {
	sheet, err := css.NewParser(nil).Parse([]byte(`a { COLOR: red !important; margin: 0 auto; /* note */ }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("rules = %d, want 1", len(sheet.Rules))
	}

	rule := sheet.Rules[0]
	if got := rule.DeclarationCount(); got != 2 {
		t.Errorf("DeclarationCount() = %d, want 2", got)
	}

	decls := sheet.Declarations()
	if decls[0].Property != "color" {
		t.Errorf("property = %q, want lower-cased color", decls[0].Property)
	}
	if !decls[0].Important {
		t.Error("expected color to be important")
	}
	if decls[1].Important {
		t.Error("margin should not be important")
	}
	if decls[1].Value != "0 auto" {
		t.Errorf("value = %q, want %q", decls[1].Value, "0 auto")
	}
}

func TestParser_SkipsOtherAtRules(t *testing.T) {
	input := `
@charset "utf-8";
@font-face { font-family: Foo; src: url(foo.woff); }
@keyframes spin { from { top: 0; } to { top: 10px; } }
p { margin: 0; }
`
	sheet, err := css.NewParser(nil).Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("rules = %d, want 1 (got %q)", len(sheet.Rules), sheet.Selectors())
	}
	if sheet.Rules[0].Selectors[0] != "p" {
		t.Errorf("selector = %q, want p", sheet.Rules[0].Selectors[0])
	}
	if sheet.MediaQueries != 0 {
		t.Errorf("media queries = %d, want 0", sheet.MediaQueries)
	}
}

func TestParser_EmptyRuleKept(t *testing.T) {
	sheet, err := css.NewParser(nil).Parse([]byte(`.a {} .b { color: red; }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(sheet.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(sheet.Rules))
	}
	if sheet.Rules[0].DeclarationCount() != 0 {
		t.Errorf("empty rule has %d declarations", sheet.Rules[0].DeclarationCount())
	}
}

func TestParser_NoRules(t *testing.T) {
	for _, input := range []string{"", "   \n\t "} {
		_, err := css.NewParser(nil).Parse([]byte(input))
		if !errors.Is(err, css.ErrNoRules) {
			t.Errorf("Parse(%q) error = %v, want ErrNoRules", input, err)
		}
	}
}

func TestIsCSS(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"a { color: red; }", true},
		{"@media print { p { margin: 0; } }", true},
		{"just some words", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := css.IsCSS(tt.text); got != tt.want {
			t.Errorf("IsCSS(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestStylesheet_String(t *testing.T) {
	sheet := css.NewStylesheet("")
	sheet.Rules = []css.Rule{
		{Selectors: []string{"a", "b"}, Declarations: []css.Declaration{{Property: "color", Value: "red"}}},
		{Selectors: []string{"p"}, Media: "print", Declarations: []css.Declaration{{Property: "margin", Value: "0"}}},
	}
	want := "a, b { color: red; }\n@media print {\np { margin: 0; }\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParser_SelectorText(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a > b, c { color: red }", []string{"a > b", "c"}},
		{".foo .bar > .baz + .qux ~ .quux:before { top: 0 }", []string{".foo .bar > .baz + .qux ~ .quux:before"}},
		{"li:not(.a, .b), ul { margin: 0 }", []string{"li:not(.a, .b)", "ul"}},
		{`input[type="text"] , a[href*=","] { color: red }`, []string{`input[type="text"]`, `a[href*=","]`}},
		{"a /* hover */ , b\n  c { color: red }", []string{"a", "b\n  c"}},
		{"@media screen { .x + .y , p { color: red } }", []string{".x + .y", "p"}},
	}
	for _, tt := range tests {
		sheet, err := css.NewParser(nil).Parse([]byte(tt.input))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.input, err)
		}
		if got := sheet.Selectors(); !slices.Equal(got, tt.want) {
			t.Errorf("Parse(%q) selectors = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParser_ValueText(t *testing.T) {
	tests := []struct {
		input     string
		property  string
		value     string
		important bool
	}{
		{"x { font-family: Helvetica, Arial, sans-serif }", "font-family", "Helvetica, Arial, sans-serif", false},
		{"x { margin: 0 auto ; }", "margin", "0 auto", false},
		{"x { color: #FFF ! important; }", "color", "#FFF ! important", true},
		{"x { color: red !important }", "color", "red !important", true},
		{"x { width: calc(100% - 2 * 10px); }", "width", "calc(100% - 2 * 10px)", false},
		{"x { background: url(a.png) , url( 'b.png' ) no-repeat; }", "background", "url(a.png) , url( 'b.png' ) no-repeat", false},
		{"x { --gap: 1px  2px; }", "--gap", "1px  2px", false},
	}
	for _, tt := range tests {
		sheet, err := css.NewParser(nil).Parse([]byte(tt.input))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.input, err)
		}
		decls := sheet.Declarations()
		if len(decls) != 1 {
			t.Fatalf("Parse(%q) declarations = %d, want 1", tt.input, len(decls))
		}
		d := decls[0]
		if d.Property != tt.property || d.Value != tt.value || d.Important != tt.important {
			t.Errorf("Parse(%q) = %q: %q (important %v), want %q: %q (important %v)",
				tt.input, d.Property, d.Value, d.Important, tt.property, tt.value, tt.important)
		}
	}
}

func TestParser_MediaQueryText(t *testing.T) {
	sheet, err := css.NewParser(nil).Parse([]byte("@media screen and (max-width: 600px) { p { margin: 0 } }"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := sheet.Rules[0].Media; got != "screen and (max-width: 600px)" {
		t.Errorf("media = %q", got)
	}
}

func TestParser_Comments(t *testing.T) {
	sheet, err := css.NewParser(nil).Parse([]byte("a { /* first */ color: red; /* last */ }"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	rule := sheet.Rules[0]
	var kinds []css.DeclarationKind
	for _, d := range rule.Declarations {
		kinds = append(kinds, d.Kind)
	}
	if !slices.Equal(kinds, []css.DeclarationKind{css.KindComment, css.KindDeclaration, css.KindComment}) {
		t.Errorf("entries = %+v", rule.Declarations)
	}
	if rule.Declarations[0].Value != "/* first */" {
		t.Errorf("comment = %q", rule.Declarations[0].Value)
	}
	if rule.DeclarationCount() != 1 {
		t.Errorf("DeclarationCount() = %d, want 1", rule.DeclarationCount())
	}
}
