package analyzer

import (
	"slices"
	"testing"

	"stylestats/css"
)

func TestAnalyzeRules(t *testing.T) {
	rules := []css.Rule{
		{Selectors: []string{"a"}, Declarations: []css.Declaration{decl("color", "red")}},
		{Selectors: []string{"b"}},
		{Selectors: []string{"c", "d"}, Declarations: []css.Declaration{decl("margin", "0"), decl("padding", "0")}},
		{Selectors: []string{"e"}, Declarations: []css.Declaration{decl("top", "0"), {Kind: css.KindComment}}},
	}
	res := AnalyzeRules(rules)

	if res.TotalDeclarations != 4 {
		t.Errorf("TotalDeclarations = %d, want 4", res.TotalDeclarations)
	}
	if len(res.Records) != 3 {
		t.Fatalf("Records length = %d, want 3", len(res.Records))
	}
	if !slices.Equal(res.Records[0].Selectors, []string{"c", "d"}) {
		t.Errorf("first record = %+v", res.Records[0])
	}
	lowest, ok := res.Lowest()
	if !ok || lowest.Count != 1 || lowest.Selectors[0] != "e" {
		t.Errorf("Lowest() = %+v, %v", lowest, ok)
	}
}
