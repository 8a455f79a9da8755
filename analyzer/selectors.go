package analyzer

import (
	"regexp"
	"slices"
	"strings"
)

var (
	attributePattern    = regexp.MustCompile(`\[.+\]`)
	unqualifiedPattern  = regexp.MustCompile(`\[.+\]$`)
	combinatorPattern   = regexp.MustCompile(`\s?([>|+~])\s?`)
	spacesPattern       = regexp.MustCompile(`\s+`)
	identifierSeparator = regexp.MustCompile(`\s|>|\+|~|:|[\w\]]\.|[\w\]]#|\[`)
)

// Identifier is number of simple selectors chained in a selector.
type Identifier struct {
	Selector string
	Count    int
}

// SelectorsResult is output of AnalyzeSelectors.
type SelectorsResult struct {
	IDSelectors                   int
	UniversalSelectors            int
	UnqualifiedAttributeSelectors int
	JavascriptSpecificSelectors   int
	UserSpecifiedSelectors        int
	TotalIdentifiers              int
	// Identifiers ordered by count, descending. Selectors with equal counts
	// keep source order.
	Identifiers []Identifier
}

// Most returns the selector with the largest identifier count.
func (r *SelectorsResult) Most() (Identifier, bool) {
	if len(r.Identifiers) == 0 {
		return Identifier{}, false
	}
	return r.Identifiers[0], true
}

// AnalyzeSelectors classifies selectors and counts their identifiers.
// Patterns may be nil in which case corresponding counters stay zero.
func AnalyzeSelectors(selectors []string, jsPattern, userPattern *regexp.Regexp) *SelectorsResult {
	res := &SelectorsResult{}
	for _, sel := range selectors {
		trimmed := strings.TrimSpace(sel)

		if strings.Contains(sel, "#") && strings.Contains(attributePattern.ReplaceAllString(sel, ""), "#") {
			res.IDSelectors++
		}
		if strings.Contains(sel, "*") && strings.Contains(attributePattern.ReplaceAllString(sel, ""), "*") {
			res.UniversalSelectors++
		}
		if unqualifiedPattern.MatchString(trimmed) {
			res.UnqualifiedAttributeSelectors++
		}
		if jsPattern != nil && jsPattern.MatchString(trimmed) {
			res.JavascriptSpecificSelectors++
		}
		if userPattern != nil && userPattern.MatchString(trimmed) {
			res.UserSpecifiedSelectors++
		}

		count := CountIdentifiers(sel)
		res.Identifiers = append(res.Identifiers, Identifier{Selector: sel, Count: count})
		res.TotalIdentifiers += count
	}
	slices.SortStableFunc(res.Identifiers, func(a, b Identifier) int {
		return b.Count - a.Count
	})
	return res
}

// CountIdentifiers returns number of simple selectors in selector: the
// number of pieces it splits into on combinators, pseudo-classes, chained
// classes, ids and attribute selectors.
func CountIdentifiers(selector string) int {
	s := combinatorPattern.ReplaceAllString(selector, "$1")
	s = spacesPattern.ReplaceAllString(s, " ")
	return len(identifierSeparator.FindAllStringIndex(s, -1)) + 1
}
