package analyzer

import (
	"slices"

	"stylestats/css"
)

// RuleRecord is declaration count of a single rule.
type RuleRecord struct {
	Selectors []string
	Count     int
}

// RulesResult is output of AnalyzeRules.
type RulesResult struct {
	TotalDeclarations int
	// Records ordered by declaration count, descending. Rules with equal
	// counts keep source order.
	Records []RuleRecord
}

// Lowest returns the rule with the fewest declarations.
func (r *RulesResult) Lowest() (RuleRecord, bool) {
	if len(r.Records) == 0 {
		return RuleRecord{}, false
	}
	return r.Records[len(r.Records)-1], true
}

// AnalyzeRules counts declarations per rule. Rules without any declarations
// are not recorded.
func AnalyzeRules(rules []css.Rule) *RulesResult {
	res := &RulesResult{}
	for _, rule := range rules {
		count := rule.DeclarationCount()
		if count == 0 {
			continue
		}
		res.Records = append(res.Records, RuleRecord{Selectors: rule.Selectors, Count: count})
		res.TotalDeclarations += count
	}
	slices.SortStableFunc(res.Records, func(a, b RuleRecord) int {
		return b.Count - a.Count
	})
	return res
}
