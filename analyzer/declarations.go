package analyzer

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"stylestats/css"
	"stylestats/metrics"
)

// ErrMalformedDeclaration is returned for declarations without property.
var ErrMalformedDeclaration = errors.New("malformed declaration")

var (
	dataURIPattern      = regexp.MustCompile(`data:image/[A-Za-z0-9;,+=/]+`)
	urlPattern          = regexp.MustCompile(`url\(([^)]+)\)`)
	urlTrimPattern      = regexp.MustCompile(`[()'"]`)
	shortHexPattern     = regexp.MustCompile(`^#[0-9A-F]{3}$`)
	nonNumericPattern   = regexp.MustCompile(`[^0-9.]`)
	numericPattern      = regexp.MustCompile(`[0-9.]`)
	importantKeyword    = "!important"
	excludedColorValues = []string{"TRANSPARENT", "INHERIT"}
)

// DeclarationsResult is output of AnalyzeDeclarations.
type DeclarationsResult struct {
	// DataURIs is concatenation of all embedded data:image URIs.
	DataURIs               string
	ImportantKeywords      int
	FloatProperties        int
	UniqueFontSizes        []string
	UniqueFontFamilies     []string
	UniqueColors           []string
	UniqueBackgroundImages []string
	// Properties ranked by usage count, descending. Properties with equal
	// counts keep order of first appearance.
	Properties []metrics.PropertyCount
}

// DataURISize returns size of all data URIs in bytes.
func (r *DeclarationsResult) DataURISize() int {
	return len(r.DataURIs)
}

// TopProperties returns at most n most used properties.
func (r *DeclarationsResult) TopProperties(n int) []metrics.PropertyCount {
	if n <= 0 {
		return nil
	}
	if n > len(r.Properties) {
		n = len(r.Properties)
	}
	return slices.Clone(r.Properties[:n])
}

// AnalyzeDeclarations collects value statistics of declarations. Entries
// which are not declarations are ignored.
func AnalyzeDeclarations(decls []css.Declaration) (*DeclarationsResult, error) {
	var (
		res        = &DeclarationsResult{}
		dataURIs   strings.Builder
		fontSizes  []string
		families   []string
		colors     []string
		images     []string
		propCounts = make(map[string]int)
		propOrder  []string
	)

	for i, d := range decls {
		if !d.IsDeclaration() {
			continue
		}
		if d.Property == "" {
			return nil, fmt.Errorf("declaration %d with value %q: %w", i, d.Value, ErrMalformedDeclaration)
		}
		prop, value := d.Property, d.Value

		if strings.Contains(value, "data:image") {
			for _, uri := range dataURIPattern.FindAllString(value, -1) {
				dataURIs.WriteString(uri)
			}
		}
		if strings.Contains(value, importantKeyword) {
			res.ImportantKeywords++
		}
		if strings.Contains(prop, "float") {
			res.FloatProperties++
		}
		if strings.Contains(prop, "font-family") {
			families = append(families, stripImportant(value))
		}
		if strings.Contains(prop, "font-size") {
			fontSizes = append(fontSizes, stripImportant(value))
		}
		if prop == "color" {
			colors = append(colors, strings.ToUpper(stripImportant(value)))
		}
		if strings.Contains(prop, "background") && strings.Contains(value, "url") {
			for _, m := range urlPattern.FindAllStringSubmatch(value, -1) {
				images = append(images, urlTrimPattern.ReplaceAllString(m[1], ""))
			}
		}

		if _, seen := propCounts[prop]; !seen {
			propOrder = append(propOrder, prop)
		}
		propCounts[prop]++
	}

	res.DataURIs = dataURIs.String()
	res.UniqueFontFamilies = sortedUnique(families)
	res.UniqueFontSizes = groupFontSizes(unique(fontSizes))
	res.UniqueColors = normalizeColors(colors)
	res.UniqueBackgroundImages = sortedUnique(images)

	for _, p := range propOrder {
		res.Properties = append(res.Properties, metrics.PropertyCount{Property: p, Count: propCounts[p]})
	}
	slices.SortStableFunc(res.Properties, func(a, b metrics.PropertyCount) int {
		return b.Count - a.Count
	})
	return res, nil
}

func stripImportant(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, importantKeyword, ""))
}

// unique removes duplicates keeping first occurrence.
func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func sortedUnique(values []string) []string {
	out := unique(values)
	sort.Strings(out)
	return out
}

// groupFontSizes orders sizes by numeric value and then groups them by unit,
// units ordered by their first appearance in the numeric order.
func groupFontSizes(sizes []string) []string {
	slices.SortStableFunc(sizes, func(a, b string) int {
		x, y := fontSizeValue(a), fontSizeValue(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})

	var units []string
	byUnit := make(map[string][]string)
	for _, s := range sizes {
		unit := numericPattern.ReplaceAllString(s, "")
		if _, ok := byUnit[unit]; !ok {
			units = append(units, unit)
		}
		byUnit[unit] = append(byUnit[unit], s)
	}

	out := make([]string, 0, len(sizes))
	for _, u := range units {
		out = append(out, byUnit[u]...)
	}
	return out
}

func fontSizeValue(size string) float64 {
	v, err := strconv.ParseFloat(nonNumericPattern.ReplaceAllString(size, ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// normalizeColors drops keywords which are not colors, expands three digit
// hex notation and returns sorted unique values.
func normalizeColors(colors []string) []string {
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		if slices.Contains(excludedColorValues, c) {
			continue
		}
		if shortHexPattern.MatchString(c) {
			c = string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
		}
		out = append(out, c)
	}
	return sortedUnique(out)
}
