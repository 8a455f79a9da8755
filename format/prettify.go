package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"stylestats/metrics"
)

// Row is a single human readable metric.
type Row struct {
	Key   metrics.Key
	Label string
	Value string
}

const (
	maxItemLen      = 64
	emptyList       = "N/A"
	publishedLayout = "January 2, 2006 3:04 PM"
)

var aliases = map[metrics.Key]string{
	metrics.Published:                     "Published",
	metrics.Paths:                         "Paths",
	metrics.Stylesheets:                   "Stylesheets",
	metrics.StyleElements:                 "Style Elements",
	metrics.Size:                          "Size",
	metrics.DataURISize:                   "Data URI Size",
	metrics.RatioOfDataURISize:            "Ratio of Data URI Size",
	metrics.GzippedSize:                   "Gzipped Size",
	metrics.Rules:                         "Rules",
	metrics.Selectors:                     "Selectors",
	metrics.Declarations:                  "Declarations",
	metrics.Simplicity:                    "Simplicity",
	metrics.AverageOfIdentifier:           "Average of Identifier",
	metrics.MostIdentifier:                "Most Identifier",
	metrics.MostIdentifierSelector:        "Most Identifier Selector",
	metrics.AverageOfCohesion:             "Average of Cohesion",
	metrics.LowestCohesion:                "Lowest Cohesion",
	metrics.LowestCohesionSelector:        "Lowest Cohesion Selector",
	metrics.TotalUniqueFontSizes:          "Total Unique Font Sizes",
	metrics.UniqueFontSizes:               "Unique Font Sizes",
	metrics.TotalUniqueFontFamilies:       "Total Unique Font Families",
	metrics.UniqueFontFamilies:            "Unique Font Families",
	metrics.TotalUniqueColors:             "Total Unique Colors",
	metrics.UniqueColors:                  "Unique Colors",
	metrics.TotalUniqueBackgroundImages:   "Total Unique Background Images",
	metrics.UniqueBackgroundImages:        "Unique Background Images",
	metrics.IDSelectors:                   "ID Selectors",
	metrics.UniversalSelectors:            "Universal Selectors",
	metrics.UnqualifiedAttributeSelectors: "Unqualified Attribute Selectors",
	metrics.JavascriptSpecificSelectors:   "JavaScript Specific Selectors",
	metrics.UserSpecifiedSelectors:        "User Specified Selectors",
	metrics.ImportantKeywords:             "Important Keywords",
	metrics.FloatProperties:               "Float Properties",
	metrics.PropertiesCount:               "Properties Count",
	metrics.MediaQueries:                  "Media Queries",
}

// Label returns human readable name of the metric.
func Label(key metrics.Key) string {
	if l, ok := aliases[key]; ok {
		return l
	}
	return cases.Title(language.English).String(splitCamel(string(key)))
}

func splitCamel(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Prettify converts record into human readable rows keeping record order.
func Prettify(rec *metrics.Record) []Row {
	rows := make([]Row, 0, rec.Len())
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		rows = append(rows, Row{Key: k, Label: Label(k), Value: PrettyValue(k, v)})
	}
	return rows
}

// PrettyValue formats single metric value for humans.
func PrettyValue(key metrics.Key, value any) string {
	switch key {
	case metrics.Size, metrics.GzippedSize, metrics.DataURISize:
		return prettyBytes(value)
	case metrics.Simplicity, metrics.RatioOfDataURISize:
		return prettyPercent(value)
	case metrics.AverageOfCohesion, metrics.AverageOfIdentifier:
		if f, ok := toFloat(value); ok {
			return fmt.Sprintf("%.3f", f)
		}
	}

	switch v := value.(type) {
	case time.Time:
		return v.Format(publishedLayout)
	case []metrics.PropertyCount:
		if len(v) == 0 {
			return emptyList
		}
		lines := make([]string, 0, len(v))
		for _, p := range v {
			lines = append(lines, fmt.Sprintf("%s: %d", p.Property, p.Count))
		}
		return strings.Join(lines, "\n")
	case []string:
		if len(v) == 0 {
			return emptyList
		}
		lines := make([]string, 0, len(v))
		for _, s := range v {
			lines = append(lines, truncate(s))
		}
		return strings.Join(lines, "\n")
	case float64:
		return humanize.Ftoa(v)
	case nil:
		return emptyList
	}
	return fmt.Sprint(value)
}

func truncate(s string) string {
	if len(s) <= maxItemLen {
		return s
	}
	cut := maxItemLen
	// do not split multibyte characters
	for cut > 0 && !utf8Start(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}

func prettyBytes(value any) string {
	f, ok := toFloat(value)
	if !ok {
		return fmt.Sprint(value)
	}
	if f == 0 {
		return "0"
	}
	return humanize.Bytes(uint64(f))
}

func prettyPercent(value any) string {
	f, ok := toFloat(value)
	if !ok {
		return fmt.Sprint(value)
	}
	s := fmt.Sprintf("%.1f%%", f*100)
	if s == "0.0%" {
		return "0"
	}
	return s
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
