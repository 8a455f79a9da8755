package specs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stylestats/metrics"
)

// ErrNotFound is result of assertion for metric missing from the record.
var ErrNotFound = errors.New("not found")

// Result is outcome of a single assertion.
type Result struct {
	Text   string
	Passed bool
	Err    error
}

// Report is outcome of all assertions.
type Report struct {
	Suite   string
	Results []Result
}

// Failed returns number of failed assertions.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// WriteTo prints results and summary.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "\n  %s\n", r.Suite)
	failed := 0
	for _, res := range r.Results {
		switch {
		case res.Passed:
			fmt.Fprintf(buf, "    ok  %s\n", res.Text)
		case res.Err != nil:
			failed++
			fmt.Fprintf(buf, "    %d) %s: %v\n", failed, res.Text, res.Err)
		default:
			failed++
			fmt.Fprintf(buf, "    %d) %s\n", failed, res.Text)
		}
	}
	fmt.Fprintf(buf, "\n  %d passing\n", len(r.Results)-failed)
	if failed > 0 {
		fmt.Fprintf(buf, "  %d failing\n", failed)
	}
	return buf.WriteTo(w)
}

// Run checks every assertion of spec against record.
func Run(rec *metrics.Record, spec *Spec) *Report {
	report := &Report{Suite: spec.Defaults.SuiteName}
	for _, a := range spec.Assertions {
		report.Results = append(report.Results, check(rec, a, spec.Defaults))
	}
	return report
}

func check(rec *metrics.Record, a Assertion, defaults Defaults) Result {
	value, ok := rec.Get(metrics.Key(a.Metric))
	if !ok {
		return Result{Text: a.Path, Err: ErrNotFound}
	}

	var (
		passed   bool
		expected string
		op       = a.Operation.Describe()
	)
	actual, numeric := rec.Number(metrics.Key(a.Metric))
	actualText := formatActual(value, actual, numeric)

	switch a.Operation {
	case OpLess, OpGreater, OpBetween:
		if !numeric {
			return Result{Text: a.Path, Err: fmt.Errorf("%s is not a number", actualText)}
		}
		switch a.Operation {
		case OpLess:
			passed, expected = actual < a.Max, formatNumber(a.Max)
		case OpGreater:
			passed, expected = actual > a.Min, formatNumber(a.Min)
		default:
			passed = actual < a.Max && actual > a.Min
			op = "less than " + formatNumber(a.Max) + " and greater than"
			expected = formatNumber(a.Min)
		}
	default:
		expected = a.Expected
		if numeric {
			if n, err := strconv.ParseFloat(a.Expected, 64); err == nil {
				passed = actual == n
				break
			}
		}
		passed = actualText == a.Expected
	}

	text := defaults.Text
	if text == "" {
		text = defaultText
	}
	text = strings.NewReplacer(
		"{metric}", a.Path,
		"{actual}", actualText,
		"{operation}", op,
		"{expected}", expected,
	).Replace(text)
	return Result{Text: text, Passed: passed}
}

func formatActual(value any, n float64, numeric bool) string {
	if numeric {
		return formatNumber(n)
	}
	if list, ok := value.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(value)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
