package analyzer

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"stylestats/metrics"
)

// DefaultJavascriptSpecificSelectors is the pattern used to detect selectors
// meant as JavaScript hooks.
const DefaultJavascriptSpecificSelectors = `[-_]js[-_]|^js[-_]`

// DefaultPropertiesCount is number of top properties reported by default.
const DefaultPropertiesCount = 10

// ErrUnknownMetric is returned when option refers to metric which is not
// known to the engine.
var ErrUnknownMetric = errors.New("unknown metric")

// Options is immutable analysis configuration: which metrics to compute and
// parameters for some of them.
type Options struct {
	enabled         map[metrics.Key]bool
	propertiesCount int
	jsPattern       *regexp.Regexp
	userPattern     *regexp.Regexp
}

// Option modifies options under construction.
type Option func(*Options) error

// WithMetrics sets the exact set of computed metrics.
func WithMetrics(keys ...metrics.Key) Option {
	return func(o *Options) error {
		enabled := make(map[metrics.Key]bool, len(keys))
		for _, k := range keys {
			if !metrics.IsKnown(k) {
				return fmt.Errorf("%w: %s", ErrUnknownMetric, k)
			}
			enabled[k] = true
		}
		o.enabled = enabled
		return nil
	}
}

// WithMetric turns single metric on or off.
func WithMetric(key metrics.Key, on bool) Option {
	return func(o *Options) error {
		if !metrics.IsKnown(key) {
			return fmt.Errorf("%w: %s", ErrUnknownMetric, key)
		}
		o.enabled[key] = on
		return nil
	}
}

// WithPropertiesCount sets number of top properties to report. Zero or
// negative value disables the metric.
func WithPropertiesCount(n int) Option {
	return func(o *Options) error {
		o.propertiesCount = n
		return nil
	}
}

// WithJavascriptSpecificSelectors sets pattern for JavaScript hook
// selectors. Empty pattern never matches.
func WithJavascriptSpecificSelectors(pattern string) Option {
	return func(o *Options) (err error) {
		o.jsPattern, err = compile(pattern)
		if err != nil {
			return fmt.Errorf("javascript specific selectors: %w", err)
		}
		return nil
	}
}

// WithUserSpecifiedSelectors sets pattern for user-specified selectors.
// Empty pattern never matches.
func WithUserSpecifiedSelectors(pattern string) Option {
	return func(o *Options) (err error) {
		o.userPattern, err = compile(pattern)
		if err != nil {
			return fmt.Errorf("user specified selectors: %w", err)
		}
		return nil
	}
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// DefaultOptions returns options with every metric except
// userSpecifiedSelectors enabled.
func DefaultOptions() *Options {
	o := &Options{
		enabled:         make(map[metrics.Key]bool),
		propertiesCount: DefaultPropertiesCount,
		jsPattern:       regexp.MustCompile(DefaultJavascriptSpecificSelectors),
	}
	for _, k := range metrics.AllKeys() {
		o.enabled[k] = k != metrics.UserSpecifiedSelectors
	}
	return o
}

// NewOptions builds options starting from defaults.
func NewOptions(opts ...Option) (*Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Has reports whether metric is requested.
func (o *Options) Has(key metrics.Key) bool {
	return o.enabled[key]
}

// PropertiesCount returns number of top properties to report.
func (o *Options) PropertiesCount() int {
	return o.propertiesCount
}

// Enabled returns requested engine metrics in record order.
func (o *Options) Enabled() []metrics.Key {
	var out []metrics.Key
	for _, k := range EngineKeys() {
		if o.enabled[k] {
			out = append(out, k)
		}
	}
	return out
}

// EngineKeys lists metrics produced by the engine in record order.
func EngineKeys() []metrics.Key {
	all := metrics.AllKeys()
	return slices.DeleteFunc(all, func(k metrics.Key) bool {
		return k == metrics.Published || k == metrics.Paths || k == metrics.Stylesheets || k == metrics.StyleElements
	})
}
