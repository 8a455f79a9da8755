// Package specs checks metrics record against thresholds from a test
// specification file.
package specs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const (
	defaultSuiteName = "StyleStats Test"
	defaultText      = "{metric}: {actual} should be {operation} {expected}"
	resultsKey       = "results"
	defaultsKey      = "defaults"
)

// ErrBadSpec is returned for malformed specification entries.
var ErrBadSpec = errors.New("bad specification")

// Operation is comparison performed by assertion.
type Operation string

const (
	OpLess    Operation = "<"
	OpGreater Operation = ">"
	OpBetween Operation = "<>"
	OpEqual   Operation = "="
)

// Describe returns human readable operation name.
func (o Operation) Describe() string {
	switch o {
	case OpLess:
		return "less than"
	case OpGreater:
		return "greater than"
	case OpBetween:
		return "between"
	default:
		return "equal to"
	}
}

// Defaults apply to every assertion of the specification.
type Defaults struct {
	SuiteName string    `yaml:"suiteName"`
	Text      string    `yaml:"text"`
	Operation Operation `yaml:"operation"`
}

// Assertion is a single check of a metric.
type Assertion struct {
	// Path is dotted location of the assertion in specification, last
	// element is metric name.
	Path      string
	Metric    string
	Operation Operation
	Max       float64 // upper bound for < and <>
	Min       float64 // lower bound for > and <>
	Expected  string  // expected value for =
}

// Spec is parsed specification.
type Spec struct {
	Defaults   Defaults
	Assertions []Assertion
}

// Load reads specification from YAML or JSON file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read specs: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML or JSON specification keeping assertion order.
func Parse(data []byte) (*Spec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse specs: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrBadSpec)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrBadSpec)
	}

	spec := &Spec{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == defaultsKey {
			if err := root.Content[i+1].Decode(&spec.Defaults); err != nil {
				return nil, fmt.Errorf("%w: defaults: %w", ErrBadSpec, err)
			}
		}
	}
	if spec.Defaults.SuiteName == "" {
		spec.Defaults.SuiteName = defaultSuiteName
	}
	if spec.Defaults.Operation == "" {
		spec.Defaults.Operation = OpLess
	}
	switch spec.Defaults.Operation {
	case OpLess, OpGreater, OpEqual:
	default:
		return nil, fmt.Errorf("%w: unsupported default operation %q", ErrBadSpec, spec.Defaults.Operation)
	}

	if err := spec.traverse(root, nil); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *Spec) traverse(node *yaml.Node, path []string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if key == defaultsKey && len(path) == 0 {
			continue
		}
		if key == resultsKey {
			if value.Kind != yaml.MappingNode {
				return fmt.Errorf("%w: %s must be a mapping", ErrBadSpec, resultsKey)
			}
			if err := s.traverse(value, append(path, key)); err != nil {
				return err
			}
			continue
		}
		a, err := s.assertion(key, value, strings.Join(append(path, key), "."))
		if err != nil {
			return err
		}
		s.Assertions = append(s.Assertions, a)
	}
	return nil
}

func (s *Spec) assertion(metric string, node *yaml.Node, path string) (Assertion, error) {
	a := Assertion{Path: path, Metric: metric}
	switch node.Kind {
	case yaml.ScalarNode:
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			// non numeric values can only be compared for equality
			a.Operation, a.Expected = OpEqual, node.Value
			return a, nil
		}
		a.Operation = s.Defaults.Operation
		switch a.Operation {
		case OpLess:
			a.Max = n
		case OpGreater:
			a.Min = n
		default:
			a.Expected = node.Value
		}
		return a, nil

	case yaml.MappingNode:
		var bounds struct {
			Max *float64 `yaml:"max"`
			Min *float64 `yaml:"min"`
		}
		if err := node.Decode(&bounds); err != nil {
			return a, fmt.Errorf("%w: %s: %w", ErrBadSpec, path, err)
		}
		switch {
		case bounds.Max != nil && bounds.Min != nil:
			a.Operation, a.Max, a.Min = OpBetween, *bounds.Max, *bounds.Min
		case bounds.Max != nil:
			a.Operation, a.Max = OpLess, *bounds.Max
		case bounds.Min != nil:
			a.Operation, a.Min = OpGreater, *bounds.Min
		default:
			return a, fmt.Errorf("%w: %s: neither max nor min specified", ErrBadSpec, path)
		}
		return a, nil
	}
	return a, fmt.Errorf("%w: %s: unexpected value", ErrBadSpec, path)
}
