package css

import (
	"strings"
)

// DeclarationKind tells real declarations apart from other entries found
// inside a rule body.
type DeclarationKind int

const (
	KindDeclaration DeclarationKind = iota // property: value
	KindComment                            // /* comment */
)

// String returns name of the kind.
func (k DeclarationKind) String() string {
	switch k {
	case KindDeclaration:
		return "declaration"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Declaration represents a single entry of a rule body.
type Declaration struct {
	Kind      DeclarationKind
	Property  string // lower-cased property name, empty for comments
	Value     string // raw value text including "!important" if present, comment text for comments
	Important bool   // true if value carries "!important"
}

// IsDeclaration returns true for property/value pairs.
func (d Declaration) IsDeclaration() bool {
	return d.Kind == KindDeclaration
}

// Rule represents a single CSS rule block: selector list and its body.
type Rule struct {
	Selectors    []string      // selectors in source order, duplicates kept
	Declarations []Declaration // body entries in source order
	Media        string        // enclosing @media query, empty at top level
}

// DeclarationCount returns number of real declarations in the rule.
func (r Rule) DeclarationCount() int {
	count := 0
	for _, d := range r.Declarations {
		if d.IsDeclaration() {
			count++
		}
	}
	return count
}

// Stylesheet is the normalized abstract syntax of all analyzed CSS text.
type Stylesheet struct {
	Rules        []Rule   // rules in source order, rules nested in @media included
	MediaQueries int      // number of @media blocks
	Text         string   // complete CSS text
	Size         int      // size of Text in bytes (UTF-8)
	Warnings     []string // recoverable problems found while parsing
}

// NewStylesheet creates empty stylesheet for the given CSS text.
func NewStylesheet(text string) *Stylesheet {
	return &Stylesheet{
		Text: text,
		Size: len(text),
	}
}

// Selectors returns flattened list of all selectors: one entry per selector
// per rule, in source order.
func (s *Stylesheet) Selectors() []string {
	var out []string
	for _, r := range s.Rules {
		out = append(out, r.Selectors...)
	}
	return out
}

// Declarations returns flattened list of all real declarations (comments
// excluded) in source order.
func (s *Stylesheet) Declarations() []Declaration {
	var out []Declaration
	for _, r := range s.Rules {
		for _, d := range r.Declarations {
			if d.IsDeclaration() {
				out = append(out, d)
			}
		}
	}
	return out
}

// String returns the CSS text of the normalized rules. It is meant for
// debugging, original formatting is not preserved.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	media := ""
	for _, r := range s.Rules {
		if r.Media != media {
			if media != "" {
				sb.WriteString("}\n")
			}
			if r.Media != "" {
				sb.WriteString("@media " + r.Media + " {\n")
			}
			media = r.Media
		}
		sb.WriteString(strings.Join(r.Selectors, ", "))
		sb.WriteString(" {")
		for _, d := range r.Declarations {
			if d.IsDeclaration() {
				sb.WriteString(" " + d.Property + ": " + d.Value + ";")
			}
		}
		sb.WriteString(" }\n")
	}
	if media != "" {
		sb.WriteString("}\n")
	}
	return sb.String()
}
