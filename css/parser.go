package css

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ErrNoRules is returned when CSS text does not contain a single top-level
// item.
var ErrNoRules = errors.New("rule is not found")

// Parser parses CSS text into normalized Stylesheet.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Only style rules at the top level
// and directly inside @media blocks are collected, other at-rules are skipped.
// The optional source parameter identifies what's being parsed (for debug
// logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	sheet := NewStylesheet(string(data))

	name := "<inline>"
	if len(source) > 0 && source[0] != "" {
		name = source[0]
	}
	p.log.Debug("Parsing CSS", zap.String("source", name), zap.Int("bytes", len(data)))

	w := &walker{
		log:    p.log,
		input:  parse.NewInputBytes(data),
		sheet:  sheet,
		source: name,
	}
	w.parser = css.NewParser(w.input, false)

	items := w.walk()
	if items == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoRules)
	}

	p.log.Debug("Parsed CSS",
		zap.String("source", name),
		zap.Int("rules", len(sheet.Rules)),
		zap.Int("media", sheet.MediaQueries),
		zap.Int("warnings", len(sheet.Warnings)))
	return sheet, nil
}

// IsCSS reports whether text looks like CSS: it has to contain at least one
// block and parse without producing empty result.
func IsCSS(s string) bool {
	if !strings.Contains(s, "{") || !strings.Contains(s, "}") {
		return false
	}
	w := &walker{
		log:   zap.NewNop(),
		input: parse.NewInputString(s),
		sheet: NewStylesheet(s),
	}
	w.parser = css.NewParser(w.input, false)
	w.walk()
	return len(w.sheet.Rules) > 0 || w.sheet.MediaQueries > 0
}

type walker struct {
	log    *zap.Logger
	input  *parse.Input
	parser *css.Parser
	sheet  *Stylesheet
	source string
	// raw input consumed by the last grammar item
	span []byte
}

// next returns next grammar item, syntax errors are recorded as warnings and
// skipped. ErrorGrammar is only returned at the end of input.
func (w *walker) next() (css.GrammarType, []byte) {
	for {
		start := w.parser.Offset()
		gt, _, data := w.parser.Next()
		w.span = w.input.Bytes()[start:w.parser.Offset()]
		if gt != css.ErrorGrammar {
			return gt, data
		}
		err := w.parser.Err()
		if err == nil || errors.Is(err, io.EOF) || w.input.Err() != nil {
			return gt, nil
		}
		w.log.Debug("CSS syntax error", zap.String("source", w.source), zap.Error(err))
		w.sheet.Warnings = append(w.sheet.Warnings, err.Error())
	}
}

// walk processes top-level items and returns their number.
func (w *walker) walk() int {
	var items int
	for {
		gt, data := w.next()
		switch gt {
		case css.ErrorGrammar:
			return items

		case css.CommentGrammar:
			items++

		case css.AtRuleGrammar:
			items++
			w.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginAtRuleGrammar:
			items++
			if strings.EqualFold(string(data), "@media") {
				w.sheet.MediaQueries++
				w.media(prelude(w.span))
			} else {
				w.log.Debug("Skipping @-rule", zap.String("rule", string(data)))
				w.skipBlock()
			}

		case css.BeginRulesetGrammar:
			items++
			w.ruleset(splitSelectors(w.span), "")
		}
	}
}

// media collects rules of a single @media block.
func (w *walker) media(query string) {
	for {
		gt, data := w.next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return

		case css.BeginAtRuleGrammar:
			w.log.Debug("Skipping nested @-rule", zap.String("rule", string(data)), zap.String("media", query))
			w.skipBlock()

		case css.BeginRulesetGrammar:
			w.ruleset(splitSelectors(w.span), query)
		}
	}
}

// ruleset collects declarations until the end of the rule block. Comments
// between declarations are kept as separate entries.
func (w *walker) ruleset(selectors []string, media string) {
	rule := Rule{Selectors: selectors, Media: media}
	for {
		gt, data := w.next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			rule.Declarations = append(rule.Declarations, comments(lex(w.span))...)
			w.sheet.Rules = append(w.sheet.Rules, rule)
			return

		case css.DeclarationGrammar:
			rule.Declarations = append(rule.Declarations, w.declaration(strings.ToLower(string(data)))...)

		case css.CustomPropertyGrammar:
			rule.Declarations = append(rule.Declarations, w.declaration(string(data))...)

		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			// nested blocks are not part of the rule
			w.skipBlock()
		}
	}
}

// skipBlock skips a block with all nested content.
func (w *walker) skipBlock() {
	depth := 1
	for depth > 0 {
		gt, _ := w.next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// declaration builds declaration from the raw text of the last grammar item,
// comments preceding the property are returned first.
func (w *walker) declaration(property string) []Declaration {
	tokens := lex(w.span)
	colon := slices.IndexFunc(tokens, func(t css.Token) bool { return t.TokenType == css.ColonToken })
	if colon < 0 {
		return nil
	}
	out := comments(tokens[:colon])

	values := tokens[colon+1:]
	if i := lastSignificant(values); i >= 0 && (values[i].TokenType == css.SemicolonToken || values[i].TokenType == css.RightBraceToken) {
		values = values[:i]
	}
	value := strings.TrimSpace(text(values))
	return append(out, Declaration{
		Kind:      KindDeclaration,
		Property:  property,
		Value:     value,
		Important: isImportant(value),
	})
}

func isImportant(value string) bool {
	v := strings.ToLower(value)
	i := strings.LastIndexByte(v, '!')
	return i >= 0 && strings.TrimSpace(v[i+1:]) == "important"
}

// lex splits raw CSS text into tokens, whitespace is kept as is.
func lex(raw []byte) []css.Token {
	if len(raw) == 0 {
		return nil
	}
	l := css.NewLexer(parse.NewInputString(string(raw)))
	var tokens []css.Token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return tokens
		}
		tokens = append(tokens, css.Token{TokenType: tt, Data: data})
	}
}

// text rebuilds source text from tokens dropping comments.
func text(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType != css.CommentToken {
			sb.Write(t.Data)
		}
	}
	return sb.String()
}

func comments(tokens []css.Token) []Declaration {
	var out []Declaration
	for _, t := range tokens {
		if t.TokenType == css.CommentToken {
			out = append(out, Declaration{Kind: KindComment, Value: string(t.Data)})
		}
	}
	return out
}

func lastSignificant(tokens []css.Token) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if t := tokens[i].TokenType; t != css.WhitespaceToken && t != css.CommentToken {
			return i
		}
	}
	return -1
}

// block drops opening brace of a block and everything after it.
func block(tokens []css.Token) []css.Token {
	if i := slices.IndexFunc(tokens, func(t css.Token) bool { return t.TokenType == css.LeftBraceToken }); i >= 0 {
		return tokens[:i]
	}
	return tokens
}

// prelude returns at-rule condition text as written in the source.
func prelude(raw []byte) string {
	tokens := block(lex(raw))
	if i := slices.IndexFunc(tokens, func(t css.Token) bool { return t.TokenType == css.AtKeywordToken }); i >= 0 {
		tokens = tokens[i+1:]
	}
	return strings.TrimSpace(text(tokens))
}

// splitSelectors splits raw selector list on top-level commas. Selector text
// is kept as written, only surrounding whitespace and comments are removed.
func splitSelectors(raw []byte) []string {
	tokens := block(lex(raw))
	var (
		out   []string
		level int
		start int
	)
	flush := func(end int) {
		if s := strings.TrimSpace(text(tokens[start:end])); s != "" {
			out = append(out, s)
		}
		start = end + 1
	}
	for i, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			level++
		case css.RightParenthesisToken, css.RightBracketToken:
			level--
		case css.CommaToken:
			if level == 0 {
				flush(i)
			}
		}
	}
	flush(len(tokens))
	return out
}
