package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/linchx/tradesnap/session"
)

// The framework DSL lets a user define pairs and questions in one message:
//
//	framework {
//	  pairs EURUSD, GBPUSD, XAUUSD
//	  question "Daily Bias"
//	  question "Order Flow"
//	  question "M15 SMS"
//	  question "Verdict"
//	}

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_/-]*`},
		{Name: "Symbol", Pattern: `[{},]`},
	})

	definitionParser = participle.MustBuild[Definition](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

// Definition is the root AST node for a framework definition.
type Definition struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Entries []*Entry       `parser:"Newline* 'framework' '{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Entry is a single statement inside the framework block.
type Entry struct {
	Pairs    []string       `parser:"  'pairs' @Ident ( ',' @Ident )*"`
	Question *StringLiteral `parser:"| 'question' @String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a framework definition from an io.Reader.
func Parse(r io.Reader) (*Definition, error) {
	return definitionParser.Parse("", r)
}

// ParseString parses a framework definition from a string.
func ParseString(input string) (*Definition, error) {
	return definitionParser.ParseString("", input)
}

// Config assembles and validates the parsed definition into a session
// config. Validation reuses the session setup errors so the transport layer
// surfaces the same messages for both setup paths.
func (d *Definition) Config() (session.Config, error) {
	var cfg session.Config
	for _, entry := range d.Entries {
		for _, pair := range entry.Pairs {
			cfg.Pairs = append(cfg.Pairs, strings.ToUpper(pair))
		}
		if entry.Question != nil {
			q := strings.TrimSpace(string(*entry.Question))
			if q != "" {
				cfg.Questions = append(cfg.Questions, q)
			}
		}
	}
	if len(cfg.Pairs) == 0 {
		return session.Config{}, session.ErrEmptyPairs
	}
	if len(cfg.Questions) != session.QuestionCount {
		return session.Config{}, session.ErrWrongQuestionCount
	}
	return cfg, nil
}

// Format renders a config in canonical DSL form, the inverse of Parse.
func Format(cfg session.Config) string {
	var b strings.Builder
	b.WriteString("framework {\n")
	b.WriteString("  pairs " + strings.Join(cfg.Pairs, ", ") + "\n")
	for _, q := range cfg.Questions {
		b.WriteString("  question " + strconv.Quote(q) + "\n")
	}
	b.WriteString("}")
	return b.String()
}
