package lex

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one priority-ordered (pattern, token type) pair. Rules are
// tried in order; the first whose pattern matches at the current
// position wins. A Type of "" means the match is discarded (whitespace).
type Rule struct {
	Pattern string
	Type    string

	re *regexp.Regexp
}

// Lexer holds a compiled, priority-ordered rule list. Keeping the
// compiled regexes and the rule list together mirrors the teacher's
// split between source patterns and their compiled super-pattern, scaled
// down to this language's single lexical state.
type Lexer struct {
	rules []Rule
}

// keywords are recognised as their own token type rather than as a
// generic identifier, so the rule evaluating `d` must run after these.
var baselineRules = []Rule{
	{Pattern: `\A\n`, Type: NewLine},
	{Pattern: `\A[ \t\r]+`, Type: ""},
	{Pattern: `\A//[^\n]*`, Type: ""},
	{Pattern: `\Aint\b`, Type: "int"},
	{Pattern: `\Avoid\b`, Type: "void"},
	{Pattern: `\Afloat\b`, Type: "float"},
	{Pattern: `\Aif\b`, Type: "if"},
	{Pattern: `\Aelse\b`, Type: "else"},
	{Pattern: `\Awhile\b`, Type: "while"},
	{Pattern: `\Afor\b`, Type: "for"},
	{Pattern: `\Areturn\b`, Type: "return"},
	{Pattern: `\Aprint\b`, Type: "print"},
	{Pattern: `\Ainput\b`, Type: "input"},
	{Pattern: `\A[0-9]+\.[0-9]+`, Type: "f"},
	{Pattern: `\A[0-9]+`, Type: "i"},
	{Pattern: `\A[A-Za-z_][A-Za-z0-9_]*`, Type: "d"},
	{Pattern: `\A(==|!=|<=|>=|<|>)`, Type: "r"},
	{Pattern: `\A\+`, Type: "+"},
	{Pattern: `\A-`, Type: "-"},
	{Pattern: `\A\*`, Type: "*"},
	{Pattern: `\A/`, Type: "/"},
	{Pattern: `\A=`, Type: "="},
	{Pattern: `\A\(`, Type: "("},
	{Pattern: `\A\)`, Type: ")"},
	{Pattern: `\A\[`, Type: "["},
	{Pattern: `\A\]`, Type: "]"},
	{Pattern: `\A\{`, Type: "{"},
	{Pattern: `\A\}`, Type: "}"},
	{Pattern: `\A,`, Type: ","},
	{Pattern: `\A;`, Type: ";"},
	{Pattern: `\A∧`, Type: "∧"},
	{Pattern: `\A∨`, Type: "∨"},
}

// New compiles the baseline rule list. Rules are additionally
// user-extensible: callers with a different token set should construct a
// Lexer directly from their own []Rule via NewFromRules.
func New() (*Lexer, error) {
	return NewFromRules(baselineRules)
}

// NewFromRules compiles an arbitrary priority-ordered rule list.
func NewFromRules(rules []Rule) (*Lexer, error) {
	compiled := make([]Rule, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("lex rule %d (%q): %w", i, r.Pattern, err)
		}
		compiled[i] = Rule{Pattern: r.Pattern, Type: r.Type, re: re}
	}
	return &Lexer{rules: compiled}, nil
}

// Lex scans src into a token stream terminated by EndOfInput. Matching is
// greedy-first-rule: at each position every rule is tried in priority
// order and the first match wins, regardless of match length.
func (l *Lexer) Lex(src string) ([]Token, error) {
	var tokens []Token
	line := 1
	rest := src

	for len(rest) > 0 {
		matched := false
		for _, r := range l.rules {
			loc := r.re.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := rest[:loc[1]]
			if r.Type != "" {
				tokens = append(tokens, Token{Type: r.Type, Lexeme: lexeme, Line: line})
			}
			line += strings.Count(lexeme, "\n")
			rest = rest[loc[1]:]
			matched = true
			break
		}
		if !matched {
			r := peekRune(rest)
			tokens = append(tokens, Token{Type: Unknown, Lexeme: string(r), Line: line})
			return tokens, fmt.Errorf("lex: unrecognised character %q at line %d", string(r), line)
		}
	}

	tokens = append(tokens, Token{Type: EndOfInput, Lexeme: "", Line: line})
	return tokens, nil
}

func peekRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
