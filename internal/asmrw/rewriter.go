// Package asmrw implements the assembly rewriter: a priority-sorted list
// of (pattern, template) rules that turns TAC lines into target assembly
// lines. Per the design note calling for the lexer and the rewriter to
// be schema-identical, a Rule here is the same (pattern, template) shape
// as a lex.Rule, just matched against a whole TAC statement instead of a
// lexeme prefix, with captures interpolated into a template instead of
// naming a token type.
package asmrw

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule is one priority-ordered (pattern, template) pair. Pattern is a
// regular expression matched against a full TAC line (sans trailing
// ";\n"); Template may reference its capture groups with `$k` (literal
// substitution of capture k) or `$k:u` (capture k, upper-cased) —
// the nested form that prefixes a letter onto a capture.
type Rule struct {
	Pattern  string
	Template string

	re *regexp.Regexp
}

// Rewriter holds a compiled, priority-ordered rule list plus the
// fallback applied when no rule matches a line.
type Rewriter struct {
	rules []Rule
}

var placeholderRe = regexp.MustCompile(`\$(\d+)(:u)?`)

// baselineRules covers the opcodes in the three-address output: bare
// assignment, binary-op assignment, conditional jump, unconditional
// jump, label, parameter push, call, return, print, input, and the two
// array-access forms.
var baselineRules = []Rule{
	{Pattern: `^LABEL (\S+)$`, Template: "$1:"},
	{Pattern: `^GOTO (\S+)$`, Template: "JMP $1"},
	{Pattern: `^IF (\S+) (\S+) (\S+) THEN (\S+) ELSE (\S+)$`, Template: "CMP $1, $3\nJ$2 $4\nJMP $5"},
	{Pattern: `^PAR (\S+)$`, Template: "PUSH $1"},
	{Pattern: `^(\S+) = CALL (\S+), (\d+)$`, Template: "CALL $2\nADD SP, $3\nMOV $1, RET"},
	{Pattern: `^RETURN (\S+)$`, Template: "MOV RET, $1\nRET"},
	{Pattern: `^PRINT (\S+)$`, Template: "PUSH $1\nCALL _print\nADD SP, 1"},
	{Pattern: `^INPUT (\S+)$`, Template: "CALL _input\nMOV $1, RET"},
	{Pattern: `^(\S+) = (\S+)\[(\S+)\]$`, Template: "MOV $1, [$2+$3]"},
	{Pattern: `^(\S+)\[(\S+)\] = (\S+)$`, Template: "MOV [$1+$2], $3"},
	{Pattern: `^(\S+) = (\S+) ([-+*/]) (\S+)$`, Template: "MOV $1, $2\nOP$3 $1, $4"},
	{Pattern: `^(\S+) = (\S+)$`, Template: "MOV $1, $2"},
}

// New compiles the baseline TAC-to-assembly rule list.
func New() (*Rewriter, error) {
	return NewFromRules(baselineRules)
}

// NewFromRules compiles an arbitrary priority-ordered rule list.
func NewFromRules(rules []Rule) (*Rewriter, error) {
	compiled := make([]Rule, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("asmrw rule %d (%q): %w", i, r.Pattern, err)
		}
		compiled[i] = Rule{Pattern: r.Pattern, Template: r.Template, re: re}
	}
	return &Rewriter{rules: compiled}, nil
}

// Rewrite turns a full TAC program (one instruction per line, each
// terminated by ";\n") into target assembly, one rule match per line. A
// line matching no rule is passed through unchanged, prefixed by "; ".
func (rw *Rewriter) Rewrite(tac string) (string, error) {
	var out strings.Builder
	lines := strings.Split(strings.TrimRight(tac, "\n"), "\n")
	for _, line := range lines {
		line = strings.TrimSuffix(strings.TrimSpace(line), ";")
		if line == "" {
			continue
		}
		rewritten, ok, err := rw.rewriteLine(line)
		if err != nil {
			return "", err
		}
		if !ok {
			out.WriteString("; " + line + "\n")
			continue
		}
		out.WriteString(rewritten)
		out.WriteString("\n")
	}
	return out.String(), nil
}

func (rw *Rewriter) rewriteLine(line string) (string, bool, error) {
	for _, r := range rw.rules {
		m := r.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		expanded, err := expandTemplate(r.Template, m)
		if err != nil {
			return "", false, err
		}
		return expanded, true, nil
	}
	return "", false, nil
}

func expandTemplate(template string, captures []string) (string, error) {
	var expandErr error
	result := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		sub := placeholderRe.FindStringSubmatch(m)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx >= len(captures) {
			expandErr = fmt.Errorf("asmrw: template references capture %s beyond match", sub[1])
			return m
		}
		val := captures[idx]
		if sub[2] == ":u" {
			val = strings.ToUpper(val)
		}
		return val
	})
	if expandErr != nil {
		return "", expandErr
	}
	return result, nil
}
