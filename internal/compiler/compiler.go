// Package compiler wires the pipeline end to end: lex, build the LR(0)
// item cluster and SLR(1) table for the baseline grammar once, then
// drive a parse per compilation using the registered semantic actions.
package compiler

import (
	"sync"

	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/lex"
	"github.com/dekarrin/slrc/internal/lr0"
	"github.com/dekarrin/slrc/internal/parse"
	"github.com/dekarrin/slrc/internal/semantic"
	"github.com/dekarrin/slrc/internal/slrtable"
)

var (
	baselineOnce   sync.Once
	baselineTable  *slrtable.Table
	baselineErr    error
	baselineLexer  *lex.Lexer
	baselineLexErr error
)

// BaselineTable builds (once, lazily) the SLR(1) table for the
// 47-production baseline grammar.
func BaselineTable() (*slrtable.Table, error) {
	baselineOnce.Do(func() {
		g, err := grammar.BaselineGrammar()
		if err != nil {
			baselineErr = err
			return
		}
		ic, err := lr0.Build(g)
		if err != nil {
			baselineErr = err
			return
		}
		baselineTable, baselineErr = slrtable.Build(g, ic)

		baselineLexer, baselineLexErr = lex.New()
	})
	if baselineErr != nil {
		return nil, baselineErr
	}
	return baselineTable, nil
}

// Compiler bundles a table and action set with the lexer used to
// tokenise its input.
type Compiler struct {
	driver *parse.Driver
	lexer  *lex.Lexer
}

// NewBaseline returns a Compiler for the baseline grammar and its full
// semantic action catalogue.
func NewBaseline() (*Compiler, error) {
	tbl, err := BaselineTable()
	if err != nil {
		return nil, err
	}
	if baselineLexErr != nil {
		return nil, baselineLexErr
	}
	return &Compiler{
		driver: parse.New(tbl, semantic.NewBaselineActions()),
		lexer:  baselineLexer,
	}, nil
}

// Compile lexes and parses src, returning the driver's result: the
// synthesised program attribute, the finished symbol-table registry, and
// the parse trace.
func (c *Compiler) Compile(src string) (*parse.Result, error) {
	tokens, err := c.lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return c.driver.Parse(tokens)
}
