// Package replio contains the line reader used to get compiler REPL
// input from a terminal or other source of input.
package replio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// lineSource is the minimal primitive a Reader backend must provide:
// read one raw, untrimmed line, or return io.EOF.
type lineSource interface {
	readRawLine() (string, error)
	close() error
}

// promptSetter is implemented by backends that support an editable
// prompt string. Not every lineSource does (a plain buffered reader has
// no concept of a prompt), so Reader type-asserts for it rather than
// requiring it of every backend.
type promptSetter interface {
	setPrompt(string)
	getPrompt() string
}

// Reader reads lines for a compiler REPL session. It skips blank lines
// by default; call AllowBlank(true) to have them returned instead. The
// blank-line and whitespace-trimming policy lives here, once, regardless
// of which lineSource backs the Reader.
//
// A Reader should not be constructed directly; use [NewDirectReader] or
// [NewInteractiveReader]. The returned Reader must have Close called on
// it before disposal.
type Reader struct {
	src           lineSource
	blanksAllowed bool
}

// NewDirectReader creates a Reader that reads lines from r via a
// buffered reader. It can be used with any io.Reader but does not
// sanitize the input of control or escape sequences.
func NewDirectReader(r io.Reader) *Reader {
	return &Reader{src: &directSource{r: bufio.NewReader(r)}}
}

// NewInteractiveReader creates a Reader that reads lines from stdin via
// a Go implementation of the GNU Readline library. This keeps input
// clear of typing/editing escape sequences and enables command history.
// This should in general only be used when directly connected to a tty.
func NewInteractiveReader(prompt string) (*Reader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &Reader{src: &readlineSource{rl: rl, prompt: prompt}}, nil
}

// ReadLine reads the next line from the underlying source. It blocks
// until a line containing non-space characters is read, unless
// AllowBlank was set, in which case a blank line is returned as soon as
// one is encountered.
//
// If at end of input, the returned string will be empty and error will
// be io.EOF. If any other error occurs, the returned string will be
// empty and error will be that error.
func (lr *Reader) ReadLine() (string, error) {
	for {
		line, err := lr.src.readRawLine()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || lr.blanksAllowed {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank lines are returned as-is rather than
// skipped. By default they are skipped.
func (lr *Reader) AllowBlank(allow bool) {
	lr.blanksAllowed = allow
}

// Close releases any resources held by the underlying source.
func (lr *Reader) Close() error {
	return lr.src.close()
}

// SetPrompt updates the prompt to the given text. It has no effect if
// the underlying source does not support a prompt.
func (lr *Reader) SetPrompt(p string) {
	if ps, ok := lr.src.(promptSetter); ok {
		ps.setPrompt(p)
	}
}

// GetPrompt gets the current prompt, or "" if the underlying source
// does not support one.
func (lr *Reader) GetPrompt() string {
	if ps, ok := lr.src.(promptSetter); ok {
		return ps.getPrompt()
	}
	return ""
}

// directSource reads raw lines from a buffered generic io.Reader.
type directSource struct {
	r *bufio.Reader
}

func (d *directSource) readRawLine() (string, error) {
	return d.r.ReadString('\n')
}

func (d *directSource) close() error {
	// nothing to release; here so directSource satisfies lineSource.
	return nil
}

// readlineSource reads raw lines from stdin through GNU readline.
type readlineSource struct {
	rl     *readline.Instance
	prompt string
}

func (rs *readlineSource) readRawLine() (string, error) {
	return rs.rl.Readline()
}

func (rs *readlineSource) close() error {
	return rs.rl.Close()
}

func (rs *readlineSource) setPrompt(p string) {
	rs.prompt = p
	rs.rl.SetPrompt(p)
}

func (rs *readlineSource) getPrompt() string {
	return rs.prompt
}
