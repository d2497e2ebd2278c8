/*
Slrc starts an interactive session against the baseline-grammar compiler.

It reads source text from stdin a line at a time, submitting each
accumulated program for compilation when it sees a line containing only
a single ".", and prints the resulting three-address code (or any
error) to stdout. It will read using GNU readline-based routines when
attached to a real terminal, falling back to direct, unsanitized line
reads otherwise.

Usage:

	slrc [flags]

The flags are:

	-v, --version
		Give the current version of the program and then exit.

	-d, --direct
		Force reading directly from stdin instead of going through
		GNU readline even if launched in a tty with stdin and stdout.

	-c, --command SOURCE
		Immediately compile the given source and exit, without
		starting an interactive session.

Once a session has started, type a program followed by a line
containing only "." to compile it. Special commands, entered on a line
by themselves:

	:table   print the baseline grammar's ACTION/GOTO table
	:quit    exit the session
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/slrc/internal/compiler"
	"github.com/dekarrin/slrc/internal/grammar"
	"github.com/dekarrin/slrc/internal/render"
	"github.com/dekarrin/slrc/internal/replio"
	"github.com/dekarrin/slrc/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitCompileError indicates the session ended due to an I/O error
	// reading input.
	ExitCompileError

	// ExitInitError indicates an unsuccessful program execution due to
	// an issue initializing the compiler.
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of the program and then exit.")
	flagForceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of using readline.")
	flagCommand     = pflag.StringP("command", "c", "", "Immediately compile the given source and exit.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	c, err := compiler.NewBaseline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not initialize compiler: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *flagCommand != "" {
		runSource(c, *flagCommand)
		return
	}

	useReadline := !*flagForceDirect
	var in *replio.Reader
	if useReadline {
		ilr, err := replio.NewInteractiveReader("slrc> ")
		if err != nil {
			in = replio.NewDirectReader(os.Stdin)
		} else {
			in = ilr
		}
	} else {
		in = replio.NewDirectReader(os.Stdin)
	}
	in.AllowBlank(true)
	defer in.Close()

	fmt.Println("slrc baseline-grammar compiler session. Type a program, then a line with")
	fmt.Println("just \".\" to compile it. Type \":quit\" to exit.")

	var buf strings.Builder
	for {
		line, err := in.ReadLine()
		if err != nil {
			if err == io.EOF {
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitCompileError
			return
		}

		switch strings.TrimSpace(line) {
		case ":quit":
			return
		case ":table":
			printTable()
			continue
		case ".":
			runSource(c, buf.String())
			buf.Reset()
			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

func runSource(c *compiler.Compiler, src string) {
	result, err := c.Compile(src)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	fmt.Print(result.Program.Code)
	fmt.Println(result.Registry.Dump())
}

func printTable() {
	tbl, err := compiler.BaselineTable()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	g, err := grammar.BaselineGrammar()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	fmt.Print(render.Table(tbl, g))
	fmt.Print(render.Conflicts(tbl))
}
