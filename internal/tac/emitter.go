// Package tac implements the three-address code emitter: the monotonic
// temp/label counters and the small set of string-concatenation helpers
// semantic actions use to build TAC fragments.
package tac

import (
	"strconv"
	"strings"
)

// Emitter owns the temp and label counters for one compilation. Counters
// are monotonic across the entire compilation and are parse-instance
// state, never globals, so that two compilations running in separate
// Emitters never interfere and tests can reset them between cases by
// constructing a fresh Emitter.
type Emitter struct {
	nextTemp int
	nextLbl  int
}

// New returns an Emitter with both counters at zero.
func New() *Emitter {
	return &Emitter{}
}

// NewTemp returns the next temp name, t0, t1, ....
func (e *Emitter) NewTemp() string {
	name := "t" + strconv.Itoa(e.nextTemp)
	e.nextTemp++
	return name
}

// NewLabel returns the next label name, l0, l1, ....
func (e *Emitter) NewLabel() string {
	name := "l" + strconv.Itoa(e.nextLbl)
	e.nextLbl++
	return name
}

// GenCode formats a single TAC statement, terminated with ";\n".
func GenCode(op string, args ...string) string {
	var sb strings.Builder
	sb.WriteString(op)
	if len(args) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(args, " "))
	}
	sb.WriteString(";\n")
	return sb.String()
}

// GenLabel emits "LABEL <name>;\n".
func GenLabel(name string) string {
	return GenCode("LABEL " + name)
}

// GenGoto emits "GOTO <name>;\n".
func GenGoto(name string) string {
	return GenCode("GOTO " + name)
}

// GenIf emits "IF a op b THEN l1 ELSE l2;\n".
func GenIf(a, op, b, trueLabel, falseLabel string) string {
	return GenCode("IF", a, op, b, "THEN", trueLabel, "ELSE", falseLabel)
}

// GenAssign emits "x = y;\n".
func GenAssign(dst, src string) string {
	return GenCode(dst + " = " + src)
}

// GenAssignBinOp emits "x = y op z;\n".
func GenAssignBinOp(dst, lhs, op, rhs string) string {
	return GenCode(dst + " = " + lhs + " " + op + " " + rhs)
}

// GenCall emits "x = CALL f, n;\n".
func GenCall(dst, fn string, argc int) string {
	return GenCode(dst + " = CALL " + fn + ", " + strconv.Itoa(argc))
}

// GenReturn emits "RETURN x;\n".
func GenReturn(place string) string {
	return GenCode("RETURN " + place)
}

// GenPrint emits "PRINT x;\n".
func GenPrint(place string) string {
	return GenCode("PRINT " + place)
}

// GenInput emits "INPUT x;\n".
func GenInput(place string) string {
	return GenCode("INPUT " + place)
}

// GenArrayLoad emits "x = a[i];\n".
func GenArrayLoad(dst, arr, idx string) string {
	return GenCode(dst + " = " + arr + "[" + idx + "]")
}

// GenArrayStore emits "a[i] = x;\n".
func GenArrayStore(arr, idx, val string) string {
	return GenCode(arr + "[" + idx + "] = " + val)
}

// NewParams emits "PAR x;\n" once per entry in args, traversed back to
// front (actual arguments are pushed in reverse source order).
func NewParams(args []string) string {
	var sb strings.Builder
	for i := len(args) - 1; i >= 0; i-- {
		sb.WriteString(GenCode("PAR " + args[i]))
	}
	return sb.String()
}

// MergeCode concatenates a list of code fragments in order.
func MergeCode(fragments ...string) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f)
	}
	return sb.String()
}
