package asmrw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Rewrite_Assignment(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("t0 = a;\n")
	require.NoError(t, err)
	assert.Equal(t, "MOV t0, a\n", out)
}

func Test_Rewrite_BinaryOp(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("t0 = a + b;\n")
	require.NoError(t, err)
	assert.Equal(t, "MOV t0, a\nOP+ t0, b\n", out)
}

func Test_Rewrite_LabelAndGoto(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("LABEL l0;\nGOTO l0;\n")
	require.NoError(t, err)
	assert.Equal(t, "l0:\nJMP l0\n", out)
}

func Test_Rewrite_ConditionalJump(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("IF t0 < t1 THEN l0 ELSE l1;\n")
	require.NoError(t, err)
	assert.Equal(t, "CMP t0, t1\nJ< l0\nJMP l1\n", out)
}

func Test_Rewrite_CallSequence(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("PAR t0;\nt1 = CALL f, 1;\n")
	require.NoError(t, err)
	assert.Equal(t, "PUSH t0\nCALL f\nADD SP, 1\nMOV t1, RET\n", out)
}

func Test_Rewrite_ArrayAccess(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("t0 = arr[i];\narr[i] = t0;\n")
	require.NoError(t, err)
	assert.Equal(t, "MOV t0, [arr+i]\nMOV [arr+i], t0\n", out)
}

func Test_Rewrite_PrintInputReturn(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("PRINT t0;\nINPUT d;\nRETURN t0;\n")
	require.NoError(t, err)
	assert.Equal(t, "PUSH t0\nCALL _print\nADD SP, 1\nCALL _input\nMOV d, RET\nMOV RET, t0\nRET\n", out)
}

func Test_Rewrite_UnmatchedLineIsCommentedOut(t *testing.T) {
	rw, err := New()
	require.NoError(t, err)

	out, err := rw.Rewrite("NOT_A_REAL_OPCODE t0;\n")
	require.NoError(t, err)
	assert.Equal(t, "; NOT_A_REAL_OPCODE t0\n", out)
}

func Test_NewFromRules_InvalidPatternFails(t *testing.T) {
	_, err := NewFromRules([]Rule{{Pattern: "(", Template: "x"}})
	assert.Error(t, err)
}
